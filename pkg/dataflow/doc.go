// Package dataflow provides a compositional graph for sourcing and
// transforming data.
//
// A graph is assembled from small reusable nodes. External sources sit at the
// leaves and talk to the outside world, translators relabel vendor data into
// a canonical vocabulary, and pipes apply one transformation each. Pipes
// compose into pipelines, and models combine several named inputs into one
// output. Wiring a graph performs no work: evaluation is pull based, a single
// Run call on the terminal node requests data from its input, which requests
// it from its own upstream node, and so on back to the sources.
//
// Every connection between two nodes passes through a validated input slot.
// The slot runs all of its validators against the data it pulled and refuses
// to hand over a value that failed any of them, so a transformation never
// sees data that violates its stated assumptions. Keyword arguments given to
// Run travel along the whole chain, and each node reports the argument names
// it requires, including those of everything upstream of it.
//
// Nodes are cheap to copy. A copy shares nothing with the original except the
// transformation itself and is always disconnected, which makes partially
// configured nodes safe to reuse as templates across many graphs.
package dataflow
