// Package model provides the shared data structures for the dataflow package.
// It defines the metadata attached to every node of a graph, used by the
// inspection helpers, the drawer and the measure collectors.
package model
