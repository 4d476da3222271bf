package dataflow

import (
	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"

	"github.com/askiada/go-dataflow/internal/store"
	"github.com/askiada/go-dataflow/pkg/dataflow/drawer"
	"github.com/askiada/go-dataflow/pkg/dataflow/model"
)

// Walk visits every node reachable upstream from start, breadth first. Each
// node is visited exactly once, so the walk terminates even on miswired
// graphs.
func Walk(start Node, visit func(Node) error) error {
	if start == nil {
		return nil
	}

	seen := make(map[string]struct{})
	queue := []Node{start}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		id := n.Info().ID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		if err := visit(n); err != nil {
			return err
		}

		if w, ok := n.(Wired); ok {
			for _, up := range w.Upstream() {
				if up != nil {
					queue = append(queue, up)
				}
			}
		}
	}

	return nil
}

// BuildGraph assembles the wiring reachable upstream of the terminal node
// into a directed graph, with edges pointing from upstream to downstream.
// It reports ErrCycle as soon as a connection closes a loop.
func BuildGraph(terminal Node) (graph.Graph[string, model.NodeInfo], error) {
	g := graph.NewWithStore(func(info model.NodeInfo) string {
		return info.ID
	}, store.New(), graph.Directed(), graph.PreventCycles())

	type link struct {
		parent, child model.NodeInfo
	}

	var links []link

	err := Walk(terminal, func(n Node) error {
		addErr := g.AddVertex(n.Info())
		if addErr != nil && !errors.Is(addErr, graph.ErrVertexAlreadyExists) {
			return errors.Wrapf(addErr, "unable to add node %s", n.Info().Name)
		}

		if w, ok := n.(Wired); ok {
			for _, up := range w.Upstream() {
				if up != nil {
					links = append(links, link{parent: up.Info(), child: n.Info()})
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, l := range links {
		err := g.AddEdge(l.parent.ID, l.child.ID)

		switch {
		case err == nil, errors.Is(err, graph.ErrEdgeAlreadyExists):
		case errors.Is(err, graph.ErrEdgeCreatesCycle):
			return nil, errors.Wrapf(ErrCycle, "%s -> %s", l.parent.Name, l.child.Name)
		default:
			return nil, errors.Wrapf(err, "unable to link %s to %s", l.parent.Name, l.child.Name)
		}
	}

	return g, nil
}

// CheckAcyclic verifies that the wiring upstream of the terminal node forms
// no loop.
func CheckAcyclic(terminal Node) error {
	_, err := BuildGraph(terminal)

	return err
}

// Draw feeds the wiring reachable upstream of the terminal node into a
// drawer.
func Draw(terminal Node, d drawer.Drawer) error {
	err := Walk(terminal, func(n Node) error {
		if err := d.AddNode(n.Info()); err != nil {
			return errors.Wrapf(err, "unable to draw node %s", n.Info().Name)
		}

		return nil
	})
	if err != nil {
		return err
	}

	return Walk(terminal, func(n Node) error {
		w, ok := n.(Wired)
		if !ok {
			return nil
		}

		for _, up := range w.Upstream() {
			if up == nil {
				continue
			}
			if err := d.AddLink(up.Info().ID, n.Info().ID); err != nil {
				return errors.Wrapf(err, "unable to draw link %s -> %s", up.Info().Name, n.Info().Name)
			}
		}

		return nil
	})
}

func runPreflight(terminal Node, name string, req Set, args Args) error {
	if err := CheckAcyclic(terminal); err != nil {
		return errors.Wrapf(err, "unable to run %s", name)
	}

	if missing := req.Missing(args); len(missing) > 0 {
		return missingArgs(name, missing)
	}

	return nil
}
