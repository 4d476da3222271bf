// Package store provides the memory backed graph store used when a wiring
// is assembled into a directed graph for inspection.
package store

import (
	"fmt"
	"sync"

	"github.com/dominikbraun/graph"

	"github.com/askiada/go-dataflow/pkg/dataflow/model"
)

// Memory stores the nodes and links of a single wiring, keyed by node ID.
type Memory struct {
	lock       sync.RWMutex
	nodes      map[string]model.NodeInfo
	properties map[string]*graph.VertexProperties

	// outEdges and inEdges hold every link twice for O(1) access from
	// either endpoint, keyed by the ID of the opposite node.
	outEdges map[string]map[string]graph.Edge[string] // parent -> child
	inEdges  map[string]map[string]graph.Edge[string] // child -> parent
}

func New() *Memory {
	return &Memory{
		nodes:      make(map[string]model.NodeInfo),
		properties: make(map[string]*graph.VertexProperties),
		outEdges:   make(map[string]map[string]graph.Edge[string]),
		inEdges:    make(map[string]map[string]graph.Edge[string]),
	}
}

func (s *Memory) AddVertex(id string, info model.NodeInfo, props graph.VertexProperties) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.nodes[id]; ok {
		return graph.ErrVertexAlreadyExists
	}

	s.nodes[id] = info
	s.properties[id] = &props

	return nil
}

func (s *Memory) Vertex(id string) (model.NodeInfo, graph.VertexProperties, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	info, ok := s.nodes[id]
	if !ok {
		return info, graph.VertexProperties{}, graph.ErrVertexNotFound
	}

	return info, *s.properties[id], nil
}

func (s *Memory) RemoveVertex(id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.nodes[id]; !ok {
		return graph.ErrVertexNotFound
	}

	if edges, ok := s.inEdges[id]; ok {
		if len(edges) > 0 {
			return graph.ErrVertexHasEdges
		}
		delete(s.inEdges, id)
	}

	if edges, ok := s.outEdges[id]; ok {
		if len(edges) > 0 {
			return graph.ErrVertexHasEdges
		}
		delete(s.outEdges, id)
	}

	delete(s.nodes, id)
	delete(s.properties, id)

	return nil
}

func (s *Memory) ListVertices() ([]string, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	ids := make([]string, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}

	return ids, nil
}

func (s *Memory) VertexCount() (int, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.nodes), nil
}

func (s *Memory) AddEdge(parentID, childID string, edge graph.Edge[string]) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.outEdges[parentID]; !ok {
		s.outEdges[parentID] = make(map[string]graph.Edge[string])
	}

	s.outEdges[parentID][childID] = edge

	if _, ok := s.inEdges[childID]; !ok {
		s.inEdges[childID] = make(map[string]graph.Edge[string])
	}

	s.inEdges[childID][parentID] = edge

	return nil
}

func (s *Memory) UpdateEdge(parentID, childID string, edge graph.Edge[string]) error {
	if _, err := s.Edge(parentID, childID); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.outEdges[parentID][childID] = edge
	s.inEdges[childID][parentID] = edge

	return nil
}

func (s *Memory) RemoveEdge(parentID, childID string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.inEdges[childID], parentID)
	delete(s.outEdges[parentID], childID)

	return nil
}

func (s *Memory) Edge(parentID, childID string) (graph.Edge[string], error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	children, ok := s.outEdges[parentID]
	if !ok {
		return graph.Edge[string]{}, graph.ErrEdgeNotFound
	}

	edge, ok := children[childID]
	if !ok {
		return graph.Edge[string]{}, graph.ErrEdgeNotFound
	}

	return edge, nil
}

func (s *Memory) ListEdges() ([]graph.Edge[string], error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	res := make([]graph.Edge[string], 0)
	for _, edges := range s.outEdges {
		for _, edge := range edges {
			res = append(res, edge)
		}
	}

	return res, nil
}

// CreatesCycle reports whether linking parent to child would close a loop.
// It walks the ingoing edges directly instead of materialising a full
// predecessor map, so cycle prevention stays cheap on every added link.
func (s *Memory) CreatesCycle(parentID, childID string) (bool, error) {
	if _, _, err := s.Vertex(parentID); err != nil {
		return false, fmt.Errorf("could not get vertex with hash %v: %w", parentID, err)
	}

	if _, _, err := s.Vertex(childID); err != nil {
		return false, fmt.Errorf("could not get vertex with hash %v: %w", childID, err)
	}

	if parentID == childID {
		return true, nil
	}

	stack := []string{parentID}
	visited := make(map[string]struct{})

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := visited[current]; !ok {
			// The child being an ancestor of the parent means the new
			// link would close a loop.
			if current == childID {
				return true, nil
			}

			visited[current] = struct{}{}

			for parent := range s.inEdges[current] {
				stack = append(stack, parent)
			}
		}
	}

	return false, nil
}

var _ graph.Store[string, model.NodeInfo] = (*Memory)(nil)
