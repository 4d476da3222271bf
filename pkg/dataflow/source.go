package dataflow

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/askiada/go-dataflow/pkg/dataflow/model"
)

// Source is the upstream capability. Anything that can be asked for data
// implements it: externals, pipes, pipelines, translators, models, caches.
type Source[T any] interface {
	// Request produces a value for the given arguments. It assumes the
	// wiring upstream of it is acyclic, terminal nodes enforce that in Run.
	Request(ctx context.Context, args Args) (T, error)
	// ReqArgs reports the argument names required by this node and by
	// everything upstream of it.
	ReqArgs() Set
}

// Node is the inspection capability shared by every concrete node.
type Node interface {
	Info() model.NodeInfo
}

// Wired is a node with upstream connections that can be traversed.
type Wired interface {
	Node
	Upstream() []Node
}

var nodeSeq atomic.Int64

func nextNodeID(name string) string {
	return fmt.Sprintf("%s#%d", name, nodeSeq.Add(1))
}

// SourceFunc is a plain function usable as a source.
type SourceFunc[T any] func(ctx context.Context, args Args) (T, error)

// FuncSource lifts a function into a named leaf source.
type FuncSource[T any] struct {
	info model.NodeInfo
	fn   SourceFunc[T]
	req  Set
}

// NewSource creates a leaf source backed by fn. The given argument names are
// required by every request hitting the source.
func NewSource[T any](name string, fn SourceFunc[T], requires ...string) *FuncSource[T] {
	return &FuncSource[T]{
		info: model.NodeInfo{ID: nextNodeID(name), Name: name, Kind: model.ExternalKind},
		fn:   fn,
		req:  NewSet(requires...),
	}
}

func (s *FuncSource[T]) Request(ctx context.Context, args Args) (T, error) {
	var zero T

	if s.fn == nil {
		return zero, ErrFuncMustBeSet
	}
	if missing := s.req.Missing(args); len(missing) > 0 {
		return zero, missingArgs(s.info.Name, missing)
	}

	return s.fn(ctx, args)
}

func (s *FuncSource[T]) ReqArgs() Set {
	return s.req.Clone()
}

func (s *FuncSource[T]) Info() model.NodeInfo {
	return s.info
}
