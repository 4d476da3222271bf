package dataflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/askiada/go-dataflow/pkg/dataflow/model"
)

// Stage is a linear segment of transformations: a single pipe or a whole
// pipeline. Only those two types implement it.
type Stage[T any] interface {
	Source[T]
	Transform(ctx context.Context, data T, args Args) (T, error)
	stages() []*Pipe[T]
}

// Pipeline applies the transformations of its stages in order, behind the
// input slot of its first pipe. Intermediate values are handed from stage to
// stage directly, only the initial pull is validated.
type Pipeline[T any] struct {
	info model.NodeInfo
	in   *Input[T]
	list []*Pipe[T]
	lg   *slog.Logger
}

// NewPipeline creates a pipeline from the first pipe and any further stages.
// The pipeline adopts the input slot of the first pipe as its own, nested
// pipelines are spliced in stage by stage.
func NewPipeline[T any](first *Pipe[T], rest ...Stage[T]) (*Pipeline[T], error) {
	if first == nil {
		return nil, ErrStageMustBeSet
	}

	name := fmt.Sprintf("pipeline(%s)", first.Name())
	pl := &Pipeline[T]{
		info: model.NodeInfo{ID: nextNodeID("pipeline"), Name: name, Kind: model.PipelineKind},
		in:   first.Input(),
		list: first.stages(),
		lg:   first.lg,
	}

	return pl.Extend(rest...), nil
}

func (pl *Pipeline[T]) Info() model.NodeInfo {
	return pl.info
}

func (pl *Pipeline[T]) Name() string {
	return pl.info.Name
}

// Upstream returns the source connected to the shared first input when it is
// inspectable.
func (pl *Pipeline[T]) Upstream() []Node {
	if n, ok := pl.in.Connection().(Node); ok {
		return []Node{n}
	}

	return nil
}

// Input exposes the input slot shared with the first stage.
func (pl *Pipeline[T]) Input() *Input[T] {
	return pl.in
}

// SetInput connects the pipeline, and therefore its first stage, to a
// source in place.
func (pl *Pipeline[T]) SetInput(src Source[T]) *Pipeline[T] {
	pl.in.Connect(src)

	return pl
}

// WithInput returns a copy of the pipeline connected to the source.
func (pl *Pipeline[T]) WithInput(src Source[T]) *Pipeline[T] {
	out := pl.Copy()
	out.in.Connect(src)

	return out
}

// Stages returns the pipes of the pipeline in application order.
func (pl *Pipeline[T]) Stages() []*Pipe[T] {
	out := make([]*Pipe[T], len(pl.list))
	copy(out, pl.list)

	return out
}

func (pl *Pipeline[T]) Len() int {
	return len(pl.list)
}

// Extend appends stages in place. Pipelines are flattened into their pipes.
func (pl *Pipeline[T]) Extend(items ...Stage[T]) *Pipeline[T] {
	for _, item := range items {
		pl.list = append(pl.list, item.stages()...)
	}

	return pl
}

// ExtendDeep appends disconnected copies of the stages instead of the
// stages themselves, so later mutations of the originals never reach the
// pipeline.
func (pl *Pipeline[T]) ExtendDeep(items ...Stage[T]) *Pipeline[T] {
	for _, item := range items {
		for _, st := range item.stages() {
			pl.list = append(pl.list, st.Copy())
		}
	}

	return pl
}

// Then returns a copy of the pipeline extended with the given stages.
func (pl *Pipeline[T]) Then(items ...Stage[T]) *Pipeline[T] {
	return pl.Copy().Extend(items...)
}

// Copy returns a disconnected clone of the pipeline. Every stage is cloned,
// the clone of the first stage provides the fresh input slot.
func (pl *Pipeline[T]) Copy() *Pipeline[T] {
	list := make([]*Pipe[T], len(pl.list))
	for i, st := range pl.list {
		list[i] = st.Copy()
	}

	return &Pipeline[T]{
		info: model.NodeInfo{ID: nextNodeID("pipeline"), Name: pl.info.Name, Kind: model.PipelineKind},
		in:   list[0].Input(),
		list: list,
		lg:   pl.lg,
	}
}

// ReqArgs reports the arguments required by every stage and by the source
// connected to the shared input.
func (pl *Pipeline[T]) ReqArgs() Set {
	out := NewSet()
	for _, st := range pl.list {
		out = out.Union(st.ownReqArgs())
	}

	return out.Union(pl.in.ReqArgs())
}

// Run evaluates the graph ending at this pipeline.
func (pl *Pipeline[T]) Run(ctx context.Context, args Args) (T, error) {
	var zero T

	if err := runPreflight(pl, pl.info.Name, pl.ReqArgs(), args); err != nil {
		return zero, err
	}

	return pl.Request(ctx, args)
}

// Request pulls data through the shared input and folds it through every
// stage.
func (pl *Pipeline[T]) Request(ctx context.Context, args Args) (T, error) {
	var zero T

	data, err := pl.in.Request(ctx, args)
	if err != nil {
		return zero, errors.Wrap(err, pl.info.Name)
	}

	return pl.Transform(ctx, data, args)
}

// Transform folds data through the transformations of every stage in order.
// No validation happens between stages.
func (pl *Pipeline[T]) Transform(ctx context.Context, data T, args Args) (T, error) {
	var (
		zero T
		err  error
	)

	for _, st := range pl.list {
		data, err = st.Transform(ctx, data, args)
		if err != nil {
			return zero, err
		}
	}

	return data, nil
}

func (pl *Pipeline[T]) stages() []*Pipe[T] {
	return pl.Stages()
}
