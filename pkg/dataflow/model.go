package dataflow

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/askiada/go-dataflow/pkg/dataflow/model"
)

// ModelFunc combines the named inputs of a model into a single output. It
// pulls whichever inputs it needs through src.
type ModelFunc[T any] func(ctx context.Context, src *ModelSources[T], args Args) (T, error)

// ModelSources gives a ModelFunc access to the validated inputs of its
// model for the request being evaluated.
type ModelSources[T any] struct {
	m    *Model[T]
	args Args
}

// From pulls and validates the named input.
func (s *ModelSources[T]) From(ctx context.Context, name string) (T, error) {
	var zero T

	in, ok := s.m.ins[name]
	if !ok {
		return zero, errors.Wrap(ErrUnknownInput, name)
	}

	return in.Request(ctx, s.args)
}

// Model is a transformer with several named input slots. Each slot is a
// validated input of its own, the model function decides which of them to
// pull and how to combine them.
type Model[T any] struct {
	info  model.NodeInfo
	ins   map[string]*Input[T]
	order []string
	fn    ModelFunc[T]
	req   Set
	tags  Set
	lg    *slog.Logger
}

// NewModel creates a model with the given input slots, all disconnected.
func NewModel[T any](name string, slots []string, fn ModelFunc[T], opts ...ModelOption[T]) *Model[T] {
	m := &Model[T]{
		info:  model.NodeInfo{ID: nextNodeID(name), Name: name, Kind: model.ModelKind},
		ins:   make(map[string]*Input[T], len(slots)),
		order: append([]string(nil), slots...),
		fn:    fn,
		req:   NewSet(),
		tags:  NewSet(),
		lg:    slog.Default(),
	}
	for _, slot := range slots {
		m.ins[slot] = NewInput[T](name + " " + slot)
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Model[T]) Info() model.NodeInfo {
	return m.info
}

func (m *Model[T]) Name() string {
	return m.info.Name
}

// Upstream returns the inspectable sources of every connected slot, in
// declaration order.
func (m *Model[T]) Upstream() []Node {
	var out []Node

	for _, slot := range m.order {
		if n, ok := m.ins[slot].Connection().(Node); ok {
			out = append(out, n)
		}
	}

	return out
}

// InputNames lists the declared slot names in declaration order.
func (m *Model[T]) InputNames() []string {
	return append([]string(nil), m.order...)
}

// NamedInput returns the input slot for a name, nil when undeclared.
func (m *Model[T]) NamedInput(name string) *Input[T] {
	return m.ins[name]
}

// SetInput connects the named slot to a source in place.
func (m *Model[T]) SetInput(name string, src Source[T]) error {
	in, ok := m.ins[name]
	if !ok {
		return errors.Wrap(ErrUnknownInput, name)
	}

	in.Connect(src)

	return nil
}

// WithInput returns a copy of the model with the named slot connected. The
// receiver is left untouched.
func (m *Model[T]) WithInput(name string, src Source[T]) (*Model[T], error) {
	out := m.Copy()
	if err := out.SetInput(name, src); err != nil {
		return nil, err
	}

	return out, nil
}

// AddValidators attaches validators to the named slot.
func (m *Model[T]) AddValidators(name string, vs ...Validator[T]) error {
	in, ok := m.ins[name]
	if !ok {
		return errors.Wrap(ErrUnknownInput, name)
	}

	in.AddValidators(vs...)

	return nil
}

func (m *Model[T]) AddTags(tags ...string) *Model[T] {
	m.tags.Add(tags...)

	return m
}

func (m *Model[T]) Tags() Set {
	return m.tags.Clone()
}

// Copy returns a disconnected clone of the model. Every slot keeps its
// validators and loses its connection.
func (m *Model[T]) Copy() *Model[T] {
	out := &Model[T]{
		info:  model.NodeInfo{ID: nextNodeID(m.info.Name), Name: m.info.Name, Kind: model.ModelKind},
		ins:   make(map[string]*Input[T], len(m.ins)),
		order: append([]string(nil), m.order...),
		fn:    m.fn,
		req:   m.req.Clone(),
		tags:  m.tags.Clone(),
		lg:    m.lg,
	}
	for slot, in := range m.ins {
		out.ins[slot] = in.Copy(false)
	}

	return out
}

// ReqArgs reports the arguments required by the model itself and by every
// connected slot.
func (m *Model[T]) ReqArgs() Set {
	out := m.req.Clone()
	for _, in := range m.ins {
		out = out.Union(in.ReqArgs())
	}

	return out
}

// Run evaluates the graph ending at this model.
func (m *Model[T]) Run(ctx context.Context, args Args) (T, error) {
	var zero T

	if err := runPreflight(m, m.info.Name, m.ReqArgs(), args); err != nil {
		return zero, err
	}

	return m.Request(ctx, args)
}

// Request evaluates the model function, which pulls the inputs it needs.
func (m *Model[T]) Request(ctx context.Context, args Args) (T, error) {
	var zero T

	if m.fn == nil {
		return zero, errors.Wrap(ErrFuncMustBeSet, m.info.Name)
	}

	out, err := m.fn(ctx, &ModelSources[T]{m: m, args: args}, args)
	if err != nil {
		return zero, errors.Wrap(err, m.info.Name)
	}

	return out, nil
}
