package dataflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-dataflow/pkg/dataflow/measure"
	"github.com/askiada/go-dataflow/pkg/dataflow/model"
)

// TransformFunc is the transformation bound to a pipe. It must derive its
// output from the given data and arguments only, sourcing happens upstream.
type TransformFunc[T any] func(ctx context.Context, data T, args Args) (T, error)

// BuilderFunc is the transformation bound to a builder pipe. It additionally
// receives the pieces the pipe was configured with.
type BuilderFunc[T any] func(ctx context.Context, pieces *Pieces, data T, args Args) (T, error)

// Pipe is a single input, single output transformer.
type Pipe[T any] struct {
	info    model.NodeInfo
	fn      TransformFunc[T]
	bfn     BuilderFunc[T]
	in      *Input[T]
	req     Set
	tags    Set
	pieces  *Pieces
	rewrite func(Args) Args
	metric  measure.Metric
	lg      *slog.Logger
}

// NewPipe creates a disconnected pipe applying fn. A nil fn is the identity.
func NewPipe[T any](name string, fn TransformFunc[T], opts ...PipeOption[T]) *Pipe[T] {
	p := &Pipe[T]{
		info: model.NodeInfo{ID: nextNodeID(name), Name: name, Kind: model.PipeKind},
		fn:   fn,
		req:  NewSet(),
		tags: NewSet(),
		lg:   slog.Default(),
	}
	p.in = NewInput[T](name + " input")
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// NewBuilderPipe creates a pipe whose transformation is assembled from
// pieces. The slot names declare which pieces can be configured.
func NewBuilderPipe[T any](name string, slots []string, fn BuilderFunc[T], opts ...PipeOption[T]) *Pipe[T] {
	p := NewPipe[T](name, nil, opts...)
	p.bfn = fn
	p.pieces = NewPieces(slots...)

	return p
}

func (p *Pipe[T]) Info() model.NodeInfo {
	return p.info
}

func (p *Pipe[T]) Name() string {
	return p.info.Name
}

// Upstream returns the connected source when it is inspectable.
func (p *Pipe[T]) Upstream() []Node {
	if n, ok := p.in.Connection().(Node); ok {
		return []Node{n}
	}

	return nil
}

// Input exposes the validated input slot of the pipe.
func (p *Pipe[T]) Input() *Input[T] {
	return p.in
}

// SetInput connects the pipe to a source in place.
func (p *Pipe[T]) SetInput(src Source[T]) *Pipe[T] {
	p.in.Connect(src)

	return p
}

// WithInput returns a copy of the pipe connected to the source. The
// receiver is left untouched.
func (p *Pipe[T]) WithInput(src Source[T]) *Pipe[T] {
	return p.Copy().SetInput(src)
}

// Copy returns a disconnected clone of the pipe. The clone carries the
// transformation, the validators, the tags, the required arguments and the
// pieces of the original, never its connection.
func (p *Pipe[T]) Copy() *Pipe[T] {
	out := &Pipe[T]{
		info:    model.NodeInfo{ID: nextNodeID(p.info.Name), Name: p.info.Name, Kind: model.PipeKind},
		fn:      p.fn,
		bfn:     p.bfn,
		in:      p.in.Copy(false),
		req:     p.req.Clone(),
		tags:    p.tags.Clone(),
		rewrite: p.rewrite,
		metric:  p.metric,
		lg:      p.lg,
	}
	if p.pieces != nil {
		out.pieces = p.pieces.Clone()
	}

	return out
}

func (p *Pipe[T]) AddTags(tags ...string) *Pipe[T] {
	p.tags.Add(tags...)

	return p
}

func (p *Pipe[T]) Tags() Set {
	return p.tags.Clone()
}

func (p *Pipe[T]) HasTag(tag string) bool {
	return p.tags.Contains(tag)
}

// ReqArgs reports the arguments required by the pipe itself and by
// everything upstream of it.
func (p *Pipe[T]) ReqArgs() Set {
	return p.req.Union(p.in.ReqArgs())
}

func (p *Pipe[T]) ownReqArgs() Set {
	return p.req.Clone()
}

// Run evaluates the graph ending at this pipe. It refuses to run cyclic
// wiring and reports missing arguments before pulling any data.
func (p *Pipe[T]) Run(ctx context.Context, args Args) (T, error) {
	var zero T

	if err := runPreflight(p, p.info.Name, p.ReqArgs(), args); err != nil {
		return zero, err
	}

	return p.Request(ctx, args)
}

// Request pulls data from the validated input and applies the
// transformation.
func (p *Pipe[T]) Request(ctx context.Context, args Args) (T, error) {
	var zero T

	if p.rewrite != nil {
		args = p.rewrite(args.Clone())
	}

	start := time.Now()

	data, err := p.in.Request(ctx, args)
	if err != nil {
		return zero, errors.Wrap(err, p.info.Name)
	}

	if p.metric != nil {
		if src, ok := p.in.Connection().(Node); ok {
			p.metric.AddTransportDuration(src.Info().ID, time.Since(start))
		}
	}

	return p.Transform(ctx, data, args)
}

// Transform applies the transformation to data already in hand.
func (p *Pipe[T]) Transform(ctx context.Context, data T, args Args) (T, error) {
	var zero T

	start := time.Now()

	out, err := p.apply(ctx, data, args)
	if err != nil {
		return zero, errors.Wrapf(err, "unable to transform %s", p.info.Name)
	}

	if p.metric != nil {
		p.metric.AddDuration(time.Since(start))
	}

	return out, nil
}

func (p *Pipe[T]) apply(ctx context.Context, data T, args Args) (T, error) {
	switch {
	case p.bfn != nil:
		return p.bfn(ctx, p.pieces, data, args)
	case p.fn != nil:
		return p.fn(ctx, data, args)
	default:
		return data, nil
	}
}

// Then connects a copy of other to this pipe and returns it, composing the
// two end to end.
func (p *Pipe[T]) Then(other *Pipe[T]) *Pipe[T] {
	return other.WithInput(p)
}

// Chain wraps the pipe and the given stages into a pipeline.
func (p *Pipe[T]) Chain(rest ...Stage[T]) (*Pipeline[T], error) {
	return NewPipeline(p, rest...)
}

// SetPiece configures a piece slot in place.
func (p *Pipe[T]) SetPiece(slot, kind string, opts Args) error {
	if p.pieces == nil {
		return errors.Wrap(ErrNoPieces, p.info.Name)
	}

	return p.pieces.Set(slot, kind, opts)
}

// WithPiece returns a copy of the pipe with the piece slot configured. The
// receiver is left untouched.
func (p *Pipe[T]) WithPiece(slot, kind string, opts Args) (*Pipe[T], error) {
	out := p.Copy()
	if err := out.SetPiece(slot, kind, opts); err != nil {
		return nil, err
	}

	return out, nil
}

// Piece returns the configured piece for a slot.
func (p *Pipe[T]) Piece(slot string) (Piece, bool) {
	if p.pieces == nil {
		return Piece{}, false
	}

	return p.pieces.Get(slot)
}

// PieceSlots lists the declared piece slots, sorted.
func (p *Pipe[T]) PieceSlots() []string {
	if p.pieces == nil {
		return nil
	}

	return p.pieces.Slots()
}

func (p *Pipe[T]) stages() []*Pipe[T] {
	return []*Pipe[T]{p}
}
