package dataflow

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type skipValidationKey struct{}

// SkipValidation marks the whole pull issued with the returned context as
// trusted: every input along the chain hands data over without running its
// validators. The switch is scoped to the context, nothing is shared.
func SkipValidation(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipValidationKey{}, true)
}

func validationSkipped(ctx context.Context) bool {
	skipped, _ := ctx.Value(skipValidationKey{}).(bool)

	return skipped
}

// Input is a validated input slot. It holds the upstream connection of a
// node together with the validators describing what the node expects from
// the data it is fed.
type Input[T any] struct {
	desc       string
	src        Source[T]
	validators []Validator[T]
	concurrent int
	lg         *slog.Logger
}

// NewInput creates a disconnected input slot.
func NewInput[T any](desc string, opts ...InputOption[T]) *Input[T] {
	in := &Input[T]{
		desc: desc,
		lg:   slog.Default(),
	}
	for _, opt := range opts {
		opt(in)
	}

	return in
}

// Connect attaches the upstream source. A nil source disconnects the input.
func (in *Input[T]) Connect(src Source[T]) *Input[T] {
	in.src = src

	return in
}

// Connection returns the current upstream source, nil when disconnected.
func (in *Input[T]) Connection() Source[T] {
	return in.src
}

func (in *Input[T]) Describe() string {
	return in.desc
}

func (in *Input[T]) AddValidators(vs ...Validator[T]) *Input[T] {
	in.validators = append(in.validators, vs...)

	return in
}

// Validators returns a copy of the validator list.
func (in *Input[T]) Validators() []Validator[T] {
	out := make([]Validator[T], len(in.validators))
	copy(out, in.validators)

	return out
}

// Merge adopts the validators of another input.
func (in *Input[T]) Merge(other *Input[T]) *Input[T] {
	if other == nil {
		return in
	}

	return in.AddValidators(other.validators...)
}

// ReqArgs reports the required arguments of the connected source. A
// disconnected input requires nothing.
func (in *Input[T]) ReqArgs() Set {
	if in.src == nil {
		return NewSet()
	}

	return in.src.ReqArgs()
}

// Copy returns a new input with the same description and validator list.
// The connection is carried over only when keepConnection is set.
func (in *Input[T]) Copy(keepConnection bool) *Input[T] {
	out := &Input[T]{
		desc:       in.desc,
		validators: in.Validators(),
		concurrent: in.concurrent,
		lg:         in.lg,
	}
	if keepConnection {
		out.src = in.src
	}

	return out
}

// Request pulls a value from the connected source and runs every validator
// against it. All failures are collected into a single ValidationError, a
// value failing any validator is never returned.
func (in *Input[T]) Request(ctx context.Context, args Args) (T, error) {
	var zero T

	if in.src == nil {
		return zero, errors.Wrap(ErrNotConnected, in.desc)
	}

	data, err := in.src.Request(ctx, args)
	if err != nil {
		return zero, errors.Wrapf(err, "unable to request %s", in.desc)
	}

	if validationSkipped(ctx) {
		return data, nil
	}

	if verr := in.check(ctx, data); verr != nil {
		return zero, verr
	}

	return data, nil
}

func (in *Input[T]) check(ctx context.Context, data T) *ValidationError {
	if len(in.validators) == 0 {
		return nil
	}

	results := make([]error, len(in.validators))
	if in.concurrent > 1 {
		grp, _ := errgroup.WithContext(ctx)
		grp.SetLimit(in.concurrent)

		for i, v := range in.validators {
			i, v := i, v
			grp.Go(func() error {
				results[i] = v.Validate(data)

				return nil
			})
		}
		//nolint:errcheck // the closures never return an error
		_ = grp.Wait()
	} else {
		for i, v := range in.validators {
			results[i] = v.Validate(data)
		}
	}

	var failures []Failure

	for i, err := range results {
		if err == nil {
			continue
		}
		v := in.validators[i]
		if isAdvisory(v) {
			in.lg.WarnContext(ctx, "validator failed",
				"input", in.desc,
				"validator", v.Describe(),
				"reason", err.Error(),
			)

			continue
		}
		failures = append(failures, Failure{Validator: v.Describe(), Message: err.Error()})
	}

	if len(failures) == 0 {
		return nil
	}

	return &ValidationError{Input: in.desc, Failures: failures}
}
