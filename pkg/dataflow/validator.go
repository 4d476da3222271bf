package dataflow

// Validator checks a single assumption about a value. Validators are
// stateless and must not mutate the value they are given.
type Validator[T any] interface {
	// Describe states the assumption being checked.
	Describe() string
	// Validate returns nil when the value satisfies the assumption and a
	// diagnostic error otherwise.
	Validate(value T) error
}

type funcValidator[T any] struct {
	desc string
	fn   func(T) error
}

// NewValidator creates a validator from a description and a check function.
func NewValidator[T any](desc string, fn func(T) error) Validator[T] {
	return &funcValidator[T]{desc: desc, fn: fn}
}

func (v *funcValidator[T]) Describe() string {
	return v.desc
}

func (v *funcValidator[T]) Validate(value T) error {
	return v.fn(value)
}

type advisoryMarker interface {
	advisory()
}

type warnValidator[T any] struct {
	Validator[T]
}

func (w *warnValidator[T]) advisory() {}

// Warn demotes a validator to advisory. Failures are logged by the input
// running the validator instead of rejecting the value.
func Warn[T any](v Validator[T]) Validator[T] {
	return &warnValidator[T]{v}
}

func isAdvisory[T any](v Validator[T]) bool {
	_, ok := any(v).(advisoryMarker)

	return ok
}
