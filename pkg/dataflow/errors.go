package dataflow

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotConnected    = errors.New("input is not connected")
	ErrCycle           = errors.New("connection creates a cycle")
	ErrMissingArgs     = errors.New("missing required arguments")
	ErrUnknownInput    = errors.New("unknown input name")
	ErrUnknownPiece    = errors.New("unknown piece slot")
	ErrNoPieces        = errors.New("pipe has no pieces")
	ErrSourceMustBeSet = errors.New("src must be set")
	ErrStageMustBeSet  = errors.New("first must be set")
	ErrFuncMustBeSet   = errors.New("fn must be set")
)

// Failure is a single validator rejection.
type Failure struct {
	Validator string
	Message   string
}

// ValidationError reports every validator an input rejected a value for.
// The value itself is withheld from the caller.
type ValidationError struct {
	Input    string
	Failures []Failure
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Validator, f.Message))
	}

	return fmt.Sprintf("validation failed for %s: %s", e.Input, strings.Join(msgs, "; "))
}

func missingArgs(name string, missing []string) error {
	return errors.Wrapf(ErrMissingArgs, "%s requires %s", name, strings.Join(missing, ", "))
}
