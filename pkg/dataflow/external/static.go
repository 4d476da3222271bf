package external

import (
	"context"

	"github.com/askiada/go-dataflow/pkg/dataflow"
)

// NewStatic creates a leaf source always returning the same value. The
// given argument names are still required on every request, so a graph
// developed against fixed data keeps its argument contract.
func NewStatic[T any](name string, value T, requires ...string) *dataflow.FuncSource[T] {
	return dataflow.NewSource(name, func(context.Context, dataflow.Args) (T, error) {
		return value, nil
	}, requires...)
}
