package dataflow_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/askiada/go-dataflow/pkg/dataflow"
)

// labels is a minimal relabelable value for exercising translators.
type labels []string

func (l labels) Relabel(fn func(string) string) labels {
	out := make(labels, len(l))
	for i, n := range l {
		out[i] = fn(n)
	}

	return out
}

func intSource(name string, value int) *dataflow.FuncSource[int] {
	return dataflow.NewSource(name, func(context.Context, dataflow.Args) (int, error) {
		return value, nil
	})
}

func countingSource(t *testing.T, value int) (*dataflow.FuncSource[int], *atomic.Int64) {
	t.Helper()

	calls := &atomic.Int64{}
	src := dataflow.NewSource("counter", func(context.Context, dataflow.Args) (int, error) {
		calls.Add(1)

		return value, nil
	})

	return src, calls
}
