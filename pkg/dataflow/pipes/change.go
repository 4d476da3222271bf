package pipes

import (
	"context"

	"github.com/pkg/errors"

	"github.com/askiada/go-dataflow/pkg/dataflow"
	"github.com/askiada/go-dataflow/pkg/dataflow/frame"
	"github.com/askiada/go-dataflow/pkg/dataflow/validate"
)

// Strategy selects how Change compares a row against its predecessor.
type Strategy string

const (
	// PctChange emits the relative change against the previous row.
	PctChange Strategy = "pct_change"
	// Diff emits the absolute difference against the previous row.
	Diff Strategy = "diff"
)

// Change creates a pipe replacing every value with its change against the
// previous row. The first row has no predecessor and is dropped, an input
// of n rows comes out as n-1 rows.
func Change(strategy Strategy) *dataflow.Pipe[*frame.Frame] {
	return dataflow.NewPipe("change",
		func(_ context.Context, data *frame.Frame, _ dataflow.Args) (*frame.Frame, error) {
			var step func(prev, cur float64) float64

			switch strategy {
			case PctChange:
				step = func(prev, cur float64) float64 { return cur/prev - 1 }
			case Diff:
				step = func(prev, cur float64) float64 { return cur - prev }
			default:
				return nil, errors.Errorf("unknown change strategy %q", strategy)
			}

			return changeFrame(data, step)
		},
		dataflow.PipeValidators(validate.NotNil()),
	)
}

// Returns creates a pipe turning a price series into percentage returns,
// the relative change against the previous row scaled by 100. The first
// row is dropped like Change does.
func Returns() *dataflow.Pipe[*frame.Frame] {
	return dataflow.NewPipe("stock_returns",
		func(_ context.Context, data *frame.Frame, _ dataflow.Args) (*frame.Frame, error) {
			return changeFrame(data, func(prev, cur float64) float64 {
				return (cur/prev - 1) * 100
			})
		},
		dataflow.PipeValidators(validate.NotNil()),
	)
}

func changeFrame(data *frame.Frame, step func(prev, cur float64) float64) (*frame.Frame, error) {
	n := data.Rows()
	if n == 0 {
		return data, nil
	}

	cols := data.Columns()
	out := make([][]float64, len(cols))

	for i, c := range cols {
		vals, err := data.Column(c)
		if err != nil {
			return nil, err
		}

		changed := make([]float64, n-1)
		for j := 1; j < n; j++ {
			changed[j-1] = step(vals[j-1], vals[j])
		}

		out[i] = changed
	}

	return frame.New(data.Index()[1:], cols, out)
}
