package pipes

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-dataflow/pkg/dataflow"
	"github.com/askiada/go-dataflow/pkg/dataflow/frame"
	"github.com/askiada/go-dataflow/pkg/dataflow/validate"
)

// Frequency selects the calendar buckets Period collapses rows into.
type Frequency string

const (
	Daily     Frequency = "D"
	Monthly   Frequency = "M"
	Quarterly Frequency = "Q"
	Yearly    Frequency = "Y"
)

// truncFor resolves a frequency to the function mapping a timestamp to the
// start of its bucket.
func truncFor(freq Frequency) (func(time.Time) time.Time, error) {
	switch freq {
	case Daily:
		return func(ts time.Time) time.Time {
			return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
		}, nil
	case Monthly:
		return func(ts time.Time) time.Time {
			return time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, ts.Location())
		}, nil
	case Quarterly:
		return func(ts time.Time) time.Time {
			m := (int(ts.Month())-1)/3*3 + 1

			return time.Date(ts.Year(), time.Month(m), 1, 0, 0, 0, 0, ts.Location())
		}, nil
	case Yearly:
		return func(ts time.Time) time.Time {
			return time.Date(ts.Year(), time.January, 1, 0, 0, 0, 0, ts.Location())
		}, nil
	default:
		return nil, errors.Errorf("unknown frequency %q", freq)
	}
}

// Period creates a pipe collapsing rows into calendar buckets. Every bucket
// comes out as a single row indexed by its last observed timestamp. The
// input is validated to be time sorted, so buckets are contiguous.
func Period(freq Frequency, agg Aggregation) *dataflow.Pipe[*frame.Frame] {
	return dataflow.NewPipe("period",
		func(_ context.Context, data *frame.Frame, _ dataflow.Args) (*frame.Frame, error) {
			trunc, err := truncFor(freq)
			if err != nil {
				return nil, err
			}

			fn, err := aggFor(agg)
			if err != nil {
				return nil, err
			}

			idx := data.Index()
			if len(idx) == 0 {
				return data, nil
			}

			starts := []int{0}
			last := trunc(idx[0])

			for i := 1; i < len(idx); i++ {
				if k := trunc(idx[i]); !k.Equal(last) {
					starts = append(starts, i)
					last = k
				}
			}

			bucketEnd := func(j int) int {
				if j+1 < len(starts) {
					return starts[j+1]
				}

				return len(idx)
			}

			outIdx := make([]time.Time, len(starts))
			for j := range starts {
				outIdx[j] = idx[bucketEnd(j)-1]
			}

			cols := data.Columns()
			out := make([][]float64, len(cols))

			for i, c := range cols {
				vals, err := data.Column(c)
				if err != nil {
					return nil, err
				}

				bucketed := make([]float64, len(starts))
				for j, s := range starts {
					bucketed[j] = aggregate(vals[s:bucketEnd(j)], fn)
				}

				out[i] = bucketed
			}

			return frame.New(outIdx, cols, out)
		},
		dataflow.PipeValidators(validate.NotNil(), validate.SortedIndex()),
	)
}
