package pipes

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"github.com/askiada/go-dataflow/pkg/dataflow"
	"github.com/askiada/go-dataflow/pkg/dataflow/frame"
	"github.com/askiada/go-dataflow/pkg/dataflow/validate"
)

// Piece slots and kinds understood by Rolling.
const (
	AggSlot  = "agg"
	EdgeSlot = "edge"

	// EdgeTrim drops the rows too early to fill a window.
	EdgeTrim = "trim"
	// EdgePad keeps them as NaN.
	EdgePad = "pad"
)

// Rolling creates a builder pipe aggregating a sliding window over every
// column. The agg piece selects the aggregation, defaulting to mean. The
// edge piece selects what happens to the first window-1 rows, defaulting
// to trim.
func Rolling(window int) *dataflow.Pipe[*frame.Frame] {
	return dataflow.NewBuilderPipe("rolling", []string{AggSlot, EdgeSlot},
		func(_ context.Context, pieces *dataflow.Pieces, data *frame.Frame, _ dataflow.Args) (*frame.Frame, error) {
			if window < 1 {
				return nil, errors.Errorf("window %d, need at least 1", window)
			}

			agg := Mean
			if pc, ok := pieces.Get(AggSlot); ok {
				agg = Aggregation(pc.Kind)
			}

			edge := EdgeTrim
			if pc, ok := pieces.Get(EdgeSlot); ok {
				edge = pc.Kind
			}

			if edge != EdgeTrim && edge != EdgePad {
				return nil, errors.Errorf("unknown edge policy %q", edge)
			}

			fn, err := aggFor(agg)
			if err != nil {
				return nil, err
			}

			n := data.Rows()
			cols := data.Columns()

			head := window - 1
			if n < window {
				head = n
			}

			outIdx := data.Index()
			if edge == EdgeTrim {
				outIdx = outIdx[head:]
			}

			out := make([][]float64, len(cols))

			for i, c := range cols {
				vals, err := data.Column(c)
				if err != nil {
					return nil, err
				}

				rolled := make([]float64, 0, len(outIdx))

				if edge == EdgePad {
					for j := 0; j < head; j++ {
						rolled = append(rolled, math.NaN())
					}
				}

				for j := head; j < n; j++ {
					rolled = append(rolled, aggregate(vals[j-window+1:j+1], fn))
				}

				out[i] = rolled
			}

			return frame.New(outIdx, cols, out)
		},
		dataflow.PipeValidators(validate.NotNil()),
	)
}
