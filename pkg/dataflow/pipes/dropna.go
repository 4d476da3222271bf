package pipes

import (
	"context"
	"math"
	"time"

	"github.com/askiada/go-dataflow/pkg/dataflow"
	"github.com/askiada/go-dataflow/pkg/dataflow/frame"
	"github.com/askiada/go-dataflow/pkg/dataflow/validate"
)

// DropNA creates a pipe removing every row holding a missing value in any
// column.
func DropNA() *dataflow.Pipe[*frame.Frame] {
	return dataflow.NewPipe("drop_na",
		func(_ context.Context, data *frame.Frame, _ dataflow.Args) (*frame.Frame, error) {
			cols := data.Columns()

			colVals := make([][]float64, len(cols))
			for i, c := range cols {
				vals, err := data.Column(c)
				if err != nil {
					return nil, err
				}

				colVals[i] = vals
			}

			idx := data.Index()
			keep := make([]int, 0, len(idx))

			for j := range idx {
				hole := false

				for i := range colVals {
					if math.IsNaN(colVals[i][j]) {
						hole = true

						break
					}
				}

				if !hole {
					keep = append(keep, j)
				}
			}

			outIdx := make([]time.Time, 0, len(keep))
			for _, j := range keep {
				outIdx = append(outIdx, idx[j])
			}

			out := make([][]float64, len(cols))
			for i := range colVals {
				vals := make([]float64, 0, len(keep))
				for _, j := range keep {
					vals = append(vals, colVals[i][j])
				}

				out[i] = vals
			}

			return frame.New(outIdx, cols, out)
		},
		dataflow.PipeValidators(validate.NotNil()),
	)
}
