package pipes

import (
	"context"

	"github.com/askiada/go-dataflow/pkg/dataflow"
	"github.com/askiada/go-dataflow/pkg/dataflow/frame"
	"github.com/askiada/go-dataflow/pkg/dataflow/validate"
)

// Rebase creates a pipe rescaling every column so its first value equals
// at, keeping relative moves intact.
func Rebase(at float64) *dataflow.Pipe[*frame.Frame] {
	return dataflow.NewPipe("rebase",
		func(_ context.Context, data *frame.Frame, _ dataflow.Args) (*frame.Frame, error) {
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

				based := make([]float64, n)
				for j, v := range vals {
					based[j] = v / vals[0] * at
				}

				out[i] = based
			}

			return frame.New(data.Index(), cols, out)
		},
		dataflow.PipeValidators(validate.NotNil()),
	)
}
