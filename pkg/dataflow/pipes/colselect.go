package pipes

import (
	"context"

	"github.com/askiada/go-dataflow/pkg/dataflow"
	"github.com/askiada/go-dataflow/pkg/dataflow/frame"
	"github.com/askiada/go-dataflow/pkg/dataflow/validate"
)

// ColSelect creates a pipe projecting its input onto the given columns, in
// the given order. The input is validated to hold all of them.
func ColSelect(cols ...string) *dataflow.Pipe[*frame.Frame] {
	return dataflow.NewPipe("col_select",
		func(_ context.Context, data *frame.Frame, _ dataflow.Args) (*frame.Frame, error) {
			return data.Select(cols...)
		},
		dataflow.PipeValidators(validate.NotNil(), validate.HasCols(cols...)),
	)
}
