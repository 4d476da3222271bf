package pipes_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/askiada/go-dataflow/pkg/dataflow"
	"github.com/askiada/go-dataflow/pkg/dataflow/external"
	"github.com/askiada/go-dataflow/pkg/dataflow/frame"
)

func day(i int) time.Time {
	return time.Date(2021, time.January, i, 0, 0, 0, 0, time.UTC)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mkFrame(t *testing.T, index []time.Time, cols []string, data [][]float64) *frame.Frame {
	t.Helper()

	f, err := frame.New(index, cols, data)
	require.NoError(t, err)

	return f
}

func frameSource(t *testing.T, f *frame.Frame) *dataflow.FuncSource[*frame.Frame] {
	t.Helper()

	return external.NewStatic("feed", f)
}
