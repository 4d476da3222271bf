package dataflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-dataflow/pkg/dataflow"
)

func TestNewPipelineNilFirst(t *testing.T) {
	t.Parallel()

	_, err := dataflow.NewPipeline[int](nil)
	assert.ErrorIs(t, err, dataflow.ErrStageMustBeSet)
}

func TestPipelineSingleStage(t *testing.T) {
	t.Parallel()

	pl, err := dataflow.NewPipeline(plusOne("plus one"))
	require.NoError(t, err)
	assert.Equal(t, "pipeline(plus one)", pl.Name())
	assert.Equal(t, 1, pl.Len())

	got, err := pl.SetInput(intSource("feed", 5)).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 6, got)
}

func TestPipelineFoldsInOrder(t *testing.T) {
	t.Parallel()

	pl, err := dataflow.NewPipeline(plusOne("plus one"), timesTwo("times two"))
	require.NoError(t, err)

	got, err := pl.SetInput(intSource("feed", 5)).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 12, got)
}

func TestPipelineSharesFirstInput(t *testing.T) {
	t.Parallel()

	first := plusOne("plus one")
	first.SetInput(intSource("feed", 1))

	pl, err := dataflow.NewPipeline(first, timesTwo("times two"))
	require.NoError(t, err)

	// The pipeline adopts the input slot of its first stage, connection
	// included.
	assert.Same(t, first.Input(), pl.Input())

	got, err := pl.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 4, got)
}

func TestPipelineValidatesOnlyAtEntry(t *testing.T) {
	t.Parallel()

	first := dataflow.NewPipe("plus one", func(_ context.Context, v int, _ dataflow.Args) (int, error) {
		return v + 1, nil
	}, dataflow.PipeValidators(evenValidator()))

	pl, err := dataflow.NewPipeline(first, dataflow.NewPipe[int]("noop", nil))
	require.NoError(t, err)

	// 4 passes the entry check, the odd intermediate 5 is never validated.
	got, err := pl.SetInput(intSource("feed", 4)).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 5, got)

	_, err = pl.SetInput(intSource("feed", 3)).Run(context.Background(), nil)

	var verr *dataflow.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestPipelineExtendFlattens(t *testing.T) {
	t.Parallel()

	a := plusOne("a")
	b := timesTwo("b")
	inner, err := dataflow.NewPipeline(a, b)
	require.NoError(t, err)

	outer, err := dataflow.NewPipeline(plusOne("c"))
	require.NoError(t, err)
	outer.Extend(inner)

	require.Equal(t, 3, outer.Len())
	assert.Same(t, a, outer.Stages()[1])
	assert.Same(t, b, outer.Stages()[2])

	got, err := outer.SetInput(intSource("feed", 1)).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 6, got)
}

func TestPipelineExtendDeepCopies(t *testing.T) {
	t.Parallel()

	a := plusOne("a")
	inner, err := dataflow.NewPipeline(a)
	require.NoError(t, err)

	outer, err := dataflow.NewPipeline(plusOne("c"))
	require.NoError(t, err)
	outer.ExtendDeep(inner)

	require.Equal(t, 2, outer.Len())
	assert.NotSame(t, a, outer.Stages()[1])
	assert.Equal(t, a.Name(), outer.Stages()[1].Name())
}

func TestPipelineThenCopies(t *testing.T) {
	t.Parallel()

	base, err := dataflow.NewPipeline(plusOne("plus one"))
	require.NoError(t, err)

	ext := base.Then(timesTwo("times two"))

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, ext.Len())
	assert.NotSame(t, base.Stages()[0], ext.Stages()[0])

	got, err := ext.SetInput(intSource("feed", 3)).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 8, got)
	assert.Nil(t, base.Input().Connection())
}

func TestPipelineCopy(t *testing.T) {
	t.Parallel()

	pl, err := dataflow.NewPipeline(plusOne("plus one"), timesTwo("times two"))
	require.NoError(t, err)
	pl.SetInput(intSource("feed", 5))

	cp := pl.Copy()

	assert.Nil(t, cp.Input().Connection())
	assert.NotSame(t, pl.Input(), cp.Input())
	assert.NotSame(t, pl.Stages()[0], cp.Stages()[0])

	got, err := cp.SetInput(intSource("feed", 1)).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 4, got)

	got, err = pl.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 12, got)
}

func TestPipelineReqArgs(t *testing.T) {
	t.Parallel()

	src := dataflow.NewSource("quotes", func(context.Context, dataflow.Args) (int, error) {
		return 0, nil
	}, "ticker")

	first := dataflow.NewPipe[int]("fetch", nil, dataflow.PipeRequires[int]("period"))
	second := dataflow.NewPipe[int]("resample", nil, dataflow.PipeRequires[int]("freq"))

	pl, err := dataflow.NewPipeline(first, second)
	require.NoError(t, err)
	pl.SetInput(src)

	assert.Equal(t, []string{"freq", "period", "ticker"}, pl.ReqArgs().Sorted())
}

func TestPipelineRequestNotConnected(t *testing.T) {
	t.Parallel()

	pl, err := dataflow.NewPipeline(plusOne("plus one"))
	require.NoError(t, err)

	_, err = pl.Run(context.Background(), nil)
	require.ErrorIs(t, err, dataflow.ErrNotConnected)
	assert.Contains(t, err.Error(), "pipeline(plus one)")
}
