package dataflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-dataflow/pkg/dataflow"
)

func sumModel() *dataflow.Model[int] {
	return dataflow.NewModel("sum", []string{"left", "right"},
		func(ctx context.Context, src *dataflow.ModelSources[int], _ dataflow.Args) (int, error) {
			l, err := src.From(ctx, "left")
			if err != nil {
				return 0, err
			}

			r, err := src.From(ctx, "right")
			if err != nil {
				return 0, err
			}

			return l + r, nil
		})
}

func TestModelCombinesInputs(t *testing.T) {
	t.Parallel()

	m := sumModel()
	require.NoError(t, m.SetInput("left", intSource("a", 2)))
	require.NoError(t, m.SetInput("right", intSource("b", 3)))

	got, err := m.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 5, got)
}

func TestModelUnknownSlot(t *testing.T) {
	t.Parallel()

	err := sumModel().SetInput("middle", intSource("a", 1))
	require.ErrorIs(t, err, dataflow.ErrUnknownInput)
	assert.Contains(t, err.Error(), "middle")
}

func TestModelFromUnknownSlot(t *testing.T) {
	t.Parallel()

	m := dataflow.NewModel("greedy", []string{"left"},
		func(ctx context.Context, src *dataflow.ModelSources[int], _ dataflow.Args) (int, error) {
			return src.From(ctx, "nope")
		})
	require.NoError(t, m.SetInput("left", intSource("a", 1)))

	_, err := m.Run(context.Background(), nil)
	assert.ErrorIs(t, err, dataflow.ErrUnknownInput)
}

func TestModelDisconnectedSlot(t *testing.T) {
	t.Parallel()

	m := sumModel()
	require.NoError(t, m.SetInput("left", intSource("a", 2)))

	_, err := m.Run(context.Background(), nil)
	assert.ErrorIs(t, err, dataflow.ErrNotConnected)
}

func TestModelNilFunc(t *testing.T) {
	t.Parallel()

	m := dataflow.NewModel[int]("empty", []string{"left"}, nil)
	require.NoError(t, m.SetInput("left", intSource("a", 1)))

	_, err := m.Run(context.Background(), nil)
	assert.ErrorIs(t, err, dataflow.ErrFuncMustBeSet)
}

func TestModelSlotValidators(t *testing.T) {
	t.Parallel()

	m := dataflow.NewModel("sum", []string{"left", "right"},
		func(ctx context.Context, src *dataflow.ModelSources[int], _ dataflow.Args) (int, error) {
			return src.From(ctx, "left")
		},
		dataflow.ModelValidators("left", evenValidator()),
	)
	require.NoError(t, m.SetInput("left", intSource("a", 3)))

	_, err := m.Run(context.Background(), nil)

	var verr *dataflow.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "sum left", verr.Input)
}

func TestModelAddValidators(t *testing.T) {
	t.Parallel()

	m := sumModel()
	require.NoError(t, m.AddValidators("left", evenValidator()))
	assert.ErrorIs(t, m.AddValidators("middle", evenValidator()), dataflow.ErrUnknownInput)
}

func TestModelWithInputLeavesReceiver(t *testing.T) {
	t.Parallel()

	m := sumModel()

	wired, err := m.WithInput("left", intSource("a", 2))
	require.NoError(t, err)

	assert.Nil(t, m.NamedInput("left").Connection())
	assert.NotNil(t, wired.NamedInput("left").Connection())
	assert.NotEqual(t, m.Info().ID, wired.Info().ID)

	_, err = m.WithInput("middle", intSource("a", 2))
	assert.ErrorIs(t, err, dataflow.ErrUnknownInput)
}

func TestModelReqArgs(t *testing.T) {
	t.Parallel()

	m := dataflow.NewModel("sum", []string{"left", "right"},
		func(ctx context.Context, src *dataflow.ModelSources[int], _ dataflow.Args) (int, error) {
			return 0, nil
		},
		dataflow.ModelRequires[int]("period"),
	)
	require.NoError(t, m.SetInput("left", dataflow.NewSource("quotes", func(context.Context, dataflow.Args) (int, error) {
		return 0, nil
	}, "ticker")))

	assert.Equal(t, []string{"period", "ticker"}, m.ReqArgs().Sorted())

	_, err := m.Run(context.Background(), dataflow.Args{"period": "1d"})
	require.ErrorIs(t, err, dataflow.ErrMissingArgs)
	assert.Contains(t, err.Error(), "ticker")
}

func TestModelUpstreamOrder(t *testing.T) {
	t.Parallel()

	m := sumModel()
	require.NoError(t, m.SetInput("right", intSource("b", 3)))
	require.NoError(t, m.SetInput("left", intSource("a", 2)))

	assert.Equal(t, []string{"left", "right"}, m.InputNames())

	ups := m.Upstream()
	require.Len(t, ups, 2)
	assert.Equal(t, "a", ups[0].Info().Name)
	assert.Equal(t, "b", ups[1].Info().Name)
}

func TestModelCopy(t *testing.T) {
	t.Parallel()

	m := sumModel()
	require.NoError(t, m.AddValidators("left", evenValidator()))
	require.NoError(t, m.SetInput("left", intSource("a", 2)))

	cp := m.Copy()

	assert.Nil(t, cp.NamedInput("left").Connection())
	assert.Len(t, cp.NamedInput("left").Validators(), 1)

	require.NoError(t, cp.SetInput("left", intSource("a", 3)))
	require.NoError(t, cp.SetInput("right", intSource("b", 4)))

	_, err := cp.Run(context.Background(), nil)

	var verr *dataflow.ValidationError
	assert.ErrorAs(t, err, &verr)
}
