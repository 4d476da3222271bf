package frame_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-dataflow/pkg/dataflow/frame"
)

func day(i int) time.Time {
	return time.Date(2021, time.January, i, 0, 0, 0, 0, time.UTC)
}

func mkFrame(t *testing.T, index []time.Time, cols []string, data [][]float64) *frame.Frame {
	t.Helper()

	f, err := frame.New(index, cols, data)
	require.NoError(t, err)

	return f
}

func pricesFrame(t *testing.T) *frame.Frame {
	t.Helper()

	return mkFrame(t,
		[]time.Time{day(1), day(2)},
		[]string{"open", "close"},
		[][]float64{{100, 110}, {105, 115}},
	)
}

func TestNewShapeMismatch(t *testing.T) {
	t.Parallel()

	_, err := frame.New(nil, []string{"open", "close"}, [][]float64{{}})
	assert.ErrorIs(t, err, frame.ErrShape)
}

func TestNewRaggedColumn(t *testing.T) {
	t.Parallel()

	_, err := frame.New([]time.Time{day(1), day(2)}, []string{"open"}, [][]float64{{100}})
	require.ErrorIs(t, err, frame.ErrShape)
	assert.Contains(t, err.Error(), "open")
}

func TestNewDuplicateColumn(t *testing.T) {
	t.Parallel()

	_, err := frame.New([]time.Time{day(1)}, []string{"open", "open"}, [][]float64{{1}, {2}})
	assert.ErrorIs(t, err, frame.ErrDuplicateColumn)
}

func TestSelect(t *testing.T) {
	t.Parallel()

	f := pricesFrame(t)

	sel, err := f.Select("close", "open")
	require.NoError(t, err)
	assert.Equal(t, []string{"close", "open"}, sel.Columns())

	got, err := sel.Column("close")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff([]float64{105, 115}, got))

	_, err = f.Select("volume")
	assert.ErrorIs(t, err, frame.ErrColumnNotFound)
}

func TestColumnFreshCopy(t *testing.T) {
	t.Parallel()

	f := pricesFrame(t)

	got, err := f.Column("open")
	require.NoError(t, err)
	got[0] = 999

	again, err := f.Column("open")
	require.NoError(t, err)
	assert.Equal(t, 100.0, again[0])
}

func TestAt(t *testing.T) {
	t.Parallel()

	f := pricesFrame(t)

	v, err := f.At(1, "close")
	require.NoError(t, err)
	assert.Equal(t, 115.0, v)

	_, err = f.At(2, "close")
	assert.ErrorIs(t, err, frame.ErrRowOutOfRange)

	_, err = f.At(0, "volume")
	assert.ErrorIs(t, err, frame.ErrColumnNotFound)
}

func TestWithColumn(t *testing.T) {
	t.Parallel()

	f := pricesFrame(t)

	replaced, err := f.WithColumn("close", []float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"open", "close"}, replaced.Columns())

	got, err := replaced.Column("close")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff([]float64{1, 2}, got))

	// The receiver keeps its values.
	old, err := f.Column("close")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff([]float64{105, 115}, old))

	appended, err := f.WithColumn("volume", []float64{1000, math.NaN()})
	require.NoError(t, err)
	assert.Equal(t, []string{"open", "close", "volume"}, appended.Columns())

	vol, err := appended.Column("volume")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff([]float64{1000, math.NaN()}, vol, cmpopts.EquateNaNs()))

	_, err = f.WithColumn("volume", []float64{1})
	assert.ErrorIs(t, err, frame.ErrShape)
}

func TestRelabelKeepsValues(t *testing.T) {
	t.Parallel()

	f := pricesFrame(t)
	up := f.Relabel(strings.ToUpper)

	assert.Equal(t, []string{"OPEN", "CLOSE"}, up.Columns())

	want, err := f.Column("open")
	require.NoError(t, err)
	got, err := up.Column("OPEN")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(want, got))

	assert.True(t, f.HasColumn("open"))
	assert.False(t, f.HasColumn("OPEN"))
}

func TestEqual(t *testing.T) {
	t.Parallel()

	withNaN := func() *frame.Frame {
		return mkFrame(t, []time.Time{day(1), day(2)}, []string{"close"}, [][]float64{{100, math.NaN()}})
	}

	assert.True(t, withNaN().Equal(withNaN()))
	assert.False(t, withNaN().Equal(nil))
	assert.False(t, withNaN().Equal(pricesFrame(t)))

	other := mkFrame(t, []time.Time{day(1), day(2)}, []string{"close"}, [][]float64{{100, 110}})
	assert.False(t, withNaN().Equal(other))

	later := mkFrame(t, []time.Time{day(2), day(3)}, []string{"close"}, [][]float64{{100, math.NaN()}})
	assert.False(t, withNaN().Equal(later))
}

func TestCloneEqual(t *testing.T) {
	t.Parallel()

	f := pricesFrame(t)
	cl := f.Clone()

	assert.True(t, f.Equal(cl))
	assert.NotSame(t, f, cl)
}

func TestIndexFreshCopy(t *testing.T) {
	t.Parallel()

	f := pricesFrame(t)

	idx := f.Index()
	idx[0] = day(9)

	assert.Equal(t, day(1), f.Index()[0])
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Frame[2x2 open,close]", pricesFrame(t).String())
}
