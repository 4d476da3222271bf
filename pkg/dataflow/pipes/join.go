package pipes

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-dataflow/pkg/dataflow"
	"github.com/askiada/go-dataflow/pkg/dataflow/frame"
	"github.com/askiada/go-dataflow/pkg/dataflow/validate"
)

// How selects which index entries a join keeps.
type How string

const (
	// Inner keeps the timestamps present on both sides.
	Inner How = "inner"
	// Outer keeps every timestamp of either side, filling the holes with
	// NaN.
	Outer How = "outer"
)

// Join creates a model aligning the frames of its left and right inputs on
// their time index. Columns of the right side colliding with a left column
// come out with a _right suffix.
func Join(how How) *dataflow.Model[*frame.Frame] {
	return dataflow.NewModel("join", []string{"left", "right"},
		func(ctx context.Context, src *dataflow.ModelSources[*frame.Frame], _ dataflow.Args) (*frame.Frame, error) {
			if how != Inner && how != Outer {
				return nil, errors.Errorf("unknown join %q", how)
			}

			left, err := src.From(ctx, "left")
			if err != nil {
				return nil, err
			}

			right, err := src.From(ctx, "right")
			if err != nil {
				return nil, err
			}

			outIdx := joinIndex(left.Index(), right.Index(), how)

			var (
				cols []string
				out  [][]float64
			)

			for _, c := range left.Columns() {
				vals, err := alignColumn(left, c, outIdx)
				if err != nil {
					return nil, err
				}

				cols = append(cols, c)
				out = append(out, vals)
			}

			for _, c := range right.Columns() {
				vals, err := alignColumn(right, c, outIdx)
				if err != nil {
					return nil, err
				}

				name := c
				if left.HasColumn(c) {
					name += "_right"
				}

				cols = append(cols, name)
				out = append(out, vals)
			}

			return frame.New(outIdx, cols, out)
		},
		dataflow.ModelValidators("left", validate.NotNil()),
		dataflow.ModelValidators("right", validate.NotNil()),
	)
}

// joinIndex merges two time indexes, keeping the intersection for inner
// joins and the union for outer joins, sorted.
func joinIndex(left, right []time.Time, how How) []time.Time {
	rightPos := make(map[int64]struct{}, len(right))
	for _, ts := range right {
		rightPos[ts.UnixNano()] = struct{}{}
	}

	var out []time.Time

	switch how {
	case Inner:
		for _, ts := range left {
			if _, ok := rightPos[ts.UnixNano()]; ok {
				out = append(out, ts)
			}
		}
	case Outer:
		out = append(out, left...)

		leftPos := make(map[int64]struct{}, len(left))
		for _, ts := range left {
			leftPos[ts.UnixNano()] = struct{}{}
		}

		for _, ts := range right {
			if _, ok := leftPos[ts.UnixNano()]; !ok {
				out = append(out, ts)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })

	return out
}

// alignColumn reads a column realigned onto idx, filling the timestamps the
// frame does not cover with NaN.
func alignColumn(f *frame.Frame, col string, idx []time.Time) ([]float64, error) {
	vals, err := f.Column(col)
	if err != nil {
		return nil, err
	}

	pos := make(map[int64]int, f.Rows())
	for i, ts := range f.Index() {
		pos[ts.UnixNano()] = i
	}

	out := make([]float64, len(idx))

	for i, ts := range idx {
		if j, ok := pos[ts.UnixNano()]; ok {
			out[i] = vals[j]
		} else {
			out[i] = math.NaN()
		}
	}

	return out, nil
}
