// Package validate provides validators for frames, ready to attach to the
// input slots of a graph.
package validate

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-dataflow/pkg/dataflow"
	"github.com/askiada/go-dataflow/pkg/dataflow/frame"
)

// All validators run against a value, so every one of them guards against
// the nil frame on its own.
func nilFrame(f *frame.Frame) error {
	if f == nil {
		return errors.New("frame is nil")
	}

	return nil
}

// NotNil rejects the absence of a frame.
func NotNil() dataflow.Validator[*frame.Frame] {
	return dataflow.NewValidator("frame is present", nilFrame)
}

// MinRows rejects frames holding fewer than n rows.
func MinRows(n int) dataflow.Validator[*frame.Frame] {
	return dataflow.NewValidator("frame has enough rows", func(f *frame.Frame) error {
		if err := nilFrame(f); err != nil {
			return err
		}

		if f.Rows() < n {
			return errors.Errorf("%d rows, need at least %d", f.Rows(), n)
		}

		return nil
	})
}

// HasCols rejects frames missing any of the given columns.
func HasCols(names ...string) dataflow.Validator[*frame.Frame] {
	return dataflow.NewValidator("frame has columns "+strings.Join(names, ", "), func(f *frame.Frame) error {
		if err := nilFrame(f); err != nil {
			return err
		}

		var missing []string

		for _, n := range names {
			if !f.HasColumn(n) {
				missing = append(missing, n)
			}
		}

		if len(missing) > 0 {
			return errors.Errorf("missing columns: %s", strings.Join(missing, ", "))
		}

		return nil
	})
}

// SortedIndex rejects frames whose time index is not ascending.
func SortedIndex() dataflow.Validator[*frame.Frame] {
	return dataflow.NewValidator("frame index is time sorted", func(f *frame.Frame) error {
		if err := nilFrame(f); err != nil {
			return err
		}

		idx := f.Index()
		for i := 1; i < len(idx); i++ {
			if idx[i].Before(idx[i-1]) {
				return errors.Errorf("index entry %d precedes its predecessor", i)
			}
		}

		return nil
	})
}

// NoNaN rejects frames holding NaN in the given columns, or in any column
// when none are given.
func NoNaN(cols ...string) dataflow.Validator[*frame.Frame] {
	desc := "frame holds no missing values"
	if len(cols) > 0 {
		desc = "columns " + strings.Join(cols, ", ") + " hold no missing values"
	}

	return dataflow.NewValidator(desc, func(f *frame.Frame) error {
		if err := nilFrame(f); err != nil {
			return err
		}

		check := cols
		if len(check) == 0 {
			check = f.Columns()
		}

		for _, c := range check {
			vals, err := f.Column(c)
			if err != nil {
				return err
			}

			for i, v := range vals {
				if math.IsNaN(v) {
					return errors.Errorf("column %s holds NaN at row %d", c, i)
				}
			}
		}

		return nil
	})
}

// Stream is the preset for time series streams: a present, non empty frame
// with a sorted time index.
func Stream() []dataflow.Validator[*frame.Frame] {
	return []dataflow.Validator[*frame.Frame]{
		NotNil(),
		MinRows(1),
		SortedIndex(),
	}
}
