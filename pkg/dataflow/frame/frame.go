// Package frame provides the columnar time series container the concrete
// transformations operate on. A frame holds named float64 columns over a
// shared time index, missing values are NaN.
package frame

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrShape           = errors.New("columns and data shapes differ")
	ErrColumnNotFound  = errors.New("column not found")
	ErrDuplicateColumn = errors.New("duplicate column name")
	ErrRowOutOfRange   = errors.New("row out of range")
)

// Frame is an immutable set of named columns over a time index. Operations
// return new frames, the receiver is never altered. New takes ownership of
// the given slices, callers must not mutate them afterwards.
type Frame struct {
	index  []time.Time
	cols   []string
	data   [][]float64
	colIdx map[string]int
}

// New creates a frame from an index, column names and column major data:
// data[i] holds the values of cols[i], one per index entry.
func New(index []time.Time, cols []string, data [][]float64) (*Frame, error) {
	if len(cols) != len(data) {
		return nil, errors.Wrapf(ErrShape, "%d columns, %d data columns", len(cols), len(data))
	}

	colIdx := make(map[string]int, len(cols))

	for i, c := range cols {
		if _, ok := colIdx[c]; ok {
			return nil, errors.Wrap(ErrDuplicateColumn, c)
		}

		colIdx[c] = i

		if len(data[i]) != len(index) {
			return nil, errors.Wrapf(ErrShape, "column %s holds %d values for %d index entries", c, len(data[i]), len(index))
		}
	}

	return &Frame{index: index, cols: cols, data: data, colIdx: colIdx}, nil
}

func (f *Frame) Rows() int {
	return len(f.index)
}

// Columns returns the column names in order, as a fresh slice.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.cols...)
}

// Index returns the time index, as a fresh slice.
func (f *Frame) Index() []time.Time {
	return append([]time.Time(nil), f.index...)
}

func (f *Frame) HasColumn(name string) bool {
	_, ok := f.colIdx[name]

	return ok
}

// Column returns the values of a column, as a fresh slice.
func (f *Frame) Column(name string) ([]float64, error) {
	i, ok := f.colIdx[name]
	if !ok {
		return nil, errors.Wrap(ErrColumnNotFound, name)
	}

	return append([]float64(nil), f.data[i]...), nil
}

// At returns a single value.
func (f *Frame) At(row int, col string) (float64, error) {
	i, ok := f.colIdx[col]
	if !ok {
		return 0, errors.Wrap(ErrColumnNotFound, col)
	}

	if row < 0 || row >= len(f.index) {
		return 0, errors.Wrapf(ErrRowOutOfRange, "%d of %d", row, len(f.index))
	}

	return f.data[i][row], nil
}

// Select projects the frame onto the given columns, sharing the underlying
// values.
func (f *Frame) Select(cols ...string) (*Frame, error) {
	data := make([][]float64, 0, len(cols))

	for _, c := range cols {
		i, ok := f.colIdx[c]
		if !ok {
			return nil, errors.Wrap(ErrColumnNotFound, c)
		}

		data = append(data, f.data[i])
	}

	return New(f.index, append([]string(nil), cols...), data)
}

// WithColumn returns a frame with the column replaced, or appended when no
// column of that name exists. The values must match the index length.
func (f *Frame) WithColumn(name string, values []float64) (*Frame, error) {
	if len(values) != len(f.index) {
		return nil, errors.Wrapf(ErrShape, "column %s holds %d values for %d index entries", name, len(values), len(f.index))
	}

	cols := f.Columns()
	data := append([][]float64(nil), f.data...)

	if i, ok := f.colIdx[name]; ok {
		data[i] = values
	} else {
		cols = append(cols, name)
		data = append(data, values)
	}

	return New(f.index, cols, data)
}

// Relabel returns a frame with every column name passed through fn, sharing
// the underlying values. The relabeled names must stay unique, otherwise
// lookups resolve to the first match.
func (f *Frame) Relabel(fn func(string) string) *Frame {
	cols := make([]string, len(f.cols))
	colIdx := make(map[string]int, len(f.cols))

	for i, c := range f.cols {
		cols[i] = fn(c)
		if _, ok := colIdx[cols[i]]; !ok {
			colIdx[cols[i]] = i
		}
	}

	return &Frame{index: f.index, cols: cols, data: f.data, colIdx: colIdx}
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	data := make([][]float64, len(f.data))
	for i, col := range f.data {
		data[i] = append([]float64(nil), col...)
	}

	out, _ := New(f.Index(), f.Columns(), data)

	return out
}

// Equal reports whether two frames hold the same columns, index and values.
// Two NaN values are considered equal.
func (f *Frame) Equal(other *Frame) bool {
	if other == nil || len(f.cols) != len(other.cols) || len(f.index) != len(other.index) {
		return false
	}

	for i, c := range f.cols {
		if other.cols[i] != c {
			return false
		}
	}

	for i, ts := range f.index {
		if !ts.Equal(other.index[i]) {
			return false
		}
	}

	for i := range f.data {
		for j, v := range f.data[i] {
			w := other.data[i][j]
			if v != w && !(math.IsNaN(v) && math.IsNaN(w)) {
				return false
			}
		}
	}

	return true
}

func (f *Frame) String() string {
	return fmt.Sprintf("Frame[%dx%d %s]", f.Rows(), len(f.cols), strings.Join(f.cols, ","))
}
