package external

import (
	"bytes"
	"context"
	"encoding/csv"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-dataflow/pkg/dataflow"
	"github.com/askiada/go-dataflow/pkg/dataflow/frame"
)

// LoadFrame reads a CSV document into a frame. The first column holds the
// time index in RFC 3339 or YYYY-MM-DD form, every other column holds
// float64 values. Empty cells come out as NaN.
func LoadFrame(path string) (*frame.Frame, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", path)
	}

	recs, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse %s", path)
	}

	if len(recs) == 0 {
		return nil, errors.Errorf("%s holds no header", path)
	}

	cols := recs[0][1:]
	rows := recs[1:]

	index := make([]time.Time, len(rows))
	data := make([][]float64, len(cols))

	for i := range data {
		data[i] = make([]float64, len(rows))
	}

	for j, rec := range rows {
		ts, err := parseTime(rec[0])
		if err != nil {
			return nil, errors.Wrapf(err, "row %d of %s", j+1, path)
		}

		index[j] = ts

		for i, cell := range rec[1:] {
			if cell == "" {
				data[i][j] = math.NaN()

				continue
			}

			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d of %s", j+1, path)
			}

			data[i][j] = v
		}
	}

	return frame.New(index, cols, data)
}

// FrameFile creates a leaf source reading a CSV document on every request.
func FrameFile(name, path string) *dataflow.FuncSource[*frame.Frame] {
	return dataflow.NewSource(name, func(context.Context, dataflow.Args) (*frame.Frame, error) {
		return LoadFrame(path)
	})
}

func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}

	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, errors.Errorf("unable to parse time %q", s)
	}

	return ts, nil
}
