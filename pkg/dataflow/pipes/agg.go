package pipes

import (
	"math"

	"github.com/pkg/errors"
)

// Aggregation selects how a group of values collapses into one. NaN values
// are skipped, a group holding nothing else aggregates to NaN.
type Aggregation string

const (
	Mean  Aggregation = "mean"
	Sum   Aggregation = "sum"
	First Aggregation = "first"
	Last  Aggregation = "last"
	Min   Aggregation = "min"
	Max   Aggregation = "max"
)

type aggFunc func(vals []float64) float64

// aggFor resolves an aggregation to the function applied to the non NaN
// values of a group. The function always receives at least one value.
func aggFor(agg Aggregation) (aggFunc, error) {
	switch agg {
	case Mean:
		return func(vals []float64) float64 {
			sum := 0.0
			for _, v := range vals {
				sum += v
			}

			return sum / float64(len(vals))
		}, nil
	case Sum:
		return func(vals []float64) float64 {
			sum := 0.0
			for _, v := range vals {
				sum += v
			}

			return sum
		}, nil
	case First:
		return func(vals []float64) float64 {
			return vals[0]
		}, nil
	case Last:
		return func(vals []float64) float64 {
			return vals[len(vals)-1]
		}, nil
	case Min:
		return func(vals []float64) float64 {
			low := vals[0]
			for _, v := range vals[1:] {
				if v < low {
					low = v
				}
			}

			return low
		}, nil
	case Max:
		return func(vals []float64) float64 {
			high := vals[0]
			for _, v := range vals[1:] {
				if v > high {
					high = v
				}
			}

			return high
		}, nil
	default:
		return nil, errors.Errorf("unknown aggregation %q", agg)
	}
}

// aggregate collapses a group of values, skipping NaN.
func aggregate(vals []float64, fn aggFunc) float64 {
	clean := make([]float64, 0, len(vals))

	for _, v := range vals {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}

	if len(clean) == 0 {
		return math.NaN()
	}

	return fn(clean)
}
