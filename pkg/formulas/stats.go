package formulas

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Median returns the median of the values, or nil when the slice is empty.
// The input is not modified. For an even number of values the two central
// elements are averaged. The empty case is deliberately nil, not zero:
// callers treat a missing median as "no data", and a fabricated 0 would
// poison downstream averages.
func Median(data []float64) *float64 {
	if len(data) == 0 {
		return nil
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	n := len(sorted)
	var m float64
	if n%2 == 1 {
		m = sorted[n/2]
	} else {
		m = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return &m
}

// PercentChange returns the percentage change from prior to current.
// A zero prior value yields 0 rather than a division error; "no baseline"
// is a no-signal condition, not a fault.
func PercentChange(current, prior float64) float64 {
	if prior == 0 {
		return 0
	}
	return (current - prior) / prior * 100
}
