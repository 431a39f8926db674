package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		input    []float64
		expected float64
	}{
		{name: "odd length", input: []float64{5, 1, 3}, expected: 3.0},
		{name: "even length averages center pair", input: []float64{1, 2, 3, 4}, expected: 2.5},
		{name: "single element", input: []float64{42}, expected: 42.0},
		{name: "unsorted even", input: []float64{9, 1, 7, 3}, expected: 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Median(tt.input)
			require.NotNil(t, m)
			assert.InDelta(t, tt.expected, *m, 1e-9)
		})
	}
}

func TestMedian_Empty(t *testing.T) {
	assert.Nil(t, Median(nil))
	assert.Nil(t, Median([]float64{}))
}

func TestMedian_DoesNotMutateInput(t *testing.T) {
	input := []float64{3, 1, 2}
	_ = Median(input)
	assert.Equal(t, []float64{3, 1, 2}, input)
}

func TestMean(t *testing.T) {
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-9)
	assert.Equal(t, 0.0, Mean(nil))
}

func TestPercentChange(t *testing.T) {
	assert.InDelta(t, 50.0, PercentChange(15, 10), 1e-9)
	assert.InDelta(t, -25.0, PercentChange(75, 100), 1e-9)
	assert.Equal(t, 0.0, PercentChange(10, 0))
}
