package trends

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestClassifyHiringTrend(t *testing.T) {
	assert.Equal(t, TrendStable, ClassifyHiringTrend(5, nil))
	assert.Equal(t, TrendIncreasing, ClassifyHiringTrend(6, intPtr(5)))
	assert.Equal(t, TrendDecreasing, ClassifyHiringTrend(4, intPtr(5)))
	assert.Equal(t, TrendStable, ClassifyHiringTrend(5, intPtr(5)))
	assert.Equal(t, TrendStable, ClassifyHiringTrend(0, intPtr(0)))
}

func TestClassifyDemandTrend(t *testing.T) {
	assert.Equal(t, DemandStable, ClassifyDemandTrend(3, nil))
	assert.Equal(t, DemandRising, ClassifyDemandTrend(4, intPtr(3)))
	assert.Equal(t, DemandFalling, ClassifyDemandTrend(2, intPtr(3)))
	assert.Equal(t, DemandStable, ClassifyDemandTrend(3, intPtr(3)))
}

func TestSalaryGrowthPct(t *testing.T) {
	assert.InDelta(t, 25.0, SalaryGrowthPct(floatPtr(125000), floatPtr(100000)), 0.001)
	assert.InDelta(t, -10.0, SalaryGrowthPct(floatPtr(90000), floatPtr(100000)), 0.001)
	assert.Zero(t, SalaryGrowthPct(floatPtr(100000), nil))
	assert.Zero(t, SalaryGrowthPct(nil, floatPtr(100000)))
	assert.Zero(t, SalaryGrowthPct(floatPtr(100000), floatPtr(0)))
}
