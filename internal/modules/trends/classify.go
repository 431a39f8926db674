package trends

// classifyDirection compares a current count against a prior one.
// Strictly greater is up, strictly less is down, equal is flat.
// A missing prior row is flat: no history is "no signal", not an error.
func classifyDirection(current int, prior *int, up, down, flat string) string {
	if prior == nil {
		return flat
	}
	switch {
	case current > *prior:
		return up
	case current < *prior:
		return down
	default:
		return flat
	}
}

// ClassifyHiringTrend maps a company's posted-count delta onto
// increasing/decreasing/stable
func ClassifyHiringTrend(current int, prior *int) string {
	return classifyDirection(current, prior, TrendIncreasing, TrendDecreasing, TrendStable)
}

// ClassifyDemandTrend maps a role's job-count delta onto rising/falling/stable
func ClassifyDemandTrend(current int, prior *int) string {
	return classifyDirection(current, prior, DemandRising, DemandFalling, DemandStable)
}

// SalaryGrowthPct computes median growth against the prior row's median.
// Missing prior row or zero prior median yields 0.
func SalaryGrowthPct(current, prior *float64) float64 {
	if current == nil || prior == nil || *prior == 0 {
		return 0
	}
	return (*current - *prior) / *prior * 100
}
