package trends

// Trend direction labels for company hiring velocity
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// Demand direction labels for role demand
const (
	DemandRising  = "rising"
	DemandFalling = "falling"
	DemandStable  = "stable"
)

// SkillDemandTrend is one skill's demand row for one date. Mention and job
// counts are scoped to that date; salary and top-entity figures come from
// the jobs mentioning the skill that day.
type SkillDemandTrend struct {
	ID           int      `json:"id,omitempty"`
	SkillName    string   `json:"skill_name"`
	Date         string   `json:"date"`
	MentionCount int      `json:"mention_count"`
	JobCount     int      `json:"job_count"`
	AvgSalary    *float64 `json:"avg_salary"`
	MedianSalary *float64 `json:"median_salary"`
	TopCompany   *string  `json:"top_company"`
	TopLocation  *string  `json:"top_location"`
}

// SalaryTrend is the as-of-date percentile snapshot for one benchmarked
// (title, location) pair. Growth compares the median (p50) against the most
// recent strictly-earlier row for the same pair, unbounded look-back.
type SalaryTrend struct {
	ID                 int      `json:"id,omitempty"`
	TitleNormalized    string   `json:"title_normalized"`
	LocationNormalized string   `json:"location_normalized"`
	Date               string   `json:"date"`
	P10                *float64 `json:"p10"`
	P25                *float64 `json:"p25"`
	P50                *float64 `json:"p50"`
	P75                *float64 `json:"p75"`
	P90                *float64 `json:"p90"`
	SampleSize         int      `json:"sample_size"`
	SalaryGrowthPct    float64  `json:"salary_growth_pct"`
}

// CompanyHiringVelocity tracks one company's hiring pace for one date.
// jobs_posted_count is date-scoped; active and filled are as-of-date totals.
type CompanyHiringVelocity struct {
	ID               int     `json:"id,omitempty"`
	CompanyName      string  `json:"company_name"`
	Date             string  `json:"date"`
	JobsPostedCount  int     `json:"jobs_posted_count"`
	JobsActiveCount  int     `json:"jobs_active_count"`
	JobsFilledCount  int     `json:"jobs_filled_count"`
	TopRole          *string `json:"top_role"`
	TopLocation      *string `json:"top_location"`
	IsActivelyHiring bool    `json:"is_actively_hiring"`
	HiringTrend      string  `json:"hiring_trend"`
}

// LocationJobDensity is the as-of-date job footprint of one location
type LocationJobDensity struct {
	ID                 int      `json:"id,omitempty"`
	LocationNormalized string   `json:"location_normalized"`
	Date               string   `json:"date"`
	JobCount           int      `json:"job_count"`
	RemoteJobCount     int      `json:"remote_job_count"`
	AvgSalary          *float64 `json:"avg_salary"`
	MedianSalary       *float64 `json:"median_salary"`
	TopSkill           *string  `json:"top_skill"`
	TopCompany         *string  `json:"top_company"`
	TopRole            *string  `json:"top_role"`
}

// RoleDemandTrend is the as-of-date demand picture for one normalized title
type RoleDemandTrend struct {
	ID               int      `json:"id,omitempty"`
	TitleNormalized  string   `json:"title_normalized"`
	Date             string   `json:"date"`
	JobCount         int      `json:"job_count"`
	AvgSalary        *float64 `json:"avg_salary"`
	MedianSalary     *float64 `json:"median_salary"`
	TopCompany       *string  `json:"top_company"`
	TopLocation      *string  `json:"top_location"`
	RemotePercentage float64  `json:"remote_percentage"`
	DemandTrend      string   `json:"demand_trend"`
}

// TrendingSkill is a rolling-window aggregate for the dashboard: summed
// job counts and averaged salary over the skill's trend rows.
type TrendingSkill struct {
	SkillName     string   `json:"skill_name"`
	TotalJobCount int      `json:"total_job_count"`
	AvgSalary     *float64 `json:"avg_salary"`
}

// ActiveCompany is a rolling-window aggregate over company velocity rows
type ActiveCompany struct {
	CompanyName     string  `json:"company_name"`
	TotalJobsPosted int     `json:"total_jobs_posted"`
	AvgActiveJobs   float64 `json:"avg_active_jobs"`
	HiringTrend     string  `json:"hiring_trend"`
}

// HotLocation is a rolling-window aggregate over location density rows
type HotLocation struct {
	Location        string   `json:"location"`
	TotalJobCount   int      `json:"total_job_count"`
	AvgMedianSalary *float64 `json:"avg_median_salary"`
}
