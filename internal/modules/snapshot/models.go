package snapshot

// Market sentiment classifications
const (
	SentimentBullish = "bullish"
	SentimentNeutral = "neutral"
	SentimentBearish = "bearish"
)

// MarketSnapshot is the whole-market aggregate for one calendar date.
// Optional fields are pointers: absent means "no data", never zero.
type MarketSnapshot struct {
	ID                   int      `json:"id,omitempty"`
	Date                 string   `json:"date"`
	TotalJobs            int      `json:"total_jobs"`
	NewJobsToday         int      `json:"new_jobs_today"`
	JobsFilledToday      int      `json:"jobs_filled_today"`
	AvgSalary            *float64 `json:"avg_salary"`
	MedianSalary         *float64 `json:"median_salary"`
	RemoteJobPercentage  *float64 `json:"remote_job_percentage"`
	TopSkill             *string  `json:"top_skill"`
	TopCompany           *string  `json:"top_company"`
	TopLocation          *string  `json:"top_location"`
	TotalCompaniesHiring int      `json:"total_companies_hiring"`
	MarketSentiment      string   `json:"market_sentiment"`
	Notes                *string  `json:"notes"`
	CreatedAt            string   `json:"created_at,omitempty"`
}
