package facts

// JobFact is one scraped job posting. Facts are append-mostly: the ingestion
// pipeline inserts new postings and flips status on existing ones.
type JobFact struct {
	ID       int     `json:"id,omitempty"`
	JobHash  string  `json:"job_hash"`
	Title    string  `json:"title"`
	Company  string  `json:"company"`
	Location *string `json:"location"`
	Status   string  `json:"status"` // active, closed, filled
	PostedAt string  `json:"posted_at"`
	UpdatedAt string `json:"updated_at"`
}

// SkillMention is one skill-extraction event for a job. A job mentions a
// skill once per extraction run, so counts are per mention, not per job.
type SkillMention struct {
	JobHash   string `json:"job_hash"`
	SkillName string `json:"skill_name"`
	CreatedAt string `json:"created_at"`
}

// SalaryBenchmark holds pre-aggregated percentile salary stats for a
// normalized (title, location) pair. Aggregation happens upstream.
type SalaryBenchmark struct {
	TitleNormalized    string   `json:"title_normalized"`
	LocationNormalized string   `json:"location_normalized"`
	P10                *float64 `json:"p10"`
	P25                *float64 `json:"p25"`
	P50                *float64 `json:"p50"`
	P75                *float64 `json:"p75"`
	P90                *float64 `json:"p90"`
	SampleSize         int      `json:"sample_size"`
}

// BenchmarkKey identifies one benchmarked (title, location) pair
type BenchmarkKey struct {
	Title    string
	Location string
}

// CompanyActivity holds a company's hiring counters for one analysis day
type CompanyActivity struct {
	PostedToday int
	Active      int
	Filled      int
}
