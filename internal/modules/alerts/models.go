package alerts

// AlertType enumerates market alert kinds. Only SkillSurge, SalarySpike,
// and HiringSpree have active detectors; the remaining values are reserved
// for future rules and may appear in stored data written by later versions.
type AlertType string

const (
	TypeSkillSurge   AlertType = "skill_surge"
	TypeSalarySpike  AlertType = "salary_spike"
	TypeHiringFreeze AlertType = "hiring_freeze"
	TypeHiringSpree  AlertType = "hiring_spree"
	TypeLocationBoom AlertType = "location_boom"
	TypeRoleObsolete AlertType = "role_obsolete"
)

// Severity enumerates alert severities
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// EntityType enumerates what kind of entity an alert refers to
type EntityType string

const (
	EntitySkill    EntityType = "skill"
	EntityCompany  EntityType = "company"
	EntityLocation EntityType = "location"
	EntityRole     EntityType = "role"
)

// MarketAlert is one detected market event. Alerts are append-only: the
// detector inserts them, the inbox flips is_read, and retention cleanup
// deletes read rows past their age limit.
type MarketAlert struct {
	ID                int        `json:"id,omitempty"`
	AlertType         AlertType  `json:"alert_type"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Severity          Severity   `json:"severity"`
	RelatedEntity     string     `json:"related_entity"`
	RelatedEntityType EntityType `json:"related_entity_type"`
	MetricValue       *float64   `json:"metric_value"`
	MetricChangePct   *float64   `json:"metric_change_pct"`
	IsRead            bool       `json:"is_read"`
	CreatedAt         string     `json:"created_at"`
}
