// Package clock abstracts "today" so analysis jobs and tests can agree on
// date boundaries. All trend tables are keyed on calendar dates in UTC.
package clock

import "time"

// DateFormat is the canonical date layout used across all owned tables.
const DateFormat = "2006-01-02"

// Clock provides the current time and its calendar date.
type Clock interface {
	Now() time.Time
	Today() string
}

// System is the real wall clock, normalized to UTC.
type System struct{}

// Now returns the current UTC time.
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Today returns the current UTC calendar date.
func (System) Today() string {
	return time.Now().UTC().Format(DateFormat)
}

// Fixed is a pinned clock for tests.
type Fixed struct {
	Time time.Time
}

// Now returns the pinned time.
func (f Fixed) Now() time.Time {
	return f.Time
}

// Today returns the pinned calendar date.
func (f Fixed) Today() string {
	return f.Time.Format(DateFormat)
}

// DaysAgo returns the date n days before the given date.
// The input must be in DateFormat; an unparseable date returns itself.
func DaysAgo(date string, n int) string {
	t, err := time.Parse(DateFormat, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, -n).Format(DateFormat)
}
