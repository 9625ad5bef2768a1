package util

import "time"

const dateLayout = "2006-01-02"

// ParseDate parses a calendar date in the "YYYY-MM-DD" wire form.
// Returns (t, true) if it parsed.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseDateDefault parses a date or returns def if empty/invalid.
func ParseDateDefault(s string, def time.Time) time.Time {
	if t, ok := ParseDate(s); ok {
		return t
	}
	return def
}

// FormatDate renders a date in the "YYYY-MM-DD" wire form.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// MonthKey truncates a date to its "YYYY-MM" bucket.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
