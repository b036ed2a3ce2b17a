// Package time contains calendar-day helpers shared by the pipeline
package time

import "time"

// Day is 24h; the pipeline works in UTC so there are no DST-length days
const Day = 24 * time.Hour

// Epoch is the default anchor for day arithmetic (1970-01-01 UTC)
var Epoch = time.Unix(0, 0).UTC()

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// StartOfDay truncates t to midnight of its UTC calendar day
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays moves a UTC midnight by n calendar days
func AddDays(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) }

// DaysSince returns the signed number of whole UTC days from anchor to t,
// flooring toward negative infinity so pre-anchor instants land in earlier days.
// Unix seconds keep this exact for every representable year; Duration saturates
// past roughly 292 years.
func DaysSince(anchor, t time.Time) int64 {
	secs := StartOfDay(t).Unix() - StartOfDay(anchor).Unix()
	return FloorDiv(secs, 86400)
}

// FloorDiv is integer division rounding toward negative infinity
func FloorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ParseDay parses YYYY-MM-DD as a UTC calendar day
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, s, time.UTC)
}

// FormatDay renders a UTC calendar day as YYYY-MM-DD
func FormatDay(t time.Time) string { return t.UTC().Format(time.DateOnly) }
