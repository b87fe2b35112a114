// Package valueobject contains immutable domain value types.
package valueobject

import "time"

// Frequency is the recurrence period of a recurring transaction template.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// IsValid reports whether the frequency is one of the known values.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Next returns ref advanced by one period.
// Calendar months and years clamp to the last day of the target month,
// so Jan 31 + 1 month is Feb 28 (or 29), never Mar 3.
func (f Frequency) Next(ref time.Time) (time.Time, bool) {
	switch f {
	case FrequencyDaily:
		return ref.AddDate(0, 0, 1), true
	case FrequencyWeekly:
		return ref.AddDate(0, 0, 7), true
	case FrequencyMonthly:
		return addMonthsClamped(ref, 1), true
	case FrequencyYearly:
		return addMonthsClamped(ref, 12), true
	}
	return time.Time{}, false
}

// IsDue reports whether a template with the given cursor is due on today.
// The reference point is lastProcessedAt when set, else the template's own date.
// Comparison is done at day granularity in UTC.
func (f Frequency) IsDue(originalDate time.Time, lastProcessedAt *time.Time, today time.Time) (dueDate time.Time, due bool) {
	ref := originalDate
	if lastProcessedAt != nil {
		ref = *lastProcessedAt
	}

	next, ok := f.Next(ref)
	if !ok {
		return time.Time{}, false
	}

	nextDay := TruncateToDay(next)
	return nextDay, !nextDay.After(TruncateToDay(today))
}

// TruncateToDay returns midnight UTC of t's calendar day (in UTC).
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return TruncateToDay(a).Equal(TruncateToDay(b))
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := daysIn(first.Month(), first.Year())
	if d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
