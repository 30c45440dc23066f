package reminder

import "time"

// NextOccurrence computes the due time that follows current for the
// given recurrence. It returns false for RepeatNone or an unknown value.
//
// Monthly keeps the day-of-month, rolling December into January of the
// next year. When the next month is shorter than the current day of
// month (Jan 31 → Feb), the day is clamped to the last day of that
// month rather than letting date normalization spill into March.
func NextOccurrence(current time.Time, rec Recurrence) (time.Time, bool) {
	switch rec {
	case RepeatDaily:
		return current.AddDate(0, 0, 1), true
	case RepeatWeekly:
		return current.AddDate(0, 0, 7), true
	case RepeatMonthly:
		year, month := current.Year(), current.Month()
		if month == time.December {
			year++
			month = time.January
		} else {
			month++
		}
		day := current.Day()
		if last := daysIn(year, month); day > last {
			day = last
		}
		return time.Date(year, month, day,
			current.Hour(), current.Minute(), current.Second(), current.Nanosecond(),
			current.Location()), true
	}
	return time.Time{}, false
}

// daysIn returns the number of days in the given month. Day zero of the
// following month normalizes to the last day of this one.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}
