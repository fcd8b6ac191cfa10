package dates

import "time"

// AddMonthsClamped advances t by the given number of calendar months,
// clamping the day to the last valid day of a shorter target month
// (e.g. Jan 31 + 1 month = Feb 28/29). time.AddDate alone would roll over
// into the following month instead.
func AddMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := daysIn(firstOfTarget.Year(), firstOfTarget.Month())
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// MonthsBetween returns the number of whole calendar months from `from` to
// `to`. A partial month does not count: 2024-01-15 to 2024-02-14 is 0 months,
// to 2024-02-15 is 1 month. Returns 0 when `to` is before `from`.
func MonthsBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
