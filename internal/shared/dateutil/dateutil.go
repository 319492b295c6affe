package dateutil

import "time"

const Layout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Parse reads a YYYY-MM-DD calendar date as UTC midnight.
func Parse(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

// Day returns the calendar date of t, in t's own location, as UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysInclusive counts calendar days in [start, end]. It is zero or negative
// when end precedes start.
func DaysInclusive(start, end time.Time) int {
	return int((Day(end).Unix()-Day(start).Unix())/secondsPerDay) + 1
}

// Range lists every calendar day in [start, end].
func Range(start, end time.Time) []time.Time {
	n := DaysInclusive(start, end)
	if n <= 0 {
		return nil
	}
	days := make([]time.Time, 0, n)
	for d := Day(start); !d.After(Day(end)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func Within(day, start, end time.Time) bool {
	d := Day(day)
	return !d.Before(Day(start)) && !d.After(Day(end))
}
