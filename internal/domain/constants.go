package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// SlotQuantum is the fixed duration of every time slot in the grid.
const SlotQuantum = 15 * time.Minute

// Default business-day envelope used when rendering a schedule
const (
	DefaultDayStart types.TimeString = "08:00"
	DefaultDayEnd   types.TimeString = "21:00"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxScheduleRangeDays = 92
	MaxNameLength        = 255
	MaxEmailLength       = 255
	MaxPhoneLength       = 32
	MaxAddressLength     = 500
)

// DateOnly truncates t to midnight in t's own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDate reports whether a and b fall on the same calendar day.
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateKey formats the calendar day of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format(DateFormat)
}

// DatesBetween returns every day in [from, until) in from's location.
func DatesBetween(from, until time.Time) []time.Time {
	start := DateOnly(from)
	end := DateOnly(until.In(from.Location()))

	dates := make([]time.Time, 0)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
