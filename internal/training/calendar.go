package training

import (
	"time"
)

const daysPerWeek = 7

// MonthStart returns the first day of ref's month.
func MonthStart(ref Date) Date {
	return NewDate(ref.Year(), ref.Month(), 1)
}

// MonthGrid returns every date of the whole Monday..Sunday weeks covering
// ref's month: from the Monday on or before the 1st, through the Sunday on
// or after the last day. The result is 28 to 42 dates long.
func MonthGrid(ref Date) []Date {
	first := MonthStart(ref)
	last := first.AddMonths(1).AddDays(-1)

	// Go weekdays start on Sunday = 0; shift so that Monday = 0
	start := first.AddDays(-((int(first.Weekday()) + 6) % daysPerWeek))
	end := last.AddDays((daysPerWeek - int(last.Weekday())) % daysPerWeek)

	grid := make([]Date, 0, end.DaysSince(start)+1)
	for d := start; !d.After(end); d = d.AddDays(1) {
		grid = append(grid, d)
	}
	return grid
}

// WeeksUntil counts whole weeks from now until target, rounding up.
// The day difference is rounded up to a whole day first, which for a
// calendar-day target is the difference to now's own calendar date.
// Targets on or before now's date yield 0.
func WeeksUntil(target Date, now time.Time) int {
	days := target.DaysSince(DateOf(now))
	if days <= 0 {
		return 0
	}
	return (days + daysPerWeek - 1) / daysPerWeek
}

// IsToday reports whether d is now's calendar date in now's location.
func IsToday(d Date, now time.Time) bool {
	return d.Equal(DateOf(now))
}

// SameMonth reports whether a and b fall into the same calendar month.
func SameMonth(a, b Date) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
