// Package calendar builds the date grids behind the month and week
// views. Weeks start on Monday. Everything here is a pure function of
// the reference date.
package calendar

import "time"

const dateKeyLayout = "2006-01-02"

// GridWeeks is the fixed number of rows in the month view. Six rows
// always fit a month regardless of which weekday the 1st lands on.
const GridWeeks = 6

// DaysPerWeek is seven, spelled out for grid arithmetic.
const DaysPerWeek = 7

// DateKey formats a date as YYYY-MM-DD using its own calendar
// components, so the key never shifts across timezones.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// ParseDateKey is the inverse of DateKey.
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(dateKeyLayout, key)
}

// mondayOnOrBefore truncates to midnight and walks back to Monday.
func mondayOnOrBefore(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// MonthGrid returns the month view's cells for the month containing
// ref: a contiguous run of GridWeeks*DaysPerWeek dates starting at the
// Monday on or before the 1st. Leading and trailing cells come from
// the adjacent months so the grid stays rectangular.
func MonthGrid(ref time.Time) []time.Time {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	start := mondayOnOrBefore(first)

	days := make([]time.Time, 0, GridWeeks*DaysPerWeek)
	for i := 0; i < GridWeeks*DaysPerWeek; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}
	return days
}

// MonthRows groups MonthGrid into week rows for rendering.
func MonthRows(ref time.Time) [][]time.Time {
	grid := MonthGrid(ref)
	rows := make([][]time.Time, 0, GridWeeks)
	for w := 0; w < GridWeeks; w++ {
		rows = append(rows, grid[w*DaysPerWeek:(w+1)*DaysPerWeek])
	}
	return rows
}

// WorkWeek returns the Monday-through-Sunday week containing ref.
func WorkWeek(ref time.Time) []time.Time {
	start := mondayOnOrBefore(ref)
	days := make([]time.Time, 0, DaysPerWeek)
	for i := 0; i < DaysPerWeek; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}
	return days
}
