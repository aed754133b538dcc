package calendar

import (
	"time"

	"github.com/timetabled/timetabled/internal/constants"
)

// MonthNames in display order, January first.
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// WeekdayNames starting from Sunday, matching the grid's column order.
var WeekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Cell is one slot in the rendered month grid. Blank cells pad the first week
// so that day 1 lands on its weekday column.
type Cell struct {
	Day       int // 0 for leading blanks
	Blank     bool
	IsToday   bool
	HasEvents bool
	NumEvents int
}

// Month is the fully derived grid for one (month, year) pair.
type Month struct {
	Month time.Month
	Year  int
	Cells []Cell
}

// DaysIn returns the number of days in the given month using the host
// calendar's Gregorian rules.
func DaysIn(month time.Month, year int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday index (0=Sunday) of day 1 of the month.
func FirstWeekday(month time.Month, year int) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// DateKey returns the canonical store key for a day of the given month.
func DateKey(year int, month time.Month, day int) string {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(constants.DateFormat)
}

// BuildMonth derives the grid for (month, year). eventCounts maps date keys to
// the number of events in that bucket; now supplies the "today" reference.
func BuildMonth(month time.Month, year int, eventCounts map[string]int, now time.Time) Month {
	offset := FirstWeekday(month, year)
	days := DaysIn(month, year)

	cells := make([]Cell, 0, offset+days)
	for i := 0; i < offset; i++ {
		cells = append(cells, Cell{Blank: true})
	}

	for day := 1; day <= days; day++ {
		n := eventCounts[DateKey(year, month, day)]
		cells = append(cells, Cell{
			Day:       day,
			IsToday:   day == now.Day() && month == now.Month() && year == now.Year(),
			HasEvents: n > 0,
			NumEvents: n,
		})
	}

	return Month{Month: month, Year: year, Cells: cells}
}

// Prev steps one month back, wrapping January into December of the prior year.
func Prev(month time.Month, year int) (time.Month, int) {
	if month == time.January {
		return time.December, year - 1
	}
	return month - 1, year
}

// Next steps one month forward, wrapping December into January of the next year.
func Next(month time.Month, year int) (time.Month, int) {
	if month == time.December {
		return time.January, year + 1
	}
	return month + 1, year
}
