package hours

import (
	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
)

// CompleteMonth fills the month of the first entry so that every day appears
// exactly once, in order. Days without an extracted entry become
// placeholders. Entries are expected sorted; an empty input gives an empty
// result.
func CompleteMonth(entries []attendance.DayEntry) []attendance.DayEntry {
	if len(entries) == 0 {
		return []attendance.DayEntry{}
	}
	first := entries[0].Date
	return CompleteMonthOf(entries, attendance.MonthYear{Month: first.Month, Year: first.Year})
}

// CompleteMonthOf is CompleteMonth for an explicit month. Entries outside it
// are dropped.
func CompleteMonthOf(entries []attendance.DayEntry, month attendance.MonthYear) []attendance.DayEntry {
	if month.Month < 1 || month.Month > 12 {
		return []attendance.DayEntry{}
	}

	byDay := make(map[int]attendance.DayEntry, len(entries))
	for _, e := range entries {
		if e.Date.Month != month.Month || e.Date.Year != month.Year {
			continue
		}
		if _, ok := byDay[e.Date.Day]; !ok {
			byDay[e.Date.Day] = e
		}
	}

	days := calendar.DaysInMonth(month.Month, month.Year)
	out := make([]attendance.DayEntry, 0, days)
	for day := 1; day <= days; day++ {
		if e, ok := byDay[day]; ok {
			out = append(out, e)
			continue
		}
		out = append(out, attendance.NewPlaceholderEntry(calendar.Date{Day: day, Month: month.Month, Year: month.Year}))
	}
	return out
}

// TargetMonth picks the month to complete: the page header when some entry
// falls in it, otherwise the month of the first entry.
func TargetMonth(entries []attendance.DayEntry, header attendance.MonthYear) attendance.MonthYear {
	if !header.IsZero() {
		for _, e := range entries {
			if e.Date.Month == header.Month && e.Date.Year == header.Year {
				return header
			}
		}
	}
	if len(entries) == 0 {
		return attendance.MonthYear{}
	}
	return attendance.MonthYear{Month: entries[0].Date.Month, Year: entries[0].Date.Year}
}
