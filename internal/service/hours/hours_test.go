package hours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
)

var september = attendance.MonthYear{Month: 9, Year: 2024}

// septemberEntries builds a full September 2024: 9:00 Sunday to Wednesday,
// 8:30 on Thursdays, nothing on the weekend.
func septemberEntries(upTo int) []attendance.DayEntry {
	var entries []attendance.DayEntry
	for day := 1; day <= 30; day++ {
		d := calendar.Date{Day: day, Month: 9, Year: 2024}
		e := attendance.DayEntry{Date: d, Weekday: calendar.WeekdayName(d)}
		e.IsHoliday = e.IsWeekend()
		if day <= upTo && !e.IsWeekend() {
			e.ClockedTime = "9:00"
			if d.Weekday() == time.Thursday {
				e.ClockedTime = "8:30"
			}
		}
		entries = append(entries, e)
	}
	return entries
}

func TestCompleteMonth(t *testing.T) {
	entries := []attendance.DayEntry{
		{Date: calendar.Date{Day: 3, Month: 2, Year: 2024}, Weekday: "Saturday", IsHoliday: true},
		{Date: calendar.Date{Day: 5, Month: 2, Year: 2024}, Weekday: "Monday", ClockedTime: "9:12"},
		{Date: calendar.Date{Day: 5, Month: 2, Year: 2024}, Weekday: "Monday", ClockedTime: "1:00"},
	}

	out := CompleteMonth(entries)
	require.Len(t, out, 29)

	for i, e := range out {
		assert.Equal(t, calendar.Date{Day: i + 1, Month: 2, Year: 2024}, e.Date)
		assert.Equal(t, calendar.WeekdayName(e.Date), e.Weekday)
	}

	assert.False(t, out[2].IsFutureOrUnknown)
	assert.Equal(t, "9:12", out[4].ClockedTime, "first entry for a day wins")

	assert.True(t, out[0].IsFutureOrUnknown)
	assert.Empty(t, out[0].ClockedTime)
	assert.False(t, out[0].IsHoliday)
	assert.Equal(t, "Thursday", out[28].Weekday)
	assert.True(t, out[28].IsFutureOrUnknown)

	// weekend placeholders are holidays
	for _, i := range []int{1, 8, 9} {
		assert.True(t, out[i].IsFutureOrUnknown, out[i].Date.String())
		assert.True(t, out[i].IsWeekend(), out[i].Date.String())
		assert.True(t, out[i].IsHoliday, out[i].Date.String())
		assert.Empty(t, out[i].HolidayName, out[i].Date.String())
	}
}

func TestCompleteMonth_Empty(t *testing.T) {
	out := CompleteMonth(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestCompleteMonthOf_DropsOtherMonths(t *testing.T) {
	entries := []attendance.DayEntry{
		{Date: calendar.Date{Day: 31, Month: 8, Year: 2024}, Weekday: "Saturday"},
		{Date: calendar.Date{Day: 2, Month: 9, Year: 2024}, Weekday: "Monday", ClockedTime: "9:00"},
	}

	month := TargetMonth(entries, september)
	assert.Equal(t, september, month)

	out := CompleteMonthOf(entries, month)
	require.Len(t, out, 30)
	assert.Equal(t, "9:00", out[1].ClockedTime)

	assert.Equal(t, attendance.MonthYear{Month: 8, Year: 2024}, TargetMonth(entries, attendance.MonthYear{}))
	assert.Equal(t, attendance.MonthYear{Month: 8, Year: 2024}, TargetMonth(entries, attendance.MonthYear{Month: 1, Year: 2025}))
}

func TestRequirement_FullMonthAllRegular(t *testing.T) {
	entries := septemberEntries(30)
	state := NewClassificationState(entries, nil)
	state.Initialize()

	req := NewCalculator(calendar.LocaleHebrew).Requirement(entries, state, calendar.Date{Day: 1, Month: 10, Year: 2024})

	assert.Equal(t, 540*18+510*4, req.TotalRequiredMinutes)
	assert.Equal(t, 11760, req.CompletedMinutes)
	assert.Equal(t, 0, req.RemainingMinutes)
	assert.Equal(t, 0, req.RemainingWorkdays)
	assert.Equal(t, 0, req.DailyRequiredMinutes)
	assert.Equal(t, 100.0, req.CompletionPercentage)
	assert.Equal(t, "100.0", req.CompletionFormatted)
	assert.Equal(t, attendance.HoursMinutes{Hours: 196, Minutes: 0}, req.TotalRequired)
	assert.Equal(t, "196 שעות", req.TotalRequiredFormatted)
}

func TestRequirement_MidMonth(t *testing.T) {
	entries := septemberEntries(14)
	state := NewClassificationState(entries, nil)

	req := NewCalculator(calendar.LocaleEnglish).Requirement(entries, state, calendar.Date{Day: 15, Month: 9, Year: 2024})

	assert.Equal(t, 11760, req.TotalRequiredMinutes)
	assert.Equal(t, 5340, req.CompletedMinutes)
	assert.Equal(t, 6420, req.RemainingMinutes)
	assert.Equal(t, 12, req.RemainingWorkdays)
	assert.Equal(t, 535, req.DailyRequiredMinutes)
	assert.Equal(t, "8:55", req.DailyRequiredFormatted)
	assert.Equal(t, "45.4", req.CompletionFormatted)
	assert.Equal(t, "107 hours", req.RemainingFormatted)
}

func TestRequirement_WeekendIsHardFloor(t *testing.T) {
	entries := septemberEntries(30)
	friday := calendar.Date{Day: 6, Month: 9, Year: 2024}
	entries[5].ClockedTime = "" // "---" in the portal
	require.Equal(t, "Friday", entries[5].Weekday)

	calc := NewCalculator(calendar.LocaleHebrew)
	today := calendar.Date{Day: 1, Month: 9, Year: 2024}

	state := NewClassificationState(entries, nil)
	before := calc.Requirement(entries, state, today)

	state.Set(friday, attendance.ClassificationRegular)
	after := calc.Requirement(entries, state, today)

	assert.Equal(t, before.TotalRequiredMinutes, after.TotalRequiredMinutes)
	assert.Equal(t, before.RemainingWorkdays, after.RemainingWorkdays)
	assert.Equal(t, attendance.ClassificationRegular, state.Get(friday), "the stored value is kept")
}

func TestRequirement_Monotonic(t *testing.T) {
	entries := septemberEntries(10)
	calc := NewCalculator(calendar.LocaleHebrew)
	today := calendar.Date{Day: 11, Month: 9, Year: 2024}

	for _, e := range entries {
		if e.IsWeekend() {
			continue
		}
		state := NewClassificationState(entries, nil)
		state.Initialize()
		base := calc.Requirement(entries, state, today).TotalRequiredMinutes

		state.Set(e.Date, attendance.ClassificationVacation)
		vacation := calc.Requirement(entries, state, today).TotalRequiredMinutes
		assert.LessOrEqual(t, vacation, base, e.Date.String())

		state.Set(e.Date, attendance.ClassificationRegular)
		regular := calc.Requirement(entries, state, today).TotalRequiredMinutes
		assert.GreaterOrEqual(t, regular, vacation, e.Date.String())
	}
}

func TestRequirement_Idempotent(t *testing.T) {
	entries := septemberEntries(20)
	state := NewClassificationState(entries, nil)
	state.Set(calendar.Date{Day: 3, Month: 9, Year: 2024}, attendance.ClassificationVacation)
	calc := NewCalculator(calendar.LocaleHebrew)
	today := calendar.Date{Day: 21, Month: 9, Year: 2024}

	first := calc.Summarize(entries, state, september, today)
	second := calc.Summarize(entries, state, september, today)
	assert.Equal(t, first, second)
}

func TestRequirement_ZeroRequired(t *testing.T) {
	entries := septemberEntries(0)
	state := NewClassificationState(entries, nil)
	for _, e := range entries {
		state.Set(e.Date, attendance.ClassificationVacation)
	}
	entries[1].ClockedTime = "2:00"

	req := NewCalculator(calendar.LocaleHebrew).Requirement(entries, state, calendar.Date{Day: 1, Month: 9, Year: 2024})
	assert.Equal(t, 0, req.TotalRequiredMinutes)
	assert.Equal(t, 0, req.DailyRequiredMinutes)
	assert.Equal(t, 12000.0, req.CompletionPercentage, "unclamped above 100")
	assert.GreaterOrEqual(t, req.CompletionPercentage, 0.0)

	empty := NewCalculator(calendar.LocaleHebrew).Requirement(nil, DefaultResolver, calendar.Date{Day: 1, Month: 9, Year: 2024})
	assert.Equal(t, 0.0, empty.CompletionPercentage)
	assert.Equal(t, "0.0", empty.CompletionFormatted)
}

func TestClassificationState(t *testing.T) {
	entries := septemberEntries(0)
	entries[9].IsHoliday = true // Tuesday 10/9
	entries[9].HolidayName = "חג"
	state := NewClassificationState(entries, nil)

	assert.Equal(t, attendance.ClassificationRegular, state.Get(calendar.Date{Day: 2, Month: 9, Year: 2024}))
	assert.Equal(t, attendance.ClassificationVacation, state.Get(calendar.Date{Day: 6, Month: 9, Year: 2024}))
	assert.Equal(t, attendance.ClassificationVacation, state.Get(calendar.Date{Day: 10, Month: 9, Year: 2024}))
	assert.Empty(t, state.Map())

	state.Initialize()
	assert.Len(t, state.Map(), 30)

	state.Set(calendar.Date{Day: 10, Month: 9, Year: 2024}, attendance.ClassificationRegular)
	assert.Equal(t, attendance.ClassificationRegular, state.Resolve(entries[9]))

	// Initialize keeps existing values
	state.Initialize()
	assert.Equal(t, attendance.ClassificationRegular, state.Get(calendar.Date{Day: 10, Month: 9, Year: 2024}))

	// the map is a copy
	m := state.Map()
	m[calendar.Date{Day: 2, Month: 9, Year: 2024}] = attendance.ClassificationVacation
	assert.Equal(t, attendance.ClassificationRegular, state.Get(calendar.Date{Day: 2, Month: 9, Year: 2024}))
}

func TestSummarize(t *testing.T) {
	entries := CompleteMonth(septemberEntries(14)[:14])
	state := NewClassificationState(entries, nil)
	state.Initialize()

	s := NewCalculator(calendar.LocaleHebrew).Summarize(entries, state, september, calendar.Date{Day: 15, Month: 9, Year: 2024})

	assert.Len(t, s.Entries, 30)
	assert.Equal(t, 5340, s.TotalMinutes)
	assert.Equal(t, 89, s.TotalHours)
	assert.Equal(t, 0, s.RemainingMinutes)
	assert.Equal(t, "89:00", s.Duration)
	assert.Equal(t, "89 שעות", s.Formatted)
	assert.Equal(t, september, s.Month)
	assert.Len(t, s.Classifications, 30)
	assert.Equal(t, attendance.ClassificationVacation, s.Classifications["6/9/2024"])

	assert.Equal(t, 22, s.Stats.RegularWorkdays)
	assert.Equal(t, 10, s.Stats.CompletedDays)
	assert.Equal(t, "8:54", s.Stats.DailyAverage)
	assert.Equal(t, attendance.CompletionLow, s.Stats.CompletionBand)
	assert.Equal(t, attendance.RemainingPending, s.Stats.RemainingBand)
}

func TestFormatting(t *testing.T) {
	tests := []struct {
		hours, minutes int
		he, en         string
	}{
		{0, 0, "0 שעות", "0 hours"},
		{1, 0, "שעה אחת", "1 hour"},
		{1, 1, "שעה אחת ודקה אחת", "1 hour and 1 minute"},
		{8, 30, "8 שעות ו-30 דקות", "8 hours and 30 minutes"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.he, FormatHoursMinutes(tt.hours, tt.minutes, calendar.LocaleHebrew))
		assert.Equal(t, tt.en, FormatHoursMinutes(tt.hours, tt.minutes, calendar.LocaleEnglish))
	}

	assert.Equal(t, "9:05", FormatClock(545))
	assert.Equal(t, "0:00", FormatClock(-3))
	assert.Equal(t, "0:00", DailyAverage(100, 0))
	assert.Equal(t, "33.3", FormatPercentage(100.0/3))
}

func TestFormatPercentage_Rounding(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		required  int
		want      string
	}{
		{name: "binary value below the tie", completed: 1173, required: 4080, want: "28.7"},
		{name: "exact tie rounds up", completed: 49, required: 400, want: "12.3"},
		{name: "whole", completed: 540, required: 540, want: "100.0"},
		{name: "nothing done", completed: 0, required: 11760, want: "0.0"},
		{name: "above required", completed: 1200, required: 540, want: "222.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := float64(tt.completed) / float64(tt.required) * 100
			assert.Equal(t, tt.want, FormatPercentage(p))
		})
	}
}

func TestBands(t *testing.T) {
	assert.Equal(t, attendance.CompletionLow, CompletionBand(49.9))
	assert.Equal(t, attendance.CompletionMid, CompletionBand(50))
	assert.Equal(t, attendance.CompletionHigh, CompletionBand(99.9))
	assert.Equal(t, attendance.CompletionComplete, CompletionBand(100))
	assert.Equal(t, attendance.CompletionComplete, CompletionBand(130))

	assert.Equal(t, attendance.RemainingCompleted, RemainingBand(0))
	assert.Equal(t, "", RemainingBand(4*60+59))
	assert.Equal(t, attendance.RemainingNearlyCompleted, RemainingBand(5*60))
	assert.Equal(t, attendance.RemainingNearlyCompleted, RemainingBand(10*60-1))
	assert.Equal(t, attendance.RemainingPending, RemainingBand(10*60))
}
