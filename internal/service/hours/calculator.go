package hours

import (
	"math"
	"time"


	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
)

// Calculator derives requirement figures from a month of entries. It holds
// no state besides the output locale and may be called repeatedly.
type Calculator struct {
	locale calendar.Locale
}

func NewCalculator(locale calendar.Locale) *Calculator {
	return &Calculator{locale: locale}
}

// RequiredMinutes is what a Regular day on w requires.
func RequiredMinutes(w time.Weekday) int {
	if calendar.IsShortDay(w) {
		return attendance.MinutesPerShortDay
	}
	return attendance.MinutesPerWorkday
}

// CompletedMinutes sums every valid clocked time, whatever the classification.
func CompletedMinutes(entries []attendance.DayEntry) int {
	total := 0
	for _, e := range entries {
		if m, ok := e.ClockedMinutes(); ok {
			total += m
		}
	}
	return total
}

// Requirement computes the monthly requirement. today is the caller's local
// date; Regular days on or after it count as remaining workdays.
func (c *Calculator) Requirement(entries []attendance.DayEntry, r Resolver, today calendar.Date) attendance.MonthlyRequirement {
	required := 0
	remainingDays := 0
	for _, e := range entries {
		if Effective(e, r) != attendance.ClassificationRegular {
			continue
		}
		required += RequiredMinutes(e.Date.Weekday())
		if e.Date.Compare(today) >= 0 {
			remainingDays++
		}
	}

	completed := CompletedMinutes(entries)
	remaining := max(0, required-completed)

	daily := 0
	if remainingDays > 0 {
		daily = int(math.Round(float64(remaining) / float64(remainingDays)))
	}

	percentage := float64(completed) / float64(max(1, required)) * 100

	return attendance.MonthlyRequirement{
		TotalRequiredMinutes:   required,
		TotalRequired:          attendance.SplitMinutes(required),
		TotalRequiredFormatted: FormatMinutes(required, c.locale),
		CompletedMinutes:       completed,
		Completed:              attendance.SplitMinutes(completed),
		RemainingMinutes:       remaining,
		Remaining:              attendance.SplitMinutes(remaining),
		RemainingFormatted:     FormatMinutes(remaining, c.locale),
		RemainingWorkdays:      remainingDays,
		DailyRequiredMinutes:   daily,
		DailyRequired:          attendance.SplitMinutes(daily),
		DailyRequiredFormatted: FormatClock(daily),
		CompletionPercentage:   percentage,
		CompletionFormatted:    FormatPercentage(percentage),
	}
}
