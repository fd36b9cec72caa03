package hours

import (
	"math"

	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
)

// Summarize assembles the result handed to the presentation layer from a
// completed month and its classification state.
func (c *Calculator) Summarize(entries []attendance.DayEntry, state *ClassificationState, month attendance.MonthYear, today calendar.Date) attendance.HoursSummary {
	req := c.Requirement(entries, state, today)
	completed := req.CompletedMinutes

	return attendance.HoursSummary{
		Entries:            entries,
		TotalHours:         completed / 60,
		TotalMinutes:       completed,
		RemainingMinutes:   completed % 60,
		Formatted:          FormatHoursMinutes(completed/60, completed%60, c.locale),
		Duration:           FormatClock(completed),
		MonthlyRequirement: req,
		Month:              month,
		Classifications:    attendance.ClassificationsByKey(state.Map()),
		Stats:              Stats(entries, state, req),
	}
}

// Stats computes the secondary dashboard figures.
func Stats(entries []attendance.DayEntry, r Resolver, req attendance.MonthlyRequirement) attendance.DashboardStats {
	regular := 0
	completedDays := 0
	for _, e := range entries {
		if Effective(e, r) == attendance.ClassificationRegular {
			regular++
		}
		if !e.IsFutureOrUnknown && e.HasClockedTime() {
			completedDays++
		}
	}

	return attendance.DashboardStats{
		RegularWorkdays: regular,
		CompletedDays:   completedDays,
		DailyAverage:    DailyAverage(req.CompletedMinutes, completedDays),
		CompletionBand:  CompletionBand(req.CompletionPercentage),
		RemainingBand:   RemainingBand(req.RemainingMinutes),
	}
}

// DailyAverage is the mean worked time per completed day as H:MM.
func DailyAverage(totalMinutes, days int) string {
	if days <= 0 {
		return FormatClock(0)
	}
	return FormatClock(int(math.Round(float64(totalMinutes) / float64(days))))
}

func CompletionBand(percentage float64) string {
	switch {
	case percentage < 50:
		return attendance.CompletionLow
	case percentage < 80:
		return attendance.CompletionMid
	case percentage < 100:
		return attendance.CompletionHigh
	default:
		return attendance.CompletionComplete
	}
}

// RemainingBand classifies the remaining required time. Between zero and
// five hours there is no band.
func RemainingBand(remainingMinutes int) string {
	switch {
	case remainingMinutes <= 0:
		return attendance.RemainingCompleted
	case remainingMinutes >= 10*60:
		return attendance.RemainingPending
	case remainingMinutes >= 5*60:
		return attendance.RemainingNearlyCompleted
	default:
		return ""
	}
}
