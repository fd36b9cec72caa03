package hours

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
)

// FormatClock renders minutes as H:MM.
func FormatClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// FormatHoursMinutes renders a duration as words, e.g. "8 שעות ו-30 דקות"
// or "8 hours and 30 minutes".
func FormatHoursMinutes(hours, minutes int, locale calendar.Locale) string {
	if locale == calendar.LocaleEnglish {
		out := plural(hours, "hour", "hours")
		if minutes > 0 {
			out += " and " + plural(minutes, "minute", "minutes")
		}
		return out
	}

	out := fmt.Sprintf("%d שעות", hours)
	if hours == 1 {
		out = "שעה אחת"
	}
	switch {
	case minutes == 1:
		out += " ודקה אחת"
	case minutes > 1:
		out += fmt.Sprintf(" ו-%d דקות", minutes)
	}
	return out
}

// FormatMinutes is FormatHoursMinutes for a minute total.
func FormatMinutes(total int, locale calendar.Locale) string {
	if total < 0 {
		total = 0
	}
	return FormatHoursMinutes(total/60, total%60, locale)
}

// FormatPercentage renders p with exactly one decimal, rounding half up on
// the exact binary value of p. 28.75 computed as 1173/4080*100 is stored as
// 28.7499... and renders as 28.7.
func FormatPercentage(p float64) string {
	_, exp := math.Frexp(p)
	exact, err := decimal.NewFromString(strconv.FormatFloat(p, 'f', max(0, 53-exp), 64))
	if err != nil {
		return "0.0"
	}
	return exact.StringFixed(1)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
