package calendar

import (
	"strings"
	"time"
)

// Locale selects the language of user-facing labels.
type Locale string

const (
	LocaleHebrew  Locale = "he"
	LocaleEnglish Locale = "en"
)

// ParseLocale falls back to Hebrew for anything it does not recognise.
func ParseLocale(s string) Locale {
	if strings.EqualFold(strings.TrimSpace(s), string(LocaleEnglish)) {
		return LocaleEnglish
	}
	return LocaleHebrew
}

var hebrewMonths = [12]string{
	"ינואר", "פברואר", "מרץ", "אפריל", "מאי", "יוני",
	"יולי", "אוגוסט", "ספטמבר", "אוקטובר", "נובמבר", "דצמבר",
}

var hebrewWeekdays = map[time.Weekday]string{
	time.Sunday:    "ראשון",
	time.Monday:    "שני",
	time.Tuesday:   "שלישי",
	time.Wednesday: "רביעי",
	time.Thursday:  "חמישי",
	time.Friday:    "שישי",
	time.Saturday:  "שבת",
}

type monthName struct {
	name  string
	month int
}

// monthNames is scanned in order: Hebrew first, then English.
var monthNames = func() []monthName {
	names := make([]monthName, 0, 24)
	for i, n := range hebrewMonths {
		names = append(names, monthName{name: n, month: i + 1})
	}
	for m := time.January; m <= time.December; m++ {
		names = append(names, monthName{name: m.String(), month: int(m)})
	}
	return names
}()

// MonthFromText returns the first month whose Hebrew or English name occurs in
// text, or 0.
func MonthFromText(text string) int {
	for _, mn := range monthNames {
		if strings.Contains(text, mn.name) {
			return mn.month
		}
	}
	return 0
}

// MonthLabel returns the localized month name, or "" for an invalid month.
func MonthLabel(month int, locale Locale) string {
	if month < 1 || month > 12 {
		return ""
	}
	if locale == LocaleEnglish {
		return time.Month(month).String()
	}
	return hebrewMonths[month-1]
}

// WeekdayLabel localizes an English weekday name. Unknown names pass through.
func WeekdayLabel(name string, locale Locale) string {
	if locale == LocaleEnglish {
		return name
	}
	for wd, he := range hebrewWeekdays {
		if wd.String() == name {
			return he
		}
	}
	return name
}
