package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
)

// Element ids of the calendar page header.
const (
	monthHeaderSelector  = "#ctl00_mp_calendar_monthChanged"
	currentMonthSelector = "#ctl00_mp_currentMonth"
)

var (
	headerYearRegex  = regexp.MustCompile(`\d{4}`)
	hiddenMonthRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// ExtractMonthYear reads the month and year the page displays. The visible
// header is parsed first; the hidden DD/MM/YYYY field overrides it when
// present. Missing parts are left as zero.
func ExtractMonthYear(html string) attendance.MonthYear {
	var my attendance.MonthYear

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return my
	}

	if text := strings.TrimSpace(doc.Find(monthHeaderSelector).First().Text()); text != "" {
		if y := headerYearRegex.FindString(text); y != "" {
			my.Year, _ = strconv.Atoi(y)
		}
		my.Month = calendar.MonthFromText(text)
	}

	if value, ok := doc.Find(currentMonthSelector).First().Attr("value"); ok {
		if m := hiddenMonthRegex.FindStringSubmatch(strings.TrimSpace(value)); m != nil {
			month, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			if month >= 1 && month <= 12 {
				my.Month = month
				my.Year = year
			}
		}
	}

	return my
}
