package attendance

import (
	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/service/extractor"
	"github.com/eldar-magrafta/hilan-calculator/internal/service/hours"
)

// ParsedPage is a calendar page reduced to one complete month.
type ParsedPage struct {
	Month    attendance.MonthYear
	Header   attendance.MonthYear
	Entries  []attendance.DayEntry
	Strategy string
}

// ParsePage extracts the entries of a calendar page and fills the month
// around them. current is the month the page was fetched in; it only picks
// the error returned for a page without entries.
func ParsePage(x *extractor.Extractor, html string, current attendance.MonthYear) (ParsedPage, error) {
	page := extractor.NewPage(html)
	raw, strategy := x.ExtractPage(page)
	header := page.Header()

	if len(raw) == 0 {
		return ParsedPage{Header: header}, attendance.NewEmptyResultError(header, current)
	}

	month := hours.TargetMonth(raw, header)
	entries := hours.CompleteMonthOf(raw, month)
	if len(entries) == 0 {
		return ParsedPage{Header: header}, attendance.NewEmptyResultError(header, current)
	}

	return ParsedPage{
		Month:    month,
		Header:   header,
		Entries:  entries,
		Strategy: strategy,
	}, nil
}
