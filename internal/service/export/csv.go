package export

import (
	"bytes"
	"encoding/csv"

	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
	"github.com/eldar-magrafta/hilan-calculator/internal/service/hours"
)

// utf8BOM lets spreadsheet tools detect the encoding of Hebrew text.
const utf8BOM = "\ufeff"

func renderCSV(s attendance.HoursSummary, locale calendar.Locale) ([]byte, error) {
	l := labelsFor(locale)

	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(l.header()); err != nil {
		return nil, err
	}
	for _, r := range rows(s, locale) {
		if err := w.Write(r.fields()); err != nil {
			return nil, err
		}
	}
	total := hours.FormatMinutes(s.MonthlyRequirement.CompletedMinutes, locale)
	if err := w.Write([]string{l.Total, "", total, ""}); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
