// Package export renders an hours summary as a downloadable file.
package export

import (
	"fmt"
	"log/slog"

	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
	"github.com/eldar-magrafta/hilan-calculator/internal/service/hours"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

type Exporter struct {
	pdfFontPath string
}

// New returns an Exporter. pdfFontPath points to a TTF font with Hebrew
// glyphs; without it PDFs are rendered with English labels.
func New(pdfFontPath string) *Exporter {
	return &Exporter{pdfFontPath: pdfFontPath}
}

// Export renders s in the given format and locale.
func (x *Exporter) Export(s attendance.HoursSummary, format string, locale calendar.Locale) (attendance.ExportFile, error) {
	var (
		data        []byte
		contentType string
		err         error
	)

	switch format {
	case attendance.ExportCSV:
		data, err = renderCSV(s, locale)
		contentType = contentTypeCSV
	case attendance.ExportXLSX:
		data, err = renderXLSX(s, locale)
		contentType = contentTypeXLSX
	case attendance.ExportPDF:
		data, err = x.renderPDF(s, locale)
		contentType = contentTypePDF
	default:
		return attendance.ExportFile{}, fmt.Errorf("%w: %q", attendance.ErrUnsupportedExportFormat, format)
	}
	if err != nil {
		return attendance.ExportFile{}, fmt.Errorf("failed to render %s export: %w", format, err)
	}

	slog.Debug("Rendered export", "format", format, "locale", locale, "bytes", len(data))
	return attendance.ExportFile{
		Filename:    filename(s.Month, format),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func filename(m attendance.MonthYear, format string) string {
	if m.IsZero() {
		return "hilan-hours." + format
	}
	return fmt.Sprintf("hilan-hours-%04d-%02d.%s", m.Year, m.Month, format)
}

// labels are the fixed texts of an export.
type labels struct {
	Date, Day, Hours, Holiday, Type, Total string

	Sheet, SummarySheet, Title string

	Month, Required, Completed, Remaining, RemainingDays, DailyRequired, Completion, DailyAverage string
}

var hebrewLabels = labels{
	Date: "תאריך", Day: "יום", Hours: "שעות", Holiday: "חג", Type: "סוג", Total: "סה״כ",
	Sheet: "שעות", SummarySheet: "סיכום", Title: "דוח שעות חילן",
	Month: "חודש", Required: "דרישה חודשית", Completed: "הושלם", Remaining: "נותר",
	RemainingDays: "ימי עבודה שנותרו", DailyRequired: "נדרש ליום", Completion: "אחוז השלמה", DailyAverage: "ממוצע יומי",
}

var englishLabels = labels{
	Date: "Date", Day: "Day", Hours: "Hours", Holiday: "Holiday", Type: "Type", Total: "Total",
	Sheet: "Hours", SummarySheet: "Summary", Title: "Hilan Hours Report",
	Month: "Month", Required: "Monthly requirement", Completed: "Completed", Remaining: "Remaining",
	RemainingDays: "Remaining workdays", DailyRequired: "Required per day", Completion: "Completion", DailyAverage: "Daily average",
}

func labelsFor(locale calendar.Locale) labels {
	if locale == calendar.LocaleEnglish {
		return englishLabels
	}
	return hebrewLabels
}

// row is one exported day.
type row struct {
	Date, Day, Hours, Holiday, Type string
}

func (r row) fields() []string {
	return []string{r.Date, r.Day, r.Hours, r.Holiday, r.Type}
}

func (l labels) header() []string {
	return []string{l.Date, l.Day, l.Hours, l.Holiday, l.Type}
}

func rows(s attendance.HoursSummary, locale calendar.Locale) []row {
	resolver := hours.SummaryResolver(s)
	out := make([]row, 0, len(s.Entries))
	for _, e := range s.Entries {
		r := row{
			Date:    e.Date.String(),
			Day:     calendar.WeekdayLabel(e.Weekday, locale),
			Hours:   attendance.NoTimePlaceholder,
			Holiday: "-",
			Type:    hours.Effective(e, resolver).Label(locale),
		}
		if e.HasClockedTime() {
			r.Hours = e.ClockedTime
		}
		if e.HolidayName != "" {
			r.Holiday = e.HolidayName
		}
		out = append(out, r)
	}
	return out
}

// metric is one line of the summary block.
type metric struct {
	label, value string
}

func metrics(s attendance.HoursSummary, l labels, locale calendar.Locale) []metric {
	req := s.MonthlyRequirement
	return []metric{
		{l.Month, fmt.Sprintf("%s %d", calendar.MonthLabel(s.Month.Month, locale), s.Month.Year)},
		{l.Required, hours.FormatMinutes(req.TotalRequiredMinutes, locale)},
		{l.Completed, hours.FormatMinutes(req.CompletedMinutes, locale)},
		{l.Remaining, hours.FormatMinutes(req.RemainingMinutes, locale)},
		{l.RemainingDays, fmt.Sprintf("%d", req.RemainingWorkdays)},
		{l.DailyRequired, req.DailyRequiredFormatted},
		{l.Completion, req.CompletionFormatted + "%"},
		{l.DailyAverage, s.Stats.DailyAverage},
	}
}
