package export

import (
	"github.com/xuri/excelize/v2"

	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
	"github.com/eldar-magrafta/hilan-calculator/internal/service/hours"
)

func renderXLSX(s attendance.HoursSummary, locale calendar.Locale) ([]byte, error) {
	l := labelsFor(locale)

	f := excelize.NewFile()
	defer f.Close()

	sheet := l.Sheet
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	if err := writeRow(f, sheet, 1, l.header()); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", "E1", headerStyle); err != nil {
		return nil, err
	}

	rowNum := 2
	for _, r := range rows(s, locale) {
		if err := writeRow(f, sheet, rowNum, r.fields()); err != nil {
			return nil, err
		}
		rowNum++
	}
	total := hours.FormatMinutes(s.MonthlyRequirement.CompletedMinutes, locale)
	if err := writeRow(f, sheet, rowNum, []string{l.Total, "", total, "", ""}); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", "E", 16); err != nil {
		return nil, err
	}

	summary := l.SummarySheet
	if _, err := f.NewSheet(summary); err != nil {
		return nil, err
	}
	for i, m := range metrics(s, l, locale) {
		if err := writeRow(f, summary, i+1, []string{m.label, m.value}); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(summary, "A", "B", 24); err != nil {
		return nil, err
	}

	if locale == calendar.LocaleHebrew {
		rtl := true
		for _, name := range []string{sheet, summary} {
			if err := f.SetSheetView(name, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
