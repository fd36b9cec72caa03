package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
)

const pdfFontFamily = "hebrew"

func (x *Exporter) renderPDF(s attendance.HoursSummary, locale calendar.Locale) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")

	family := "Arial"
	if x.pdfFontPath != "" {
		pdf.AddUTF8Font(pdfFontFamily, "", x.pdfFontPath)
		pdf.AddUTF8Font(pdfFontFamily, "B", x.pdfFontPath)
		family = pdfFontFamily
	} else {
		// core fonts have no Hebrew glyphs
		locale = calendar.LocaleEnglish
	}
	l := labelsFor(locale)
	text := func(s string) string {
		if family == pdfFontFamily {
			return s
		}
		return latinOnly(s)
	}

	pdf.AddPage()

	pdf.SetFont(family, "B", 16)
	pdf.CellFormat(0, 10, l.Title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(family, "", 11)
	for _, m := range metrics(s, l, locale) {
		pdf.CellFormat(60, 7, m.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, text(m.value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	widths := []float64{30, 30, 25, 65, 30}
	pdf.SetFont(family, "B", 10)
	pdf.SetFillColor(68, 114, 196)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range l.header() {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, r := range rows(s, locale) {
		for i, v := range r.fields() {
			pdf.CellFormat(widths[i], 7, text(v), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont(family, "B", 10)
	pdf.CellFormat(widths[0]+widths[1], 8, l.Total, "1", 0, "C", false, 0, "")
	pdf.CellFormat(widths[2]+widths[3]+widths[4], 8, text(fmt.Sprintf("%s (%s)", s.Duration, s.MonthlyRequirement.CompletionFormatted+"%")), "1", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// latinOnly replaces text the core fonts cannot draw.
func latinOnly(s string) string {
	for _, r := range s {
		if r > 0x7e {
			return "*"
		}
	}
	return s
}
