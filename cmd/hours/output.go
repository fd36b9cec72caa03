package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
	"github.com/eldar-magrafta/hilan-calculator/internal/service/export"
	"github.com/eldar-magrafta/hilan-calculator/internal/service/hours"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
)

func render(w io.Writer, s attendance.HoursSummary, format string, locale calendar.Locale) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case formatCSV:
		file, err := export.New("").Export(s, attendance.ExportCSV, locale)
		if err != nil {
			return err
		}
		_, err = w.Write(file.Data)
		return err
	case formatTable, "":
		return renderTable(w, s, locale)
	default:
		return fmt.Errorf("unknown format %q (want table, json or csv)", format)
	}
}

func renderTable(w io.Writer, s attendance.HoursSummary, locale calendar.Locale) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	resolver := hours.SummaryResolver(s)

	fmt.Fprintln(tw, "DATE\tDAY\tTIME\tHOLIDAY\tTYPE")
	for _, e := range s.Entries {
		clocked := attendance.NoTimePlaceholder
		if e.HasClockedTime() {
			clocked = e.ClockedTime
		}
		holiday := e.HolidayName
		if holiday == "" {
			holiday = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.Date,
			calendar.WeekdayLabel(e.Weekday, locale),
			clocked,
			holiday,
			hours.Effective(e, resolver).Label(locale),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	req := s.MonthlyRequirement
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Month:      %s\n", s.Month)
	fmt.Fprintf(w, "Completed:  %s (%s)\n", s.Formatted, s.Duration)
	fmt.Fprintf(w, "Required:   %s\n", req.TotalRequiredFormatted)
	fmt.Fprintf(w, "Remaining:  %s over %d workdays\n", req.RemainingFormatted, req.RemainingWorkdays)
	fmt.Fprintf(w, "Per day:    %s\n", req.DailyRequiredFormatted)
	fmt.Fprintf(w, "Completion: %s%%\n", req.CompletionFormatted)
	return nil
}
