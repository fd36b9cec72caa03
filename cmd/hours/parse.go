package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
	attendanceService "github.com/eldar-magrafta/hilan-calculator/internal/service/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/service/extractor"
	"github.com/eldar-magrafta/hilan-calculator/internal/service/hours"
)

type parseOptions struct {
	format string
	today  string
}

func newParseCmd(root *rootOptions) *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Compute the summary of a saved calendar page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			html, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			today, err := parseToday(opts.today)
			if err != nil {
				return err
			}

			summary, err := summarizePage(string(html), today, root.Locale())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), summary, opts.format, root.Locale())
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", formatTable, "Output format: table, json, csv")
	cmd.Flags().StringVar(&opts.today, "today", "", "Treat this D/M/Y date as today (default: the current date)")
	return cmd
}

// parseToday returns the local date, or s when given.
func parseToday(s string) (calendar.Date, error) {
	if s == "" {
		return calendar.NewDate(time.Now()), nil
	}
	d, err := calendar.ParseSlashDate(s)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("invalid --today: %w", err)
	}
	return d, nil
}

// summarizePage runs the offline pipeline over a calendar page with every
// day at its default classification.
func summarizePage(html string, today calendar.Date, locale calendar.Locale) (attendance.HoursSummary, error) {
	parsed, err := attendanceService.ParsePage(extractor.New(), html, attendance.MonthYear{Month: today.Month, Year: today.Year})
	if err != nil {
		return attendance.HoursSummary{}, err
	}

	state := hours.NewClassificationState(parsed.Entries, nil)
	state.Initialize()
	return hours.NewCalculator(locale).Summarize(parsed.Entries, state, parsed.Month, today), nil
}
