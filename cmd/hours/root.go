package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
)

type rootOptions struct {
	locale  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "hours",
		Short: "Monthly attendance hours from the Hilan portal",
		Long: `hours reads the Hilan attendance calendar, fills in the month and
computes how many hours are still required.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().StringVar(&opts.locale, "locale", "he", "Output language: he, en")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log extraction details to stderr")

	cmd.AddCommand(newParseCmd(opts))
	cmd.AddCommand(newFetchCmd(opts))
	return cmd
}

func (o *rootOptions) Locale() calendar.Locale {
	return calendar.ParseLocale(o.locale)
}

// Execute is the entry point called from main.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
