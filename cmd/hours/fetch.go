package main

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/eldar-magrafta/hilan-calculator/internal/config"
	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/domain/portal"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/hilan"
)

const passwordEnv = "HILAN_PASSWORD"

type fetchOptions struct {
	orgID    string
	username string
	format   string
	save     string
}

func newFetchCmd(root *rootOptions) *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Log into the portal and compute the current month",
		Long: `fetch logs into the Hilan portal and prints the summary of the month the
calendar shows. The password is read from ` + passwordEnv + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := attendance.FetchHoursRequest{
				OrgID:    opts.orgID,
				Username: opts.username,
				Password: os.Getenv(passwordEnv),
			}
			if err := req.Validate(); err != nil {
				return err
			}

			portalCfg, err := config.LoadPortal()
			if err != nil {
				return err
			}

			html, err := hilan.NewClient(portalCfg, nil).FetchCalendar(cmd.Context(), portal.Credentials{
				OrgID:    req.OrgID,
				Username: req.Username,
				Password: req.Password,
			})
			if err != nil {
				return err
			}

			if opts.save != "" {
				if err := os.WriteFile(opts.save, []byte(html), 0o600); err != nil {
					return err
				}
			}

			summary, err := summarizePage(html, calendar.NewDate(time.Now()), root.Locale())
			if err != nil {
				var empty *attendance.EmptyResultError
				if errors.As(err, &empty) && opts.save == "" {
					return errors.Join(err, errors.New("rerun with --save to keep the page for inspection"))
				}
				return err
			}
			return render(cmd.OutOrStdout(), summary, opts.format, root.Locale())
		},
	}

	cmd.Flags().StringVar(&opts.orgID, "org", "", "Organization ID")
	cmd.Flags().StringVar(&opts.username, "user", "", "Employee number")
	cmd.Flags().StringVar(&opts.format, "format", formatTable, "Output format: table, json, csv")
	cmd.Flags().StringVar(&opts.save, "save", "", "Also write the fetched calendar page to this file")
	_ = cmd.MarkFlagRequired("org")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
