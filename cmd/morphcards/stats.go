package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/morphcards/internal/cli"
)

func newStatsCommand() *cobra.Command {
	var year, month int
	var report, pdf bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show a review statistics report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != 0 && year == 0 {
				return fmt.Errorf("--month requires --year to be specified")
			}
			if month < 0 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12")
			}
			if pdf && !report {
				return fmt.Errorf("--pdf requires --report to be specified")
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			repos := newRepositories(db)

			opts := cli.StatsReportOptions{
				Year:  year,
				Month: month,
				PDF:   pdf,
			}
			if report {
				opts.ReportDirectory = cfg.Outputs.ReportDirectory
			}
			return cli.RunStatsReport(cmd.Context(), os.Stdout,
				repos.cards, repos.reviewLogs, repos.vocabulary, opts)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Filter by year (e.g., 2025)")
	cmd.Flags().IntVar(&month, "month", 0, "Filter by month (1-12), requires --year")
	cmd.Flags().BoolVar(&report, "report", false, "Write a markdown report to the configured report directory")
	cmd.Flags().BoolVar(&pdf, "pdf", false, "Also convert the markdown report to PDF, requires --report")

	return cmd
}
