package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/schollz/progressbar/v3"

	"github.com/Afrawles/teampulse/internal/config"
	"github.com/Afrawles/teampulse/internal/report"
	"github.com/Afrawles/teampulse/internal/teampulse"
)

var (
	startDate    string
	endDate      string
	periodFlag   string
	organization string
	project      string
	token        string
	team         string
	repositories string
	limit        int
	includeZero  bool
	output       string
	formats      string
	webhookURL   string
)

var rootCmd = &cobra.Command{
	Use:   "teampulse",
	Short: "Generate a ranked team activity leaderboard from Azure DevOps",
	Long:  `TeamPulse collects commits, pull requests and work items from Azure DevOps, merges contributor identities and renders a weighted leaderboard.`,
	Run:   generateReport,
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the leaderboard as Markdown to stdout",
	Run:   printLeaderboard,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(leaderboardCmd)

	for _, cmd := range []*cobra.Command{rootCmd, leaderboardCmd} {
		cmd.Flags().StringVarP(&startDate, "start", "s", "", "Start date (YYYY-MM-DD)")
		cmd.Flags().StringVarP(&endDate, "end", "e", "", "End date (YYYY-MM-DD)")
		cmd.Flags().StringVar(&periodFlag, "period", "", "Named period: today, yesterday, this-week, last-week, this-month, last-month, last-30-days")
		cmd.Flags().StringVar(&organization, "org", "", "Azure DevOps organization")
		cmd.Flags().StringVar(&project, "project", "", "Azure DevOps project")
		cmd.Flags().StringVar(&token, "token", "", "Personal access token")
		cmd.Flags().StringVar(&team, "team", "", "Team name (defaults to the project team)")
		cmd.Flags().StringVar(&repositories, "repos", "", "Comma-separated repository names (default: all)")
		cmd.Flags().IntVar(&limit, "limit", 0, "Leaderboard length (default from config)")
		cmd.Flags().BoolVar(&includeZero, "include-zero", false, "Keep zero-score contributors")
	}

	rootCmd.Flags().StringVarP(&output, "output", "o", "", "Output directory")
	rootCmd.Flags().StringVar(&formats, "formats", "", "Comma-separated output formats: markdown, html, csv, excel, json")
	rootCmd.Flags().StringVar(&webhookURL, "webhook", "", "Chat webhook URL for the top of the leaderboard")
}

// loadConfig layers file/env config, then flag overrides on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if organization != "" {
		cfg.Organization = organization
	}
	if project != "" {
		cfg.Project = project
	}
	if token != "" {
		cfg.Token = token
	}
	if team != "" {
		cfg.Team = team
	}
	if repositories != "" {
		cfg.Repositories = parseCommaList(repositories)
	}
	if limit > 0 {
		cfg.Limit = limit
	}
	if includeZero {
		cfg.IncludeZero = true
	}
	if output != "" {
		cfg.OutputDir = output
	}
	if formats != "" {
		cfg.Formats = parseCommaList(formats)
	}
	if webhookURL != "" {
		cfg.WebhookURL = webhookURL
	}

	if err := cfg.ValidateCollection(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveWindow picks the reporting window: explicit dates win, then a named
// period, then the configured default window ending now.
func resolveWindow(cfg *config.Config) (time.Time, time.Time, error) {
	now := time.Now()

	if startDate != "" || endDate != "" {
		start := now.AddDate(0, 0, -cfg.WindowDays)
		end := now
		var err error
		if startDate != "" {
			start, err = time.Parse("2006-01-02", startDate)
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("invalid start date: %w", err)
			}
		}
		if endDate != "" {
			end, err = time.Parse("2006-01-02", endDate)
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("invalid end date: %w", err)
			}
			// End date is inclusive on the command line.
			end = end.Add(24 * time.Hour)
		}
		return start, end, nil
	}

	if periodFlag != "" {
		return parsePeriod(periodFlag, now)
	}

	return now.AddDate(0, 0, -cfg.WindowDays), now, nil
}

func generateReport(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	start, end, err := resolveWindow(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Generating leaderboard for %s/%s (%s to %s)\n",
		cfg.Organization, cfg.Project, start.Format("2006-01-02"), end.Format("2006-01-02"))

	app := teampulse.New(cfg)

	bar := newSpinner("Collecting activity")
	summary, err := app.Run(context.Background(), start, end)
	finishBar(bar)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError generating leaderboard: %v\n", err)
		os.Exit(1)
	}

	if len(summary.Entries) == 0 {
		fmt.Println("\nNo activity found for this period")
		return
	}

	exportBar := newSpinner("Exporting reports")
	err = app.Export(summary)
	finishBar(exportBar)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to export reports: %v\n", err)
		os.Exit(1)
	}

	if err := app.Notify(context.Background(), summary); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	fmt.Printf("\nReports saved to %s/\n", cfg.OutputDir)
	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Contributors: %d\n", summary.Totals.Contributors)
	fmt.Printf("  Commits: %d\n", summary.Totals.Commits)
	fmt.Printf("  Pull requests: %d (merged: %d)\n", summary.Totals.PRsCreated, summary.Totals.PRsMerged)
	fmt.Printf("  Reviews: %d\n", summary.Totals.PRsReviewed)
	fmt.Printf("  Work items: %d\n", summary.Totals.WorkItems)
}

func printLeaderboard(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	start, end, err := resolveWindow(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := teampulse.New(cfg)

	bar := newSpinner("Collecting activity")
	summary, err := app.Run(context.Background(), start, end)
	finishBar(bar)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError generating leaderboard: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	if err := report.RenderMarkdown(os.Stdout, summary); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSpinner(description string) *progressbar.ProgressBar {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(15),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
	_ = bar.RenderBlank()
	return bar
}

func finishBar(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Finish()
	}
}
