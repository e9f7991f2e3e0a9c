package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type CSVExporter struct {
	OutputDir string
}

func NewCSVExporter(outputDir string) *CSVExporter {
	return &CSVExporter{OutputDir: outputDir}
}

// Export writes two files: the leaderboard itself and a one-page dashboard
// with the per-category totals.
func (e *CSVExporter) Export(s Summary) error {
	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")

	if err := e.exportLeaderboard(s, timestamp); err != nil {
		return fmt.Errorf("failed to export leaderboard: %w", err)
	}
	if err := e.exportDashboard(s, timestamp); err != nil {
		return fmt.Errorf("failed to export dashboard: %w", err)
	}
	return nil
}

func (e *CSVExporter) exportLeaderboard(s Summary, timestamp string) error {
	filename := filepath.Join(e.OutputDir, fmt.Sprintf("leaderboard_%s.csv", timestamp))
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"Rank",
		"Contributor",
		"Email",
		"Commits",
		"PRs Created",
		"PRs Merged",
		"Reviews",
		"Work Items",
		"Score",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, entry := range s.Entries {
		acc := entry.Contributor
		row := []string{
			fmt.Sprintf("%d", entry.Rank),
			displayName(acc),
			acc.Email,
			fmt.Sprintf("%d", acc.Commits),
			fmt.Sprintf("%d", acc.PRsCreated),
			fmt.Sprintf("%d", acc.PRsMerged),
			fmt.Sprintf("%d", acc.PRsReviewed),
			fmt.Sprintf("%d", acc.WorkItems),
			fmt.Sprintf("%.2f", roundScore(entry.Score)),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (e *CSVExporter) exportDashboard(s Summary, timestamp string) error {
	filename := filepath.Join(e.OutputDir, fmt.Sprintf("leaderboard_%s_dashboard.csv", timestamp))
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	rows := [][]string{
		{"Project", fmt.Sprintf("%s/%s", s.Organization, s.Project)},
		{"Date From:", s.Start.Format("02-01-06")},
		{"Date to:", s.End.Format("02-01-06")},
		{""},
		{"Category", "Total"},
		{"Contributors", fmt.Sprintf("%d", s.Totals.Contributors)},
		{"Commits", fmt.Sprintf("%d", s.Totals.Commits)},
		{"PRs Created", fmt.Sprintf("%d", s.Totals.PRsCreated)},
		{"PRs Merged", fmt.Sprintf("%d", s.Totals.PRsMerged)},
		{"Reviews", fmt.Sprintf("%d", s.Totals.PRsReviewed)},
		{"Work Items", fmt.Sprintf("%d", s.Totals.WorkItems)},
	}

	if s.Builds.Total > 0 {
		rows = append(rows,
			[]string{""},
			[]string{"Builds", fmt.Sprintf("%d", s.Builds.Total)},
			[]string{"Builds Succeeded", fmt.Sprintf("%d", s.Builds.Succeeded)},
			[]string{"Builds Failed", fmt.Sprintf("%d", s.Builds.Failed)},
		)
	}

	rows = append(rows, []string{""}, []string{"Scoring", s.Formula})

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}
