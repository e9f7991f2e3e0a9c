// Package teampulse wires configuration, collection, aggregation and
// rendering into one application.
package teampulse

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Afrawles/teampulse/internal/activity"
	"github.com/Afrawles/teampulse/internal/azdo"
	"github.com/Afrawles/teampulse/internal/config"
	"github.com/Afrawles/teampulse/internal/notify"
	"github.com/Afrawles/teampulse/internal/report"
)

// RecordSource delivers the already-parsed record sets the aggregation core
// consumes. azdo.Source is the production implementation; tests substitute
// fixtures.
type RecordSource interface {
	Name() string
	HealthCheck(ctx context.Context) error
	FetchDirectory(ctx context.Context) ([]activity.UserDirectoryEntry, error)
	FetchCommits(ctx context.Context, start, end time.Time) ([]activity.CommitRecord, error)
	FetchPullRequests(ctx context.Context, start, end time.Time) ([]activity.PullRequestRecord, error)
	FetchWorkItems(ctx context.Context, start, end time.Time) ([]activity.WorkItemRecord, error)
	FetchBuildStats(ctx context.Context, start, end time.Time) (report.BuildStats, error)
}

// Notifier delivers a finished summary somewhere, e.g. a chat webhook.
type Notifier interface {
	Send(ctx context.Context, s report.Summary) error
}

type Application struct {
	Config   *config.Config
	Logger   *slog.Logger
	Source   RecordSource
	Notifier Notifier
}

func New(cfg *config.Config) *Application {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	client := azdo.NewClient(cfg.Organization, cfg.Project, cfg.Token)
	source := azdo.NewSource(client, cfg.Repositories, cfg.Team)

	var notifier Notifier
	if cfg.WebhookURL != "" {
		notifier = notify.NewWebhookClient(cfg.WebhookURL)
	}

	return &Application{
		Config:   cfg,
		Logger:   logger,
		Source:   source,
		Notifier: notifier,
	}
}

// Run collects all record sets for the window, folds them into a fresh
// ledger, ranks the contributors and returns the assembled summary. A
// category that fails to fetch is logged and treated as empty; the run
// continues with the remaining categories.
func (app *Application) Run(ctx context.Context, start, end time.Time) (report.Summary, error) {
	app.Logger.Info("collecting activity",
		"source", app.Source.Name(),
		"start", start.Format("2006-01-02"),
		"end", end.Format("2006-01-02"),
	)

	if err := app.Source.HealthCheck(ctx); err != nil {
		return report.Summary{}, fmt.Errorf("%s is unavailable: %w", app.Source.Name(), err)
	}

	directory, err := app.Source.FetchDirectory(ctx)
	if err != nil {
		app.Logger.Warn("failed to fetch user directory, identity resolution degraded", "error", err)
	}
	index := activity.NewIdentityIndex(directory)

	commits, err := app.Source.FetchCommits(ctx, start, end)
	if err != nil {
		app.Logger.Warn("failed to fetch commits", "error", err)
	}
	prs, err := app.Source.FetchPullRequests(ctx, start, end)
	if err != nil {
		app.Logger.Warn("failed to fetch pull requests", "error", err)
	}
	items, err := app.Source.FetchWorkItems(ctx, start, end)
	if err != nil {
		app.Logger.Warn("failed to fetch work items", "error", err)
	}

	app.Logger.Info("records collected",
		"commits", len(commits),
		"pull_requests", len(prs),
		"work_items", len(items),
	)

	ledger := activity.NewLedger()
	activity.NewAggregator(index).Fold(ledger, commits, prs, items)

	entries := activity.Rank(ledger.Values(), app.Config.Weights, activity.RankOptions{
		Limit:    app.Config.Limit,
		SkipZero: !app.Config.IncludeZero,
	})

	summary := report.NewSummary(
		app.Config.Organization, app.Config.Project,
		start, end,
		ledger.Values(), entries, app.Config.Weights,
	)

	builds, err := app.Source.FetchBuildStats(ctx, start, end)
	if err != nil {
		app.Logger.Warn("failed to fetch build stats", "error", err)
	} else {
		summary.Builds = builds
	}

	app.Logger.Info("aggregation complete",
		"contributors", summary.Totals.Contributors,
		"ranked", len(entries),
	)
	return summary, nil
}

// Export writes the summary in every configured format.
func (app *Application) Export(summary report.Summary) error {
	if err := os.MkdirAll(app.Config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	exporter := report.NewExporter(app.Config.OutputDir)
	timestamp := time.Now().Format("20060102")

	for _, format := range app.Config.Formats {
		switch format {
		case "json":
			filename := fmt.Sprintf("leaderboard_%s.json", timestamp)
			if err := exporter.ExportJSON(summary, filename); err != nil {
				app.Logger.Error("failed to export JSON", "error", err)
			} else {
				app.Logger.Info("report exported", "format", "json", "file", filename)
			}

		case "markdown":
			filename := fmt.Sprintf("leaderboard_%s.md", timestamp)
			if err := exporter.ExportMarkdown(summary, filename); err != nil {
				app.Logger.Error("failed to export Markdown", "error", err)
			} else {
				app.Logger.Info("report exported", "format", "markdown", "file", filename)
			}

		case "html":
			filename := fmt.Sprintf("leaderboard_%s.html", timestamp)
			if err := exporter.ExportHTML(summary, filename); err != nil {
				app.Logger.Error("failed to export HTML", "error", err)
			} else {
				app.Logger.Info("report exported", "format", "html", "file", filename)
			}

		case "csv":
			if err := report.NewCSVExporter(app.Config.OutputDir).Export(summary); err != nil {
				app.Logger.Error("failed to export CSV", "error", err)
			} else {
				app.Logger.Info("report exported", "format", "csv")
			}

		case "excel":
			if err := report.NewExcelExporter(app.Config.OutputDir).Export(summary); err != nil {
				app.Logger.Error("failed to export Excel", "error", err)
			} else {
				app.Logger.Info("report exported", "format", "excel")
			}

		default:
			app.Logger.Warn("unknown output format", "format", format)
		}
	}
	return nil
}

// Notify posts the summary to the configured webhook, if any.
func (app *Application) Notify(ctx context.Context, summary report.Summary) error {
	if app.Notifier == nil {
		return nil
	}
	if err := app.Notifier.Send(ctx, summary); err != nil {
		return fmt.Errorf("notification failed: %w", err)
	}
	app.Logger.Info("notification sent")
	return nil
}
