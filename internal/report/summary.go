// Package report renders the ranked leaderboard into Markdown, HTML, CSV,
// Excel and JSON outputs.
package report

import (
	"math"
	"time"

	"github.com/Afrawles/teampulse/internal/activity"
)

// BuildStats summarizes pipeline builds for the reporting window. Builds are
// collected for context only; they never contribute to contributor scores.
type BuildStats struct {
	Total              int
	Succeeded          int
	Failed             int
	PartiallySucceeded int
	Canceled           int
}

// Totals are the per-category sums across every contributor in the ledger,
// not just the ranked top-N.
type Totals struct {
	Contributors int
	Commits      int
	PRsCreated   int
	PRsMerged    int
	PRsReviewed  int
	WorkItems    int
}

// Summary is everything a renderer needs for one report.
type Summary struct {
	Organization string
	Project      string
	Start        time.Time
	End          time.Time
	GeneratedAt  time.Time
	Entries      []activity.RankedEntry
	Totals       Totals
	Weights      activity.Weights
	Formula      string
	Builds       BuildStats
}

// NewSummary assembles a Summary from the full ledger contents and the
// already-ranked entries.
func NewSummary(org, project string, start, end time.Time, all []*activity.Accumulator, entries []activity.RankedEntry, weights activity.Weights) Summary {
	var totals Totals
	totals.Contributors = len(all)
	for _, acc := range all {
		totals.Commits += acc.Commits
		totals.PRsCreated += acc.PRsCreated
		totals.PRsMerged += acc.PRsMerged
		totals.PRsReviewed += acc.PRsReviewed
		totals.WorkItems += acc.WorkItems
	}

	return Summary{
		Organization: org,
		Project:      project,
		Start:        start,
		End:          end,
		GeneratedAt:  time.Now(),
		Entries:      entries,
		Totals:       totals,
		Weights:      weights,
		Formula:      activity.FormatFormula(weights),
	}
}

// roundScore rounds to two decimals for display. The scoring engine itself
// never rounds.
func roundScore(s float64) float64 {
	return math.Round(s*100) / 100
}

// displayName falls back to the contributor key when no display name was
// ever observed.
func displayName(acc *activity.Accumulator) string {
	if acc.DisplayName != "" {
		return acc.DisplayName
	}
	return acc.Key
}
