package report

import (
	"fmt"
	"io"
	"strings"
)

// RenderMarkdown writes the leaderboard as a Markdown document. Used both
// for file export and for terminal output.
func RenderMarkdown(w io.Writer, s Summary) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Team Activity Leaderboard — %s/%s\n\n", s.Organization, s.Project)
	fmt.Fprintf(&b, "Period: %s to %s\n\n", s.Start.Format("2006-01-02"), s.End.Format("2006-01-02"))

	b.WriteString("| Rank | Contributor | Commits | PRs Created | PRs Merged | Reviews | Work Items | Score |\n")
	b.WriteString("|-----:|-------------|--------:|------------:|-----------:|--------:|-----------:|------:|\n")
	for _, e := range s.Entries {
		acc := e.Contributor
		name := displayName(acc)
		if acc.Email != "" {
			name = fmt.Sprintf("%s (%s)", name, acc.Email)
		}
		fmt.Fprintf(&b, "| %d | %s | %d | %d | %d | %d | %d | %.2f |\n",
			e.Rank, name, acc.Commits, acc.PRsCreated, acc.PRsMerged,
			acc.PRsReviewed, acc.WorkItems, roundScore(e.Score))
	}

	b.WriteString("\n## Totals\n\n")
	fmt.Fprintf(&b, "- Contributors: %d\n", s.Totals.Contributors)
	fmt.Fprintf(&b, "- Commits: %d\n", s.Totals.Commits)
	fmt.Fprintf(&b, "- Pull requests created: %d (merged: %d)\n", s.Totals.PRsCreated, s.Totals.PRsMerged)
	fmt.Fprintf(&b, "- Reviews: %d\n", s.Totals.PRsReviewed)
	fmt.Fprintf(&b, "- Work items: %d\n", s.Totals.WorkItems)

	if s.Builds.Total > 0 {
		b.WriteString("\n## Builds\n\n")
		fmt.Fprintf(&b, "- Total: %d, succeeded: %d, failed: %d\n",
			s.Builds.Total, s.Builds.Succeeded, s.Builds.Failed)
	}

	fmt.Fprintf(&b, "\nScoring: %s\n", s.Formula)

	_, err := io.WriteString(w, b.String())
	return err
}
