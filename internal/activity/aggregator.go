package activity

import "strings"

const (
	// reviewerSeparator joins reviewer display names in a pull request
	// record, as produced by the collector.
	reviewerSeparator = "; "

	// statusCompleted marks a merged pull request. Exact match; the
	// hosting platform reports lowercase status values.
	statusCompleted = "completed"
)

// Aggregator folds raw activity records into a ledger, resolving each actor
// through the identity index.
type Aggregator struct {
	index *IdentityIndex
}

func NewAggregator(index *IdentityIndex) *Aggregator {
	return &Aggregator{index: index}
}

// Fold consumes the three record sets in a fixed order: commits, then pull
// requests (creation, completion, reviewers), then work items. Each category
// increments disjoint counters, so totals do not depend on the category
// order; the order is fixed for reproducibility. Nil or empty record sets
// contribute nothing.
func (g *Aggregator) Fold(ledger *Ledger, commits []CommitRecord, prs []PullRequestRecord, items []WorkItemRecord) {
	g.foldCommits(ledger, commits)
	g.foldPullRequests(ledger, prs)
	g.foldWorkItems(ledger, items)
}

func (g *Aggregator) foldCommits(ledger *Ledger, commits []CommitRecord) {
	for _, c := range commits {
		id := g.index.Resolve(c.AuthorName, c.AuthorEmail)
		acc := ledger.GetOrCreate(id.Key)
		acc.Observe(id.DisplayName, id.Email)
		acc.Commits++
	}
}

func (g *Aggregator) foldPullRequests(ledger *Ledger, prs []PullRequestRecord) {
	for _, pr := range prs {
		// A pull request with no creator at all cannot be attributed;
		// its reviewers still count.
		if pr.CreatorName != "" || pr.CreatorEmail != "" {
			id := g.index.Resolve(pr.CreatorName, pr.CreatorEmail)
			acc := ledger.GetOrCreate(id.Key)
			acc.Observe(id.DisplayName, id.Email)
			acc.PRsCreated++
			if pr.Status == statusCompleted {
				acc.PRsMerged++
			}
		}

		for _, reviewer := range strings.Split(pr.Reviewers, reviewerSeparator) {
			reviewer = strings.TrimSpace(reviewer)
			if reviewer == "" {
				continue
			}
			// Reviewers carry no email in this record shape. A reviewer
			// listed twice on one pull request counts twice.
			id := g.index.Resolve(reviewer, "")
			acc := ledger.GetOrCreate(id.Key)
			acc.Observe(id.DisplayName, id.Email)
			acc.PRsReviewed++
		}
	}
}

func (g *Aggregator) foldWorkItems(ledger *Ledger, items []WorkItemRecord) {
	for _, wi := range items {
		// Unassigned work items are not attributed to anyone.
		if wi.AssigneeName == "" {
			continue
		}
		id := g.index.Resolve(wi.AssigneeName, "")
		acc := ledger.GetOrCreate(id.Key)
		acc.Observe(id.DisplayName, id.Email)
		acc.WorkItems++
	}
}
