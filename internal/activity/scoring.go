package activity

import "fmt"

// Default score weights. Merged pull requests carry the most weight, code
// reviews slightly less, commits the least.
const (
	defaultWeightPRMerged   = 5
	defaultWeightPRCreated  = 3
	defaultWeightCodeReview = 4
	defaultWeightWorkItem   = 2
	defaultWeightCommit     = 0.5
)

// Weights is the scoring configuration. All weights must be non-negative.
type Weights struct {
	PRMerged   float64 `koanf:"pr_merged"`
	PRCreated  float64 `koanf:"pr_created"`
	CodeReview float64 `koanf:"code_review"`
	WorkItem   float64 `koanf:"work_item"`
	Commit     float64 `koanf:"commit"`
}

func DefaultWeights() Weights {
	return Weights{
		PRMerged:   defaultWeightPRMerged,
		PRCreated:  defaultWeightPRCreated,
		CodeReview: defaultWeightCodeReview,
		WorkItem:   defaultWeightWorkItem,
		Commit:     defaultWeightCommit,
	}
}

// Validate rejects negative weights. Checked once at configuration load so
// a bad weight fails the run up front instead of producing negative scores.
func (w Weights) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"pr_merged", w.PRMerged},
		{"pr_created", w.PRCreated},
		{"code_review", w.CodeReview},
		{"work_item", w.WorkItem},
		{"commit", w.Commit},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("weight %s must be non-negative, got %g", f.name, f.value)
		}
	}
	return nil
}

// Score computes the weighted composite score for one contributor. The
// formula is fixed; the weights are the only configurable part. No rounding
// happens here; rounding is a presentation concern.
func Score(acc *Accumulator, w Weights) float64 {
	return float64(acc.PRsMerged)*w.PRMerged +
		float64(acc.PRsCreated)*w.PRCreated +
		float64(acc.PRsReviewed)*w.CodeReview +
		float64(acc.WorkItems)*w.WorkItem +
		float64(acc.Commits)*w.Commit
}

// FormatFormula renders the scoring formula with the configured weights, for
// report footers.
func FormatFormula(w Weights) string {
	return fmt.Sprintf("PRs Merged x %g + PRs Created x %g + Reviews x %g + Work Items x %g + Commits x %g",
		w.PRMerged, w.PRCreated, w.CodeReview, w.WorkItem, w.Commit)
}
