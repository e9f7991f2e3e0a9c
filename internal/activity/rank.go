package activity

import "sort"

// RankedEntry is one row of the final leaderboard.
type RankedEntry struct {
	Rank        int
	Contributor *Accumulator
	Score       float64
}

// RankOptions controls ranking output. Limit <= 0 means no truncation.
// SkipZero drops contributors whose score is exactly zero.
type RankOptions struct {
	Limit    int
	SkipZero bool
}

// Rank scores every accumulator and returns them ordered by score
// descending. The sort is stable: contributors with equal scores keep the
// relative order they had in the input, which for a ledger's Values() is
// first-seen order. Ranks are assigned 1-based after truncation.
func Rank(accumulators []*Accumulator, w Weights, opts RankOptions) []RankedEntry {
	entries := make([]RankedEntry, 0, len(accumulators))
	for _, acc := range accumulators {
		s := Score(acc, w)
		if opts.SkipZero && s == 0 {
			continue
		}
		entries = append(entries, RankedEntry{Contributor: acc, Score: s})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
