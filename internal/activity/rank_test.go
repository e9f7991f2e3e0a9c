package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankedKeys(entries []RankedEntry) []string {
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Contributor.Key)
	}
	return keys
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	accs := []*Accumulator{
		{Key: "low", Commits: 1},     // 0.5
		{Key: "high", PRsMerged: 2},  // 10
		{Key: "mid", PRsReviewed: 1}, // 4
	}

	entries := Rank(accs, DefaultWeights(), RankOptions{})
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"high", "mid", "low"}, rankedKeys(entries))
	assert.Equal(t, []int{1, 2, 3}, []int{entries[0].Rank, entries[1].Rank, entries[2].Rank})
}

func TestRankTieBreakIsStable(t *testing.T) {
	// Same score; input order must be preserved.
	accs := []*Accumulator{
		{Key: "first", Commits: 2},  // 1.0
		{Key: "second", Commits: 2}, // 1.0
		{Key: "third", WorkItems: 5},
	}

	entries := Rank(accs, DefaultWeights(), RankOptions{})
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"third", "first", "second"}, rankedKeys(entries))
}

func TestRankLimit(t *testing.T) {
	accs := []*Accumulator{
		{Key: "a", PRsMerged: 3},
		{Key: "b", PRsMerged: 2},
		{Key: "c", PRsMerged: 1},
	}

	entries := Rank(accs, DefaultWeights(), RankOptions{Limit: 2})
	require.Len(t, entries, 2)
	assert.Equal(t, []string{"a", "b"}, rankedKeys(entries))

	// Limit <= 0 means everything.
	assert.Len(t, Rank(accs, DefaultWeights(), RankOptions{Limit: 0}), 3)
}

func TestRankSkipZero(t *testing.T) {
	accs := []*Accumulator{
		{Key: "active", Commits: 1},
		{Key: "idle"},
	}

	all := Rank(accs, DefaultWeights(), RankOptions{})
	assert.Len(t, all, 2)

	filtered := Rank(accs, DefaultWeights(), RankOptions{SkipZero: true})
	require.Len(t, filtered, 1)
	assert.Equal(t, "active", filtered[0].Contributor.Key)
}
