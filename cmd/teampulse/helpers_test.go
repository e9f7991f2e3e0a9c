package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommaList(t *testing.T) {
	assert.Nil(t, parseCommaList(""))
	assert.Equal(t, []string{"api", "web"}, parseCommaList(" api, web ,"))
}

func TestParsePeriod(t *testing.T) {
	// A Wednesday.
	now := time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		period    string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"today", time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)},
		{"yesterday", time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)},
		{"this-week", time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)},
		{"last-week", time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)},
		{"this-month", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
		{"last-month", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			start, end, err := parsePeriod(tt.period, now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestParsePeriodUnknown(t *testing.T) {
	_, _, err := parsePeriod("fortnight", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fortnight")
}
