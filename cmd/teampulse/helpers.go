package main

import (
	"fmt"
	"strings"
	"time"
)

// parseCommaList splits a comma-separated string and trims whitespace
func parseCommaList(input string) []string {
	if input == "" {
		return nil
	}

	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// parsePeriod maps a named period to a concrete [start, end) window.
func parsePeriod(period string, now time.Time) (time.Time, time.Time, error) {
	switch strings.ToLower(period) {
	case "today":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start, start.Add(24 * time.Hour), nil
	case "yesterday":
		yesterday := now.AddDate(0, 0, -1)
		start := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, yesterday.Location())
		return start, start.Add(24 * time.Hour), nil
	case "this-week", "thisweek":
		daysSinceMonday := int(now.Weekday() - time.Monday)
		if daysSinceMonday < 0 {
			daysSinceMonday += 7
		}
		start := time.Date(now.Year(), now.Month(), now.Day()-daysSinceMonday, 0, 0, 0, 0, now.Location())
		return start, start.Add(7 * 24 * time.Hour), nil
	case "last-week", "lastweek":
		daysSinceMonday := int(now.Weekday() - time.Monday)
		if daysSinceMonday < 0 {
			daysSinceMonday += 7
		}
		monday := now.AddDate(0, 0, -daysSinceMonday-7)
		start := time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, monday.Location())
		return start, start.Add(7 * 24 * time.Hour), nil
	case "this-month", "thismonth":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0), nil
	case "last-month", "lastmonth":
		firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return firstOfThisMonth.AddDate(0, -1, 0), firstOfThisMonth, nil
	case "last-30-days", "last30days":
		return now.AddDate(0, 0, -30), now, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown period: %s (valid: today, yesterday, this-week, last-week, this-month, last-month, last-30-days)", period)
	}
}
