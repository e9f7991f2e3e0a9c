// Package activity aggregates raw contributor activity records into a
// ranked leaderboard: identity resolution, per-contributor accumulation,
// weighted scoring and ordering.
package activity

import "time"

// UserDirectoryEntry is one row of the project's user directory, used only
// to build the identity index.
type UserDirectoryEntry struct {
	DisplayName   string
	PrincipalName string
	Email         string
}

// CommitRecord is a single commit as delivered by a collector.
type CommitRecord struct {
	AuthorName  string
	AuthorEmail string
	Timestamp   time.Time
}

// PullRequestRecord is a single pull request. Reviewers holds the reviewer
// display names joined by "; ", as produced by the collector.
type PullRequestRecord struct {
	CreatorName  string
	CreatorEmail string
	Status       string
	Reviewers    string
}

// WorkItemRecord is a single work item. The source carries no email for
// assignees, only a display name.
type WorkItemRecord struct {
	AssigneeName string
}
