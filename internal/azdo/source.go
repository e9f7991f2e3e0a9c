package azdo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Afrawles/teampulse/internal/activity"
	"github.com/Afrawles/teampulse/internal/report"
)

// reviewerSeparator joins reviewer display names into the single string the
// aggregation core expects.
const reviewerSeparator = "; "

// Source flattens Azure DevOps API payloads into the record shapes the
// aggregation core consumes.
type Source struct {
	client       *Client
	repositories []string // name filter; empty means all
	team         string   // directory scope; empty means the whole organization
}

func NewSource(client *Client, repositories []string, team string) *Source {
	return &Source{client: client, repositories: repositories, team: team}
}

func (s *Source) Name() string {
	return "Azure DevOps"
}

func (s *Source) HealthCheck(ctx context.Context) error {
	return s.client.HealthCheck(ctx)
}

// selectRepositories lists the project's repositories, applying the
// configured name filter.
func (s *Source) selectRepositories(ctx context.Context) ([]Repository, error) {
	repos, err := s.client.Repositories(ctx)
	if err != nil {
		return nil, err
	}
	if len(s.repositories) == 0 {
		return repos, nil
	}

	wanted := make(map[string]bool, len(s.repositories))
	for _, name := range s.repositories {
		wanted[name] = true
	}
	var selected []Repository
	for _, repo := range repos {
		if wanted[repo.Name] {
			selected = append(selected, repo)
		}
	}
	return selected, nil
}

// FetchDirectory returns the user directory: the whole organization by
// default, or one team's members when a team is configured. Team member
// identities carry no separate mail address; the UPN serves as both
// principal name and email.
func (s *Source) FetchDirectory(ctx context.Context) ([]activity.UserDirectoryEntry, error) {
	if s.team != "" {
		members, err := s.client.TeamMembers(ctx, s.team)
		if err != nil {
			return nil, err
		}
		entries := make([]activity.UserDirectoryEntry, 0, len(members))
		for _, m := range members {
			entries = append(entries, activity.UserDirectoryEntry{
				DisplayName:   m.DisplayName,
				PrincipalName: m.UniqueName,
				Email:         m.UniqueName,
			})
		}
		return entries, nil
	}

	users, err := s.client.Users(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]activity.UserDirectoryEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, activity.UserDirectoryEntry{
			DisplayName:   u.DisplayName,
			PrincipalName: u.PrincipalName,
			Email:         u.MailAddress,
		})
	}
	return entries, nil
}

// FetchCommits returns commits across the selected repositories within the
// window.
func (s *Source) FetchCommits(ctx context.Context, start, end time.Time) ([]activity.CommitRecord, error) {
	repos, err := s.selectRepositories(ctx)
	if err != nil {
		return nil, err
	}

	var records []activity.CommitRecord
	for _, repo := range repos {
		commits, err := s.client.Commits(ctx, repo.ID, start, end)
		if err != nil {
			return nil, fmt.Errorf("repository %s: %w", repo.Name, err)
		}
		for _, c := range commits {
			records = append(records, activity.CommitRecord{
				AuthorName:  c.Author.Name,
				AuthorEmail: c.Author.Email,
				Timestamp:   c.Author.Date,
			})
		}
	}
	return records, nil
}

// FetchPullRequests returns pull requests created within the window, with
// reviewer display names joined by "; ".
func (s *Source) FetchPullRequests(ctx context.Context, start, end time.Time) ([]activity.PullRequestRecord, error) {
	repos, err := s.selectRepositories(ctx)
	if err != nil {
		return nil, err
	}

	var records []activity.PullRequestRecord
	for _, repo := range repos {
		prs, err := s.client.PullRequests(ctx, repo.ID)
		if err != nil {
			return nil, fmt.Errorf("repository %s: %w", repo.Name, err)
		}
		for _, pr := range prs {
			if pr.CreationDate.Before(start) || !pr.CreationDate.Before(end) {
				continue
			}

			reviewers := make([]string, 0, len(pr.Reviewers))
			for _, r := range pr.Reviewers {
				if r.DisplayName != "" {
					reviewers = append(reviewers, r.DisplayName)
				}
			}

			records = append(records, activity.PullRequestRecord{
				CreatorName:  pr.CreatedBy.DisplayName,
				CreatorEmail: pr.CreatedBy.UniqueName,
				Status:       pr.Status,
				Reviewers:    strings.Join(reviewers, reviewerSeparator),
			})
		}
	}
	return records, nil
}

// FetchWorkItems returns work items changed within the window. Only the
// assignee display name is carried; the work item shape has no email.
func (s *Source) FetchWorkItems(ctx context.Context, start, end time.Time) ([]activity.WorkItemRecord, error) {
	items, err := s.client.WorkItems(ctx, start, end)
	if err != nil {
		return nil, err
	}

	records := make([]activity.WorkItemRecord, 0, len(items))
	for _, wi := range items {
		records = append(records, activity.WorkItemRecord{
			AssigneeName: wi.Fields.AssignedTo.DisplayName,
		})
	}
	return records, nil
}

// FetchBuildStats summarizes builds finished within the window. Build
// results decorate the report; they are never scored.
func (s *Source) FetchBuildStats(ctx context.Context, start, end time.Time) (report.BuildStats, error) {
	builds, err := s.client.Builds(ctx, start, end)
	if err != nil {
		return report.BuildStats{}, err
	}

	var stats report.BuildStats
	stats.Total = len(builds)
	for _, b := range builds {
		switch b.Result {
		case "succeeded":
			stats.Succeeded++
		case "failed":
			stats.Failed++
		case "partiallySucceeded":
			stats.PartiallySucceeded++
		case "canceled":
			stats.Canceled++
		}
	}
	return stats, nil
}
