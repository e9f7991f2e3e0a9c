// Package azdo is a thin client for the Azure DevOps REST API, covering the
// handful of endpoints teampulse reads: repositories, commits, pull
// requests, work items, the user directory and builds.
package azdo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL  = "https://dev.azure.com"
	defaultGraphURL = "https://vssps.dev.azure.com"

	apiVersion      = "7.1"
	graphAPIVersion = "7.1-preview.1"

	// Azure DevOps throttles bursty callers; stay well under the limit.
	requestsPerSecond = 10

	pageSize      = 1000
	workItemBatch = 200
)

type Client struct {
	organization string
	project      string
	token        string
	baseURL      string
	graphURL     string
	httpClient   *http.Client
	limiter      *rate.Limiter
}

func NewClient(organization, project, token string) *Client {
	return &Client{
		organization: organization,
		project:      project,
		token:        token,
		baseURL:      defaultBaseURL,
		graphURL:     defaultGraphURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		limiter:      rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// IdentityRef is the identity shape embedded in commits, pull requests and
// work item fields. UniqueName is usually the user's email or UPN.
type IdentityRef struct {
	DisplayName string `json:"displayName"`
	UniqueName  string `json:"uniqueName"`
}

type Repository struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Commit struct {
	CommitID string `json:"commitId"`
	Author   struct {
		Name  string    `json:"name"`
		Email string    `json:"email"`
		Date  time.Time `json:"date"`
	} `json:"author"`
}

type PullRequest struct {
	PullRequestID int           `json:"pullRequestId"`
	Status        string        `json:"status"`
	CreationDate  time.Time     `json:"creationDate"`
	CreatedBy     IdentityRef   `json:"createdBy"`
	Reviewers     []IdentityRef `json:"reviewers"`
}

// User is one entry of the organization's graph user directory.
type User struct {
	DisplayName   string `json:"displayName"`
	PrincipalName string `json:"principalName"`
	MailAddress   string `json:"mailAddress"`
}

type WorkItem struct {
	ID     int `json:"id"`
	Fields struct {
		AssignedTo IdentityRef `json:"System.AssignedTo"`
		State      string      `json:"System.State"`
	} `json:"fields"`
}

type Build struct {
	ID         int    `json:"id"`
	Result     string `json:"result"` // succeeded, failed, partiallySucceeded, canceled
	Definition struct {
		Name string `json:"name"`
	} `json:"definition"`
}

type listResponse[T any] struct {
	Count int `json:"count"`
	Value []T `json:"value"`
}

func (c *Client) do(ctx context.Context, method, rawURL string, body io.Reader, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth("", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(msg))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) projectURL(path string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api-version", apiVersion)
	return fmt.Sprintf("%s/%s/%s/_apis/%s?%s",
		c.baseURL, url.PathEscape(c.organization), url.PathEscape(c.project), path, query.Encode())
}

// Repositories lists the project's git repositories.
func (c *Client) Repositories(ctx context.Context) ([]Repository, error) {
	var resp listResponse[Repository]
	if err := c.do(ctx, http.MethodGet, c.projectURL("git/repositories", nil), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}
	return resp.Value, nil
}

// Commits fetches commits for one repository within the date window.
func (c *Client) Commits(ctx context.Context, repoID string, start, end time.Time) ([]Commit, error) {
	q := url.Values{}
	q.Set("searchCriteria.fromDate", start.Format(time.RFC3339))
	q.Set("searchCriteria.toDate", end.Format(time.RFC3339))
	q.Set("searchCriteria.$top", strconv.Itoa(pageSize))

	var resp listResponse[Commit]
	path := fmt.Sprintf("git/repositories/%s/commits", url.PathEscape(repoID))
	if err := c.do(ctx, http.MethodGet, c.projectURL(path, q), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list commits for %s: %w", repoID, err)
	}
	return resp.Value, nil
}

// PullRequests fetches pull requests of all statuses for one repository.
// The API has no creation-date filter, so callers filter by window.
func (c *Client) PullRequests(ctx context.Context, repoID string) ([]PullRequest, error) {
	q := url.Values{}
	q.Set("searchCriteria.status", "all")
	q.Set("$top", strconv.Itoa(pageSize))

	var resp listResponse[PullRequest]
	path := fmt.Sprintf("git/repositories/%s/pullrequests", url.PathEscape(repoID))
	if err := c.do(ctx, http.MethodGet, c.projectURL(path, q), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list pull requests for %s: %w", repoID, err)
	}
	return resp.Value, nil
}

// Users fetches the organization's user directory from the graph endpoint.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	q := url.Values{}
	q.Set("api-version", graphAPIVersion)
	rawURL := fmt.Sprintf("%s/%s/_apis/graph/users?%s",
		c.graphURL, url.PathEscape(c.organization), q.Encode())

	var resp listResponse[User]
	if err := c.do(ctx, http.MethodGet, rawURL, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return resp.Value, nil
}

// TeamMembers fetches one team's member identities. UniqueName is the UPN,
// which doubles as the member's email in hosted organizations.
func (c *Client) TeamMembers(ctx context.Context, team string) ([]IdentityRef, error) {
	q := url.Values{}
	q.Set("api-version", apiVersion)
	rawURL := fmt.Sprintf("%s/%s/_apis/projects/%s/teams/%s/members?%s",
		c.baseURL, url.PathEscape(c.organization), url.PathEscape(c.project), url.PathEscape(team), q.Encode())

	var resp listResponse[struct {
		Identity IdentityRef `json:"identity"`
	}]
	if err := c.do(ctx, http.MethodGet, rawURL, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list members of team %s: %w", team, err)
	}

	members := make([]IdentityRef, 0, len(resp.Value))
	for _, m := range resp.Value {
		members = append(members, m.Identity)
	}
	return members, nil
}

// WorkItems runs a WIQL query for work items changed within the window and
// fetches their assignee fields in batches.
func (c *Client) WorkItems(ctx context.Context, start, end time.Time) ([]WorkItem, error) {
	wiql := fmt.Sprintf(
		"SELECT [System.Id] FROM WorkItems WHERE [System.TeamProject] = @project AND [System.ChangedDate] >= '%s' AND [System.ChangedDate] <= '%s'",
		start.Format("2006-01-02"), end.Format("2006-01-02"))

	body, err := json.Marshal(map[string]string{"query": wiql})
	if err != nil {
		return nil, fmt.Errorf("failed to encode WIQL query: %w", err)
	}

	var queryResp struct {
		WorkItems []struct {
			ID int `json:"id"`
		} `json:"workItems"`
	}
	if err := c.do(ctx, http.MethodPost, c.projectURL("wit/wiql", nil), bytes.NewReader(body), &queryResp); err != nil {
		return nil, fmt.Errorf("WIQL query failed: %w", err)
	}
	if len(queryResp.WorkItems) == 0 {
		return nil, nil
	}

	var items []WorkItem
	for batchStart := 0; batchStart < len(queryResp.WorkItems); batchStart += workItemBatch {
		batchEnd := batchStart + workItemBatch
		if batchEnd > len(queryResp.WorkItems) {
			batchEnd = len(queryResp.WorkItems)
		}

		ids := make([]string, 0, batchEnd-batchStart)
		for _, wi := range queryResp.WorkItems[batchStart:batchEnd] {
			ids = append(ids, strconv.Itoa(wi.ID))
		}

		q := url.Values{}
		q.Set("ids", strings.Join(ids, ","))
		q.Set("fields", "System.AssignedTo,System.State")

		var resp listResponse[WorkItem]
		if err := c.do(ctx, http.MethodGet, c.projectURL("wit/workitems", q), nil, &resp); err != nil {
			return nil, fmt.Errorf("failed to fetch work item batch: %w", err)
		}
		items = append(items, resp.Value...)
	}
	return items, nil
}

// Builds fetches builds that finished within the window.
func (c *Client) Builds(ctx context.Context, start, end time.Time) ([]Build, error) {
	q := url.Values{}
	q.Set("minTime", start.Format(time.RFC3339))
	q.Set("maxTime", end.Format(time.RFC3339))

	var resp listResponse[Build]
	if err := c.do(ctx, http.MethodGet, c.projectURL("build/builds", q), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list builds: %w", err)
	}
	return resp.Value, nil
}

// HealthCheck verifies that the project is reachable with the configured
// credentials.
func (c *Client) HealthCheck(ctx context.Context) error {
	q := url.Values{}
	q.Set("api-version", apiVersion)
	rawURL := fmt.Sprintf("%s/%s/_apis/projects/%s?%s",
		c.baseURL, url.PathEscape(c.organization), url.PathEscape(c.project), q.Encode())
	return c.do(ctx, http.MethodGet, rawURL, nil, nil)
}
