package azdo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Afrawles/teampulse/internal/activity"
)

// newTestSource wires a Source against a fake API server.
func newTestSource(t *testing.T, handler http.Handler, repos []string, team string) *Source {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("contoso", "website", "pat")
	client.baseURL = server.URL
	client.graphURL = server.URL
	return NewSource(client, repos, team)
}

func testMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/contoso/website/_apis/git/repositories", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":2,"value":[
			{"id":"r1","name":"api"},
			{"id":"r2","name":"web"}
		]}`))
	})
	mux.HandleFunc("/contoso/website/_apis/git/repositories/r1/commits", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":2,"value":[
			{"commitId":"c1","author":{"name":"Alice Adams","email":"alice@example.com","date":"2026-08-20T10:00:00Z"}},
			{"commitId":"c2","author":{"name":"Bob Brown","email":"bob@example.com","date":"2026-08-21T11:00:00Z"}}
		]}`))
	})
	mux.HandleFunc("/contoso/website/_apis/git/repositories/r2/commits", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":0,"value":[]}`))
	})
	mux.HandleFunc("/contoso/website/_apis/git/repositories/r1/pullrequests", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":2,"value":[
			{"pullRequestId":1,"status":"completed","creationDate":"2026-08-20T09:00:00Z",
			 "createdBy":{"displayName":"Alice Adams","uniqueName":"alice@example.com"},
			 "reviewers":[{"displayName":"Bob Brown"},{"displayName":"Carol Clark"}]},
			{"pullRequestId":2,"status":"active","creationDate":"2025-01-01T00:00:00Z",
			 "createdBy":{"displayName":"Bob Brown","uniqueName":"bob@example.com"},
			 "reviewers":[]}
		]}`))
	})
	mux.HandleFunc("/contoso/website/_apis/git/repositories/r2/pullrequests", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":0,"value":[]}`))
	})
	mux.HandleFunc("/contoso/_apis/graph/users", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":2,"value":[
			{"displayName":"Alice Adams","principalName":"alice@example.com","mailAddress":"alice@example.com"},
			{"displayName":"Build Service","principalName":"build@contoso","mailAddress":""}
		]}`))
	})
	mux.HandleFunc("/contoso/website/_apis/wit/wiql", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"workItems":[{"id":10},{"id":11}]}`))
	})
	mux.HandleFunc("/contoso/website/_apis/wit/workitems", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":2,"value":[
			{"id":10,"fields":{"System.AssignedTo":{"displayName":"Alice Adams","uniqueName":"alice@example.com"},"System.State":"Done"}},
			{"id":11,"fields":{"System.State":"New"}}
		]}`))
	})
	mux.HandleFunc("/contoso/website/_apis/build/builds", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":3,"value":[
			{"id":1,"result":"succeeded","definition":{"name":"ci"}},
			{"id":2,"result":"failed","definition":{"name":"ci"}},
			{"id":3,"result":"succeeded","definition":{"name":"deploy"}}
		]}`))
	})
	mux.HandleFunc("/contoso/_apis/projects/website/teams/platform/members", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":1,"value":[
			{"identity":{"displayName":"Alice Adams","uniqueName":"alice@example.com"}}
		]}`))
	})
	return mux
}

func testWindow() (time.Time, time.Time) {
	start := time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	return start, end
}

func TestFetchCommits(t *testing.T) {
	source := newTestSource(t, testMux(), nil, "")
	start, end := testWindow()

	commits, err := source.FetchCommits(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, activity.CommitRecord{
		AuthorName:  "Alice Adams",
		AuthorEmail: "alice@example.com",
		Timestamp:   time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
	}, commits[0])
}

func TestFetchCommitsRepositoryFilter(t *testing.T) {
	source := newTestSource(t, testMux(), []string{"web"}, "")
	start, end := testWindow()

	commits, err := source.FetchCommits(context.Background(), start, end)
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestFetchPullRequests(t *testing.T) {
	source := newTestSource(t, testMux(), nil, "")
	start, end := testWindow()

	prs, err := source.FetchPullRequests(context.Background(), start, end)
	require.NoError(t, err)

	// PR #2 was created outside the window.
	require.Len(t, prs, 1)
	assert.Equal(t, activity.PullRequestRecord{
		CreatorName:  "Alice Adams",
		CreatorEmail: "alice@example.com",
		Status:       "completed",
		Reviewers:    "Bob Brown; Carol Clark",
	}, prs[0])
}

func TestFetchWorkItems(t *testing.T) {
	source := newTestSource(t, testMux(), nil, "")
	start, end := testWindow()

	items, err := source.FetchWorkItems(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Alice Adams", items[0].AssigneeName)
	assert.Empty(t, items[1].AssigneeName) // unassigned
}

func TestFetchDirectory(t *testing.T) {
	source := newTestSource(t, testMux(), nil, "")

	entries, err := source.FetchDirectory(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, activity.UserDirectoryEntry{
		DisplayName:   "Alice Adams",
		PrincipalName: "alice@example.com",
		Email:         "alice@example.com",
	}, entries[0])
	assert.Empty(t, entries[1].Email)
}

func TestFetchDirectoryTeamScoped(t *testing.T) {
	source := newTestSource(t, testMux(), nil, "platform")

	entries, err := source.FetchDirectory(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice@example.com", entries[0].Email)
}

func TestFetchBuildStats(t *testing.T) {
	source := newTestSource(t, testMux(), nil, "")
	start, end := testWindow()

	stats, err := source.FetchBuildStats(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Succeeded)
	assert.Equal(t, 1, stats.Failed)
}

func TestClientErrorStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	})
	source := newTestSource(t, mux, nil, "")

	_, err := source.FetchDirectory(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
