package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/KOFI-GYIMAH/handoff-assistant/pkg/errors"
)

const commitJSON = `{
	"sha": %q,
	"commit": {
		"message": %q,
		"author": {"name": %q, "email": %q, "date": %q}
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-token", server.URL)
	require.NoError(t, err)
	return client, server
}

func TestNewClient(t *testing.T) {
	client, err := NewClient("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, client.gh.BaseURL.String())

	client, err = NewClient("token", "https://ghe.example.com/api/v3")
	require.NoError(t, err)
	assert.Equal(t, "https://ghe.example.com/api/v3/", client.gh.BaseURL.String())
}

func TestClient_AuthorizationHeader(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	})

	commits, err := client.ListCommits(context.Background(), "owner", "repo", "main")
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestClient_ListCommits(t *testing.T) {
	var srv *httptest.Server
	var hits int32

	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/repos/owner/repo/commits", r.URL.Path)
		assert.Equal(t, "feature-x", r.URL.Query().Get("sha"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		if r.URL.Query().Get("page") == "" {
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/owner/repo/commits?page=2&per_page=100&sha=feature-x>; rel="next"`, srv.URL))
			fmt.Fprintf(w, "[%s,%s]",
				fmt.Sprintf(commitJSON, "c2", "fix login bug", "Jane", "jane@example.com", "2024-03-02T10:00:00+02:00"),
				fmt.Sprintf(commitJSON, "c1", "add widget", "John", "john@example.com", "2024-03-01T10:00:00Z"),
			)
			return
		}

		fmt.Fprintf(w, "[%s]", fmt.Sprintf(commitJSON, "c0", "initial commit", "John", "john@example.com", "2024-02-28T10:00:00Z"))
	})

	commits, err := client.ListCommits(context.Background(), "owner", "repo", "feature-x")
	require.NoError(t, err)
	require.Len(t, commits, 3)

	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
	assert.Equal(t, "c2", commits[0].SHA)
	assert.Equal(t, "Jane", commits[0].AuthorName)
	assert.Equal(t, "jane@example.com", commits[0].AuthorEmail)
	assert.Equal(t, "fix login bug", commits[0].Message)
	assert.Equal(t, time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC), commits[0].Timestamp)
	assert.Equal(t, time.UTC, commits[0].Timestamp.Location())
	assert.Equal(t, "c0", commits[2].SHA)
}

func TestClient_ListCommits_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		headers  map[string]string
		body     string
		expected string
	}{
		{
			name:     "unknown branch",
			status:   http.StatusNotFound,
			body:     `{"message": "No commit found for SHA: nope"}`,
			expected: apperrors.RefNotFound,
		},
		{
			name:     "empty repository",
			status:   http.StatusConflict,
			body:     `{"message": "Git Repository is empty."}`,
			expected: apperrors.RefNotFound,
		},
		{
			name:   "primary rate limit",
			status: http.StatusForbidden,
			headers: map[string]string{
				"X-RateLimit-Limit":     "60",
				"X-RateLimit-Remaining": "0",
				"X-RateLimit-Reset":     fmt.Sprint(time.Now().Add(time.Hour).Unix()),
			},
			body:     `{"message": "API rate limit exceeded"}`,
			expected: apperrors.RefRateLimited,
		},
		{
			name:     "too many requests",
			status:   http.StatusTooManyRequests,
			headers:  map[string]string{"Retry-After": "0"},
			body:     `{"message": "slow down"}`,
			expected: apperrors.RefRateLimited,
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			body:     `{"message": "boom"}`,
			expected: apperrors.RefUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tt.headers {
					w.Header().Set(k, v)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			commits, err := client.ListCommits(context.Background(), "owner", "repo", "nope")
			require.Error(t, err)
			assert.Nil(t, commits)
			assert.True(t, apperrors.HasReference(err, tt.expected), "expected %s, got %v", tt.expected, err)
		})
	}
}

func TestClient_TooManyRequestsIsRetriedOnce(t *testing.T) {
	var hits int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`[]`))
	})

	_, err := client.ListCommits(context.Background(), "owner", "repo", "main")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestClient_GetCommitDetail(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/owner/repo/commits/abc123", r.URL.Path)
		w.Write([]byte(`{
			"sha": "abc123",
			"stats": {"additions": 12, "deletions": 3, "total": 15},
			"files": [
				{"filename": "src/api/server.py", "additions": 10, "deletions": 1},
				{"filename": "tests/test_api.py", "additions": 2, "deletions": 2}
			]
		}`))
	})

	detail, err := client.GetCommitDetail(context.Background(), "owner", "repo", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", detail.SHA)
	assert.Equal(t, 12, detail.LinesAdded)
	assert.Equal(t, 3, detail.LinesRemoved)
	assert.Equal(t, []string{"src/api/server.py", "tests/test_api.py"}, detail.FilesChanged)
}

func TestClient_ListBranches(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/owner/repo/branches":
			w.Write([]byte(`[
				{"name": "develop", "commit": {"sha": "d1"}},
				{"name": "main", "commit": {"sha": "m1"}}
			]`))
		case "/repos/owner/repo":
			w.Write([]byte(`{"full_name": "owner/repo", "default_branch": "main"}`))
		case "/repos/owner/repo/commits/m1":
			fmt.Fprintf(w, commitJSON, "m1", "release", "Jane", "jane@example.com", "2024-05-06T23:30:00Z")
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "Not Found"}`))
		}
	})

	branches, err := client.ListBranches(context.Background(), "owner", "repo")
	require.NoError(t, err)
	require.Len(t, branches, 2)

	assert.Equal(t, "develop", branches[0].Name)
	assert.Equal(t, "Unknown", branches[0].LastCommitDate)
	assert.False(t, branches[0].IsDefault)

	assert.Equal(t, "main", branches[1].Name)
	assert.Equal(t, "m1", branches[1].CommitSHA)
	assert.Equal(t, "2024-05-06", branches[1].LastCommitDate)
	assert.True(t, branches[1].IsDefault)
}

func TestClient_CompareAndTree(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/owner/repo/compare/a1...b2":
			w.Write([]byte(`{"files": [{"filename": "main.go", "patch": "@@ -1 +1 @@\n-a\n+b"}, {"filename": "logo.png"}]}`))
		case "/repos/owner/repo/git/trees/b2":
			assert.Equal(t, "1", r.URL.Query().Get("recursive"))
			w.Write([]byte(`{"sha": "b2", "tree": [
				{"path": "cmd", "type": "tree", "sha": "t1"},
				{"path": "cmd/main.go", "type": "blob", "sha": "f1", "size": 120},
				{"path": "go.mod", "type": "blob", "sha": "f2", "size": 40}
			]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	diffs, err := client.CompareCommits(context.Background(), "owner", "repo", "a1", "b2")
	require.NoError(t, err)
	require.Len(t, diffs, 2)
	assert.Equal(t, "main.go", diffs[0].Filename)
	assert.Contains(t, diffs[0].Patch, "+b")
	assert.Empty(t, diffs[1].Patch)

	entries, err := client.GetTree(context.Background(), "owner", "repo", "b2")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "cmd/main.go", entries[0].Path)
	assert.Equal(t, 120, entries[0].Size)
}

func TestClient_GetFileContent(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/owner/repo/contents/go.mod", r.URL.Path)
		assert.Equal(t, "b2", r.URL.Query().Get("ref"))
		// "module demo\n"
		w.Write([]byte(`{"type": "file", "encoding": "base64", "path": "go.mod", "content": "bW9kdWxlIGRlbW8K"}`))
	})

	content, err := client.GetFileContent(context.Background(), "owner", "repo", "go.mod", "b2")
	require.NoError(t, err)
	assert.Equal(t, "module demo\n", content)
}

func TestClient_ContextCancellation(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.ListCommits(ctx, "owner", "repo", "main")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
