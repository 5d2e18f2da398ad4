package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matzehuels/ghrepos/pkg/integrations"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClientWithBaseURL(baseURL, "")
}

func TestClient_FetchUserRepos(t *testing.T) {
	var gotPath, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name": "hello-world", "description": "My first repo", "html_url": "https://github.com/octocat/hello-world", "stargazers_count": 42, "updated_at": "2024-01-02T03:04:05Z"},
			{"name": "spoon-knife", "description": null, "html_url": "https://github.com/octocat/spoon-knife", "stargazers_count": 7, "updated_at": "2023-06-01T00:00:00Z"}
		]`))
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	repos, err := c.FetchUserRepos(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("FetchUserRepos() error: %v", err)
	}
	if gotPath != "/users/octocat/repos" {
		t.Errorf("path = %q, want /users/octocat/repos", gotPath)
	}
	if gotAgent != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", gotAgent, DefaultUserAgent)
	}
	if len(repos) != 2 {
		t.Fatalf("got %d repos, want 2", len(repos))
	}

	want := Repository{
		Name:        "hello-world",
		Description: "My first repo",
		HTMLURL:     "https://github.com/octocat/hello-world",
		Stars:       42,
		UpdatedAt:   "2024-01-02T03:04:05Z",
	}
	if repos[0] != want {
		t.Errorf("repos[0] = %+v, want %+v", repos[0], want)
	}
	if repos[1].Description != "" {
		t.Errorf("null description = %q, want empty", repos[1].Description)
	}
}

func TestClient_FetchUserReposCustomUserAgent(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := NewClientWithBaseURL(server.URL, "ghrepos-test")
	if _, err := c.FetchUserRepos(context.Background(), "octocat"); err != nil {
		t.Fatalf("FetchUserRepos() error: %v", err)
	}
	if gotAgent != "ghrepos-test" {
		t.Errorf("User-Agent = %q, want %q", gotAgent, "ghrepos-test")
	}
}

func TestClient_FetchUserReposFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"not found", http.StatusNotFound, `{"message":"Not Found"}`, integrations.ErrNotFound},
		{"rate limited", http.StatusForbidden, `{"message":"API rate limit exceeded"}`, integrations.ErrNetwork},
		{"server error", http.StatusBadGateway, ``, integrations.ErrNetwork},
		{"malformed json", http.StatusOK, `[{"name": `, integrations.ErrDecode},
		{"object instead of array", http.StatusOK, `{"name": "x"}`, integrations.ErrDecode},
		{"trailing garbage", http.StatusOK, `[{"name":"a","html_url":"https://github.com/octocat/a"}] trailing`, integrations.ErrDecode},
		{"trailing partial value", http.StatusOK, `[]{`, integrations.ErrDecode},
		{"extra closing bracket", http.StatusOK, `[{"name":"a"}]]`, integrations.ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			repos, err := testClient(t, server.URL).FetchUserRepos(context.Background(), "octocat")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("FetchUserRepos() error = %v, want %v", err, tt.wantErr)
			}
			if len(repos) != 0 {
				t.Errorf("FetchUserRepos() returned %d repos on failure", len(repos))
			}
		})
	}
}

func TestClient_FetchUserReposNullBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer server.Close()

	repos, err := testClient(t, server.URL).FetchUserRepos(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("FetchUserRepos() error: %v", err)
	}
	if len(repos) != 0 {
		t.Errorf("got %d repos, want 0", len(repos))
	}
}

func TestClient_FetchUserReposEmptyUsername(t *testing.T) {
	c := NewClient("")
	if _, err := c.FetchUserRepos(context.Background(), ""); err == nil {
		t.Error("FetchUserRepos(\"\") should return error")
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("")
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), DefaultBaseURL)
	}
}

func TestExtractUsername(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"profile url", "https://github.com/octocat", "octocat"},
		{"trailing slash", "https://github.com/octocat/", "octocat"},
		{"repo url", "https://github.com/octo-cat/hello-world", "octo-cat"},
		{"no scheme", "github.com/torvalds", "torvalds"},
		{"underscore", "http://www.github.com/some_user", "some_user"},
		{"query string", "https://github.com/octocat?tab=repositories", "octocat"},
		{"not a url", "not-a-url", ""},
		{"other host", "https://gitlab.com/octocat", ""},
		{"missing segment", "https://github.com/", ""},
		{"empty", "", ""},
		{"dot stops segment", "https://github.com/john.doe", "john"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractUsername(tt.url); got != tt.want {
				t.Errorf("ExtractUsername(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
