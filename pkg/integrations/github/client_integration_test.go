//go:build integration

package github

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matzehuels/ghrepos/pkg/integrations"
)

func TestFetchUserRepos_Integration(t *testing.T) {
	client := NewClient(DefaultUserAgent)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos, err := client.FetchUserRepos(ctx, "octocat")
	if err != nil {
		if errors.Is(err, integrations.ErrNetwork) {
			t.Skipf("GitHub unavailable or rate limited: %v", err)
		}
		t.Fatalf("FetchUserRepos(octocat) error: %v", err)
	}
	if len(repos) == 0 {
		t.Fatal("octocat should have public repositories")
	}
	for _, r := range repos {
		if r.Name == "" || r.HTMLURL == "" {
			t.Errorf("incomplete repository: %+v", r)
		}
	}
}

func TestFetchUserRepos_IntegrationUnknownUser(t *testing.T) {
	client := NewClient(DefaultUserAgent)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := client.FetchUserRepos(ctx, "nonexistent-owner-1234567890")
	if err == nil {
		t.Fatal("expected error for unknown user")
	}
}
