package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/matzehuels/ghrepos/pkg/integrations"
)

const (
	// DefaultBaseURL is the GitHub REST API root.
	DefaultBaseURL = "https://api.github.com"

	// DefaultUserAgent is sent with every request. GitHub rejects requests
	// without a User-Agent header.
	DefaultUserAgent = "WordPress"
)

// Client lists public repositories through the GitHub REST API.
// Requests are unauthenticated, unpaginated and never retried.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a GitHub API client that identifies itself with userAgent.
// An empty userAgent falls back to [DefaultUserAgent].
func NewClient(userAgent string) *Client {
	return NewClientWithBaseURL(DefaultBaseURL, userAgent)
}

// NewClientWithBaseURL is like [NewClient] but targets a different API root,
// for GitHub Enterprise or a test server.
func NewClientWithBaseURL(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	headers := map[string]string{
		"Accept":     "application/vnd.github.v3+json",
		"User-Agent": userAgent,
	}
	return &Client{
		Client:  integrations.NewClient(headers),
		baseURL: baseURL,
	}
}

// BaseURL returns the API root used by the client.
func (c *Client) BaseURL() string { return c.baseURL }

// WithHTTPClient routes requests through hc and returns c.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.SetHTTPClient(hc)
	return c
}

// FetchUserRepos retrieves the first page of public repositories for username
// from GET /users/{username}/repos.
//
// A JSON null body yields an empty list. A body that is not a JSON array
// yields an error wrapping [integrations.ErrDecode].
func (c *Client) FetchUserRepos(ctx context.Context, username string) ([]Repository, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}

	var repos []Repository
	endpoint := fmt.Sprintf("%s/users/%s/repos", c.baseURL, url.PathEscape(username))
	if err := c.Get(ctx, endpoint, &repos); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: github user %s", err, username)
		}
		return nil, err
	}
	return repos, nil
}

// Repositories implements display.RepositoryProvider.
func (c *Client) Repositories(ctx context.Context, username string) ([]Repository, error) {
	return c.FetchUserRepos(ctx, username)
}
