package display

import (
	"context"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ghrepos/pkg/integrations/github"
	"github.com/matzehuels/ghrepos/pkg/observability"
)

// Fixed messages rendered in place of a repository list.
const (
	MsgInvalidURL     = "<p>Invalid GitHub URL.</p>"
	MsgNoRepositories = "<p>No repositories found.</p>"
)

// DefaultDateFormat renders dates like "January 2, 2006".
const DefaultDateFormat = "January 2, 2006"

// RepositoryProvider fetches the public repositories of a GitHub user.
type RepositoryProvider interface {
	Repositories(ctx context.Context, username string) ([]github.Repository, error)
}

// ProviderFunc adapts a function to [RepositoryProvider].
type ProviderFunc func(ctx context.Context, username string) ([]github.Repository, error)

// Repositories calls f.
func (f ProviderFunc) Repositories(ctx context.Context, username string) ([]github.Repository, error) {
	return f(ctx, username)
}

var listTemplate = template.Must(template.New("list").Parse(
	`<ul class="gh-repo-list">` +
		`{{range .}}<li class="gh-repo-item">` +
		`<a class="repo-link" href="{{.URL}}" target="_blank"><strong>{{.Name}}</strong></a>` +
		`{{if .Description}}<p class="repo-desc">{{.Description}}</p>{{end}}` +
		`<div class="repo-meta">⭐ {{.Stars}} | Updated: {{.Updated}}</div>` +
		`</li>{{end}}` +
		`</ul>`))

type listItem struct {
	Name        string
	Description string
	URL         string
	Stars       int
	Updated     string
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithDateFormat sets the Go time layout used for the "Updated" date.
func WithDateFormat(layout string) Option {
	return func(r *Renderer) {
		if layout != "" {
			r.dateFormat = layout
		}
	}
}

// WithLocation sets the time zone dates are shown in.
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) {
		if loc != nil {
			r.location = loc
		}
	}
}

// WithLogger sets the logger used to report swallowed fetch failures.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// Renderer turns a user's repositories into an HTML fragment.
// It holds no per-request state and is safe for concurrent use.
type Renderer struct {
	provider   RepositoryProvider
	dateFormat string
	location   *time.Location
	logger     *log.Logger
}

// New creates a Renderer that fetches repositories from provider.
func New(provider RepositoryProvider, opts ...Option) *Renderer {
	r := &Renderer{
		provider:   provider,
		dateFormat: DefaultDateFormat,
		location:   time.UTC,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderURL renders the repositories of the user named in a GitHub profile
// URL, or [MsgInvalidURL] when no username can be extracted.
func (r *Renderer) RenderURL(ctx context.Context, rawURL string) string {
	username := github.ExtractUsername(rawURL)
	if username == "" {
		observability.Render().OnRender(ctx, "", observability.OutcomeInvalidURL, 0, 0)
		return MsgInvalidURL
	}
	return r.RenderUser(ctx, username)
}

// RenderUser fetches and renders the repositories of username. Any fetch
// failure renders the same empty-state message as an account with no
// repositories.
func (r *Renderer) RenderUser(ctx context.Context, username string) string {
	start := time.Now()
	hooks := observability.Render()

	repos, err := r.provider.Repositories(ctx, username)
	if err != nil {
		r.logger.Debug("fetch repositories failed", "user", username, "err", err)
		hooks.OnRender(ctx, username, observability.OutcomeFailed, 0, time.Since(start))
		return MsgNoRepositories
	}

	outcome := observability.OutcomeList
	if len(repos) == 0 {
		outcome = observability.OutcomeEmpty
	}
	out := r.RenderList(repos)
	hooks.OnRender(ctx, username, outcome, len(repos), time.Since(start))
	return out
}

// RenderList renders repos most recently updated first, or
// [MsgNoRepositories] when repos is empty.
func (r *Renderer) RenderList(repos []github.Repository) string {
	if len(repos) == 0 {
		return MsgNoRepositories
	}

	sorted := SortByUpdated(repos)
	items := make([]listItem, len(sorted))
	for i, repo := range sorted {
		items[i] = listItem{
			Name:        repo.Name,
			Description: repo.Description,
			URL:         repo.HTMLURL,
			Stars:       repo.Stars,
			Updated:     r.formatDate(repo.UpdatedAt),
		}
	}

	var b strings.Builder
	if err := listTemplate.Execute(&b, items); err != nil {
		r.logger.Error("render repository list", "err", err)
		return MsgNoRepositories
	}
	return b.String()
}

// formatDate converts an API timestamp to the configured layout and zone.
// Unparseable input is returned as-is; the template escapes it.
func (r *Renderer) formatDate(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.In(r.location).Format(r.dateFormat)
}
