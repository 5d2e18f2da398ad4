package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/ghrepos/internal/config"
	"github.com/matzehuels/ghrepos/pkg/display"
	apperrors "github.com/matzehuels/ghrepos/pkg/errors"
	"github.com/matzehuels/ghrepos/pkg/integrations/github"
	"github.com/matzehuels/ghrepos/pkg/settings"
	"github.com/matzehuels/ghrepos/pkg/widget"
)

var cliRepos = []github.Repository{
	{Name: "hello-world", Description: "My first repo", HTMLURL: "https://github.com/octocat/hello-world", Stars: 42, UpdatedAt: "2024-03-01T12:00:00Z"},
}

type cliEnv struct {
	t        *testing.T
	dir      string
	requests []string
}

// newCLIEnv isolates config and widget storage in a temp dir.
func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvPath, filepath.Join(dir, "config.toml"))
	t.Setenv("GHREPOS_SETTINGS_BACKEND", settings.BackendFile)
	t.Setenv("GHREPOS_SETTINGS_DIR", filepath.Join(dir, "widgets"))
	captureStatus(t)
	return &cliEnv{t: t, dir: dir}
}

func (e *cliEnv) run(args ...string) (string, error) {
	e.t.Helper()
	c := New(io.Discard, LogInfo)
	c.newProvider = func(config.Config) display.RepositoryProvider {
		return display.ProviderFunc(func(ctx context.Context, username string) ([]github.Repository, error) {
			e.requests = append(e.requests, username)
			if username == "octocat" {
				return cliRepos, nil
			}
			return nil, nil
		})
	}

	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestShortcodeCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"url flag", []string{"shortcode", "--url", "https://github.com/octocat"}, `<strong>hello-world</strong>`},
		{"attribute syntax", []string{"shortcode", `URL="https://github.com/octocat"`}, `<strong>hello-world</strong>`},
		{"flag wins", []string{"shortcode", `url="https://github.com/nobody"`, "--url", "https://github.com/octocat"}, `gh-repo-list`},
		{"invalid url", []string{"shortcode", "--url", "not-a-url"}, display.MsgInvalidURL},
		{"no attributes", []string{"shortcode"}, display.MsgInvalidURL},
		{"no repositories", []string{"shortcode", "--url", "https://github.com/nobody"}, display.MsgNoRepositories},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)
			out, err := env.run(tt.args...)
			if err != nil {
				t.Fatalf("run error: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output = %q, want to contain %q", out, tt.want)
			}
		})
	}
}

func TestExpandCommand(t *testing.T) {
	env := newCLIEnv(t)
	path := filepath.Join(env.dir, "post.html")
	content := "<h1>Projects</h1>\n[github_repos url=\"https://github.com/octocat\"]\n[[github_repos]]\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := env.run("expand", path)
	if err != nil {
		t.Fatalf("expand error: %v", err)
	}
	if !strings.HasPrefix(out, "<h1>Projects</h1>\n<ul class=\"gh-repo-list\">") {
		t.Errorf("output = %q", out)
	}
	if !strings.HasSuffix(out, "\n[github_repos]\n") {
		t.Errorf("escaped directive not kept: %q", out)
	}

	dest := filepath.Join(env.dir, "out.html")
	if _, err := env.run("expand", path, "-o", dest); err != nil {
		t.Fatalf("expand -o error: %v", err)
	}
	written, _ := os.ReadFile(dest)
	if !strings.Contains(string(written), "hello-world") {
		t.Errorf("output file = %q", written)
	}
}

func TestCSSCommand(t *testing.T) {
	env := newCLIEnv(t)
	out, err := env.run("css")
	if err != nil {
		t.Fatalf("css error: %v", err)
	}
	if out != string(display.Stylesheet()) {
		t.Error("css output differs from embedded stylesheet")
	}
}

func TestWidgetCommands(t *testing.T) {
	env := newCLIEnv(t)

	if _, err := env.run("widget", "add", "--id", "sidebar", "--title", "<i>Code</i>", "--url", "github.com/octocat"); err != nil {
		t.Fatalf("widget add: %v", err)
	}

	out, err := env.run("widget", "show", "sidebar")
	if err != nil {
		t.Fatalf("widget show: %v", err)
	}
	for _, want := range []string{"Code", "http://github.com/octocat", "octocat"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q: %s", want, out)
		}
	}

	out, err = env.run("widget", "render", "sidebar")
	if err != nil {
		t.Fatalf("widget render: %v", err)
	}
	if !strings.Contains(out, `<h2 class="widget-title">Code</h2>`) || !strings.Contains(out, "hello-world") {
		t.Errorf("render output = %s", out)
	}

	out, _ = env.run("widget", "render", "sidebar", "--bare")
	if strings.Contains(out, "<section") {
		t.Errorf("--bare output contains layout: %s", out)
	}

	if _, err := env.run("widget", "set", "sidebar", "--url", "https://github.com/nobody"); err != nil {
		t.Fatalf("widget set: %v", err)
	}
	out, _ = env.run("widget", "render", "sidebar")
	if !strings.Contains(out, display.MsgNoRepositories) || !strings.Contains(out, "Code") {
		t.Errorf("render after set = %s", out)
	}

	out, err = env.run("widget", "form", "sidebar")
	if err != nil {
		t.Fatalf("widget form: %v", err)
	}
	if !strings.Contains(out, `name="github_url"`) || !strings.Contains(out, `value="https://github.com/nobody"`) {
		t.Errorf("form output = %s", out)
	}

	out, err = env.run("widget", "list")
	if err != nil {
		t.Fatalf("widget list: %v", err)
	}
	if !strings.Contains(out, "sidebar") {
		t.Errorf("list output = %s", out)
	}

	if _, err := env.run("widget", "delete", "sidebar"); err != nil {
		t.Fatalf("widget delete: %v", err)
	}
	_, err = env.run("widget", "show", "sidebar")
	if !apperrors.Is(err, apperrors.ErrCodeWidgetNotFound) {
		t.Errorf("show after delete error = %v, want WIDGET_NOT_FOUND", err)
	}
}

func TestWidgetAddTakenID(t *testing.T) {
	env := newCLIEnv(t)
	if _, err := env.run("widget", "add", "--id", "sidebar", "--title", "Keep", "--url", "https://github.com/octocat"); err != nil {
		t.Fatalf("widget add: %v", err)
	}
	_, err := env.run("widget", "add", "--id", "sidebar", "--title", "Other")
	if !apperrors.Is(err, apperrors.ErrCodeWidgetExists) {
		t.Fatalf("second add error = %v, want WIDGET_EXISTS", err)
	}

	out, err := env.run("widget", "show", "sidebar")
	if err != nil {
		t.Fatalf("widget show: %v", err)
	}
	if !strings.Contains(out, "Keep") || strings.Contains(out, "Other") {
		t.Errorf("show after rejected add = %s", out)
	}
}

func TestWidgetAddDefaults(t *testing.T) {
	env := newCLIEnv(t)
	if _, err := env.run("widget", "add", "--url", "https://github.com/octocat"); err != nil {
		t.Fatalf("widget add: %v", err)
	}

	store, err := settings.NewFileStore(filepath.Join(env.dir, "widgets"))
	if err != nil {
		t.Fatal(err)
	}
	list, _ := store.List(context.Background())
	if len(list) != 1 {
		t.Fatalf("stored %d widgets, want 1", len(list))
	}
	if list[0].Config.Title != widget.DefaultTitle {
		t.Errorf("title = %q, want default", list[0].Config.Title)
	}
	if settings.ValidateID(list[0].ID) != nil {
		t.Errorf("generated id %q invalid", list[0].ID)
	}
}

func TestWidgetErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code apperrors.Code
	}{
		{"set without flags", []string{"widget", "set", "x"}, apperrors.ErrCodeInvalidInput},
		{"set unknown", []string{"widget", "set", "x", "--title", "T"}, apperrors.ErrCodeWidgetNotFound},
		{"render unknown", []string{"widget", "render", "x"}, apperrors.ErrCodeWidgetNotFound},
		{"bad id", []string{"widget", "add", "--id", "../x"}, apperrors.ErrCodeInvalidID},
		{"unknown backend", []string{"widget", "list", "--store", "sqlite"}, apperrors.ErrCodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)
			_, err := env.run(tt.args...)
			if !apperrors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestInvalidConfig(t *testing.T) {
	env := newCLIEnv(t)
	if err := os.WriteFile(filepath.Join(env.dir, "config.toml"), []byte("[display]\ntimezone = \"Nowhere/None\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err := env.run("shortcode", "--url", "https://github.com/octocat")
	if !apperrors.Is(err, apperrors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestCompletionCommand(t *testing.T) {
	env := newCLIEnv(t)
	out, err := env.run("completion", "bash")
	if err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(out, "ghrepos") {
		t.Error("bash completion does not mention ghrepos")
	}
}

func TestWidgetFormModel(t *testing.T) {
	m := NewWidgetFormModel("w1", widget.Config{})
	if got := m.Config().Title; got != widget.DefaultTitle {
		t.Errorf("initial title = %q, want default", got)
	}

	send := func(m WidgetFormModel, msg tea.KeyMsg) WidgetFormModel {
		next, _ := m.Update(msg)
		return next.(WidgetFormModel)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlU})
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("My")})
	m = send(m, tea.KeyMsg{Type: tea.KeySpace})
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Reposx")})
	m = send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("https://github.com/octocat")})

	if !strings.Contains(m.View(), "GitHub URL") {
		t.Error("View() missing field label")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(WidgetFormModel)
	if !m.Saved || cmd == nil {
		t.Fatal("enter on last field should save and quit")
	}
	want := widget.Config{Title: "My Repos", GitHubURL: "https://github.com/octocat"}
	if m.Config() != want {
		t.Errorf("Config() = %+v, want %+v", m.Config(), want)
	}
}

func TestWidgetFormModelCancel(t *testing.T) {
	m := NewWidgetFormModel("w1", widget.Config{Title: "T"})
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got := next.(WidgetFormModel); !got.Cancelled || got.Saved {
		t.Errorf("esc: Cancelled=%v Saved=%v", got.Cancelled, got.Saved)
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Time{}, "—"},
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-50 * time.Hour), "2d ago"},
		{time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), "Jan 2, 2023"},
	}
	for _, tt := range tests {
		if got := formatRelativeTime(tt.t, now); got != tt.want {
			t.Errorf("formatRelativeTime(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestExpandMissingFile(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run("expand", filepath.Join(env.dir, "absent.html"))
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}
