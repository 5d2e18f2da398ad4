package widget

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/ghrepos/pkg/display"
	"github.com/matzehuels/ghrepos/pkg/integrations/github"
)

type fixedProvider struct {
	repos []github.Repository
	users []string
}

func (p *fixedProvider) Repositories(ctx context.Context, username string) ([]github.Repository, error) {
	p.users = append(p.users, username)
	return p.repos, nil
}

func testLayout() Layout {
	return Layout{BeforeWidget: "<aside>", AfterWidget: "</aside>", BeforeTitle: "<h3>", AfterTitle: "</h3>"}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "title and valid url",
			cfg:  Config{Title: "My Repos", GitHubURL: "https://github.com/octocat"},
			want: "<aside><h3>My Repos</h3>" + display.MsgNoRepositories + "</aside>",
		},
		{
			name: "no title",
			cfg:  Config{GitHubURL: "https://github.com/octocat"},
			want: "<aside>" + display.MsgNoRepositories + "</aside>",
		},
		{
			name: "invalid url",
			cfg:  Config{Title: "T", GitHubURL: "not a url"},
			want: "<aside><h3>T</h3>" + display.MsgInvalidURL + "</aside>",
		},
		{
			name: "empty config",
			cfg:  Config{},
			want: "<aside>" + display.MsgInvalidURL + "</aside>",
		},
		{
			name: "unsafe scheme",
			cfg:  Config{GitHubURL: "javascript:alert('github.com/x')"},
			want: "<aside>" + display.MsgInvalidURL + "</aside>",
		},
		{
			name: "title escaped",
			cfg:  Config{Title: `<b>Repos</b> & more`, GitHubURL: "https://github.com/octocat"},
			want: "<aside><h3>&lt;b&gt;Repos&lt;/b&gt; &amp; more</h3>" + display.MsgNoRepositories + "</aside>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(display.New(&fixedProvider{}), testLayout())
			if got := w.Render(context.Background(), tt.cfg); got != tt.want {
				t.Errorf("Render() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestRenderFetchesUser(t *testing.T) {
	p := &fixedProvider{repos: []github.Repository{{Name: "hello-world", HTMLURL: "https://github.com/octocat/hello-world", UpdatedAt: "2024-01-01T00:00:00Z"}}}
	w := New(display.New(p), DefaultLayout)

	got := w.Render(context.Background(), Config{Title: DefaultTitle, GitHubURL: "github.com/octocat"})

	if len(p.users) != 1 || p.users[0] != "octocat" {
		t.Errorf("provider calls = %v, want [octocat]", p.users)
	}
	if !strings.HasPrefix(got, DefaultLayout.BeforeWidget) || !strings.HasSuffix(got, DefaultLayout.AfterWidget) {
		t.Errorf("layout not applied: %s", got)
	}
	if !strings.Contains(got, `<ul class="gh-repo-list">`) {
		t.Errorf("list missing: %s", got)
	}
}

func TestForm(t *testing.T) {
	w := New(display.New(&fixedProvider{}), DefaultLayout)

	t.Run("defaults", func(t *testing.T) {
		got, err := w.Form("abc", Config{})
		if err != nil {
			t.Fatalf("Form() error: %v", err)
		}
		for _, want := range []string{
			`id="widget-github_repo_widget-abc-title"`,
			`name="title"`,
			`value="GitHub Repositories"`,
			`name="github_url"`,
			`value=""`,
			`placeholder="https://github.com/username"`,
		} {
			if !strings.Contains(got, want) {
				t.Errorf("Form() missing %s:\n%s", want, got)
			}
		}
	})

	t.Run("escapes values", func(t *testing.T) {
		got, err := w.Form("abc", Config{Title: `"quoted" <title>`, GitHubURL: "https://github.com/octocat"})
		if err != nil {
			t.Fatalf("Form() error: %v", err)
		}
		if strings.Contains(got, `<title>`) {
			t.Errorf("title not escaped:\n%s", got)
		}
		if !strings.Contains(got, `value="https://github.com/octocat"`) {
			t.Errorf("url missing:\n%s", got)
		}
	})
}

func TestUpdate(t *testing.T) {
	old := Config{Title: "old", GitHubURL: "https://github.com/old"}
	got := Update(Config{Title: "  <em>New</em>\ttitle\n", GitHubURL: " github.com/octocat "}, old)

	want := Config{Title: "New title", GitHubURL: "http://github.com/octocat"}
	if got != want {
		t.Errorf("Update() = %+v, want %+v", got, want)
	}

	if got := Update(Config{}, old); got != (Config{}) {
		t.Errorf("Update() should replace, not merge: %+v", got)
	}
}
