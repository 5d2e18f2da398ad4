// Package widget implements the sidebar widget adapter.
//
// A widget instance is persisted by the host as a [Config] (title plus GitHub
// profile URL). The host calls [Update] when the settings form is saved,
// [Widget.Form] to draw that form and [Widget.Render] to display the widget.
package widget

import (
	"context"
	"html"
	"html/template"
	"strings"

	"github.com/matzehuels/ghrepos/pkg/display"
)

// Widget identity as registered with the host.
const (
	ID          = "github_repo_widget"
	Name        = "GitHub Repo Widget"
	Description = "Display GitHub repositories for any user"
)

// DefaultTitle pre-fills the title field of a new widget's form.
const DefaultTitle = "GitHub Repositories"

// Config is the persisted configuration of one widget instance.
type Config struct {
	Title     string `json:"title" bson:"title"`
	GitHubURL string `json:"github_url" bson:"github_url"`
}

// Update returns the configuration to persist when the settings form is
// saved. The title is reduced to plain text and the URL sanitized; the
// previous configuration is replaced, not merged.
func Update(newCfg, oldCfg Config) Config {
	return Config{
		Title:     SanitizeText(newCfg.Title),
		GitHubURL: SanitizeURL(newCfg.GitHubURL),
	}
}

// Layout holds the markup the host wraps around a widget.
type Layout struct {
	BeforeWidget string
	AfterWidget  string
	BeforeTitle  string
	AfterTitle   string
}

// DefaultLayout is a plain sidebar section.
var DefaultLayout = Layout{
	BeforeWidget: `<section class="widget ` + ID + `">`,
	AfterWidget:  `</section>`,
	BeforeTitle:  `<h2 class="widget-title">`,
	AfterTitle:   `</h2>`,
}

// Widget renders configured instances through a shared renderer.
type Widget struct {
	renderer *display.Renderer
	layout   Layout
}

// New creates a Widget that wraps its output in layout.
func New(r *display.Renderer, layout Layout) *Widget {
	return &Widget{renderer: r, layout: layout}
}

// Render produces the widget markup for cfg. The URL is sanitized again on
// read, so configurations written by other tools are handled the same way.
func (w *Widget) Render(ctx context.Context, cfg Config) string {
	var b strings.Builder
	b.WriteString(w.layout.BeforeWidget)
	if cfg.Title != "" {
		b.WriteString(w.layout.BeforeTitle)
		b.WriteString(html.EscapeString(cfg.Title))
		b.WriteString(w.layout.AfterTitle)
	}
	b.WriteString(w.renderer.RenderURL(ctx, SanitizeURL(cfg.GitHubURL)))
	b.WriteString(w.layout.AfterWidget)
	return b.String()
}

var formTemplate = template.Must(template.New("form").Parse(`<p>
  <label for="{{.TitleID}}">Title:</label>
  <input class="widefat" id="{{.TitleID}}" name="title" type="text" value="{{.Title}}">
</p>
<p>
  <label for="{{.URLID}}">GitHub URL:</label>
  <input class="widefat" id="{{.URLID}}" name="github_url" type="text" value="{{.URL}}" placeholder="https://github.com/username">
</p>
`))

type formData struct {
	TitleID, URLID string
	Title, URL     string
}

// Form renders the settings form for instance id. An empty title is shown
// as [DefaultTitle].
func (w *Widget) Form(id string, cfg Config) (string, error) {
	title := cfg.Title
	if title == "" {
		title = DefaultTitle
	}
	data := formData{
		TitleID: fieldID(id, "title"),
		URLID:   fieldID(id, "github_url"),
		Title:   title,
		URL:     SanitizeURL(cfg.GitHubURL),
	}

	var b strings.Builder
	if err := formTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func fieldID(instance, field string) string {
	return "widget-" + ID + "-" + instance + "-" + field
}
