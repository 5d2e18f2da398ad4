// Package shortcode implements the [github_repos url="..."] content directive.
//
// [Handler.Render] expands a single directive from its attributes.
// [Handler.Expand] scans a block of content and replaces every directive in
// place, the way a host template engine would before publishing a page.
package shortcode

import (
	"context"
	"regexp"
	"strings"

	"github.com/matzehuels/ghrepos/pkg/display"
)

// Tag is the directive name recognised in content.
const Tag = "github_repos"

// defaults lists the accepted attributes and their values when omitted.
var defaults = map[string]string{
	"url": "",
}

// Handler expands github_repos directives using a shared renderer.
type Handler struct {
	renderer *display.Renderer
}

// New creates a Handler backed by r.
func New(r *display.Renderer) *Handler {
	return &Handler{renderer: r}
}

// Render expands one directive. Unknown attributes are ignored.
func (h *Handler) Render(ctx context.Context, attrs map[string]string) string {
	a := merge(attrs)
	return h.renderer.RenderURL(ctx, a["url"])
}

// merge fills in defaults and drops attributes the directive doesn't accept.
func merge(attrs map[string]string) map[string]string {
	out := make(map[string]string, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range attrs {
		k = strings.ToLower(k)
		if _, ok := defaults[k]; ok {
			out[k] = v
		}
	}
	return out
}

// directivePattern matches [github_repos ...], [github_repos .../] and the
// escaped form [[github_repos ...]]. Group 1 and 4 hold the extra brackets,
// group 3 the attribute text.
var directivePattern = regexp.MustCompile(`(\[?)\[` + Tag + `(\s+([^\]]*?))?\s*/?\](\]?)`)

// Expand replaces every directive in content with its rendered HTML.
// A directive wrapped in double brackets is emitted literally, minus the
// outer brackets.
func (h *Handler) Expand(ctx context.Context, content string) string {
	return directivePattern.ReplaceAllStringFunc(content, func(match string) string {
		m := directivePattern.FindStringSubmatch(match)
		if m[1] == "[" && m[4] == "]" {
			return match[1 : len(match)-1]
		}
		return m[1] + h.Render(ctx, ParseAttrs(m[3])) + m[4]
	})
}

// attrPattern matches name="value", name='value' and name=value pairs.
var attrPattern = regexp.MustCompile(`([\w-]+)\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s'"]+))`)

// ParseAttrs parses a directive's attribute text. Names are lower-cased;
// bare positional values are ignored.
func ParseAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	for _, idx := range attrPattern.FindAllStringSubmatchIndex(s, -1) {
		name := strings.ToLower(s[idx[2]:idx[3]])
		// The first value group that participated in the match holds the value.
		for g := 4; g < len(idx); g += 2 {
			if idx[g] >= 0 {
				attrs[name] = s[idx[g]:idx[g+1]]
				break
			}
		}
	}
	return attrs
}
