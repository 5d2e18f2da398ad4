// Package pkg provides the libraries behind ghrepos, a renderer for a GitHub
// user's public repositories as an HTML list.
//
// # Overview
//
// The pkg directory is organized into these areas:
//
//  1. [integrations] - HTTP client and the GitHub REST client
//  2. [display] - Sorting and HTML rendering of repository lists
//  3. [shortcode] - The [github_repos url="..."] content directive
//  4. [widget] - The sidebar widget: settings form, sanitization, rendering
//  5. [settings] - Widget settings stores (memory, file, Redis, MongoDB)
//  6. [errors] - Coded errors and input validation
//
// # Architecture
//
// Both presentation adapters share one rendering path:
//
//	profile URL
//	     ↓
//	github.ExtractUsername
//	     ↓
//	github.Client.FetchUserRepos (GET /users/{name}/repos)
//	     ↓
//	display.SortByUpdated
//	     ↓
//	display.Renderer.RenderList → HTML fragment
//
// Any failure along the way renders a fixed message instead of an error.
//
// # Quick Start
//
//	gh := github.NewClient(github.DefaultUserAgent)
//	r := display.New(gh)
//	html := r.RenderURL(ctx, "https://github.com/octocat")
//
// [integrations]: github.com/matzehuels/ghrepos/pkg/integrations
// [display]: github.com/matzehuels/ghrepos/pkg/display
// [shortcode]: github.com/matzehuels/ghrepos/pkg/shortcode
// [widget]: github.com/matzehuels/ghrepos/pkg/widget
// [settings]: github.com/matzehuels/ghrepos/pkg/settings
// [errors]: github.com/matzehuels/ghrepos/pkg/errors
package pkg
