// Package display renders a GitHub user's repositories as an HTML list.
//
// A [Renderer] is the shared core behind both presentation adapters (the
// shortcode and the widget). It asks a [RepositoryProvider] for the
// repositories, orders them with [SortByUpdated] and emits:
//
//	<ul class="gh-repo-list">
//	  <li class="gh-repo-item">
//	    <a class="repo-link" href="..." target="_blank"><strong>name</strong></a>
//	    <p class="repo-desc">description</p>
//	    <div class="repo-meta">⭐ 42 | Updated: January 2, 2006</div>
//	  </li>
//	</ul>
//
// Whitespace above is for readability; the real output has none. Names,
// descriptions and URLs are escaped by html/template.
//
// Two fixed messages replace the list: [MsgInvalidURL] when no username can
// be extracted, and [MsgNoRepositories] when the user has no repositories or
// the fetch failed for any reason.
//
// The matching stylesheet is embedded and available from [Stylesheet].
package display
