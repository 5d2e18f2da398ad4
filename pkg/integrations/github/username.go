package github

import "regexp"

// profileURLPattern captures the first path segment after github.com.
// Segments are word characters or hyphens; anything else ends the match.
var profileURLPattern = regexp.MustCompile(`github\.com/([\w-]+)`)

// ExtractUsername returns the username from a GitHub profile URL, or "" if
// rawURL does not contain github.com/<segment>. The user's existence is not
// checked.
func ExtractUsername(rawURL string) string {
	m := profileURLPattern.FindStringSubmatch(rawURL)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}
