package widget

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	tagPattern        = regexp.MustCompile(`(?s)<[^>]*>`)
	octetPattern      = regexp.MustCompile(`%[a-fA-F0-9]{2}`)
	whitespacePattern = regexp.MustCompile(`[\r\n\t ]+`)

	// urlUnsafePattern matches characters that never appear in a stored URL.
	urlUnsafePattern = regexp.MustCompile(`[^a-zA-Z0-9\-~+_.?#=!&;,/:%@$|*'()\[\]\x{80}-\x{10FFFF}]`)
)

// allowedSchemes lists the URL schemes kept by [SanitizeURL].
var allowedSchemes = map[string]bool{
	"http":  true,
	"https": true,
}

// SanitizeText reduces s to a single line of plain text: tags, percent-encoded
// octets and line breaks are removed, runs of whitespace collapse to one
// space, and the result is trimmed. Invalid UTF-8 yields "".
func SanitizeText(s string) string {
	if !utf8.ValidString(s) {
		return ""
	}
	s = tagPattern.ReplaceAllString(s, "")
	s = octetPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SanitizeURL cleans a user-entered URL for storage. Unsafe characters are
// dropped, a missing scheme defaults to http, and anything that is not an
// absolute http(s) URL or a site-relative path yields "".
func SanitizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, " ", "%20")
	s = urlUnsafePattern.ReplaceAllString(s, "")
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, ";//", "://")

	if isRelative(s) {
		return s
	}
	if !strings.Contains(s, ":") || !hasScheme(s) {
		s = "http://" + s
	}

	u, err := url.Parse(s)
	if err != nil || !allowedSchemes[strings.ToLower(u.Scheme)] {
		return ""
	}
	return s
}

func isRelative(s string) bool {
	return strings.HasPrefix(s, "/") || strings.HasPrefix(s, "#") || strings.HasPrefix(s, "?")
}

// hasScheme reports whether s starts with "<scheme>:". A colon that follows
// a slash, dot-free host or port (e.g. "github.com:443/x") is not a scheme.
func hasScheme(s string) bool {
	i := strings.Index(s, ":")
	if i <= 0 {
		return false
	}
	scheme := s[:i]
	for j, r := range scheme {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case j > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-'):
		default:
			return false
		}
	}
	// "host:port" has digits after the colon rather than "//" or an opaque part.
	rest := s[i+1:]
	if rest != "" && rest[0] >= '0' && rest[0] <= '9' {
		return false
	}
	return true
}
