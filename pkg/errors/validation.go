package errors

import (
	"net/url"
	"regexp"
	"strings"
)

// widgetIDPattern matches IDs that are safe as file names and store keys.
var widgetIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateWidgetID validates a widget instance ID. IDs double as file names
// in the file-backed settings store, so anything that could escape the
// store directory is rejected.
func ValidateWidgetID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "widget id cannot be empty")
	}
	if !widgetIDPattern.MatchString(id) {
		return New(ErrCodeInvalidID, "invalid widget id %q: use 1-64 letters, digits, '-' or '_'", id)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https) and a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidURL, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidURL, "URL must use http or https scheme")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidURL, err, "parse URL")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidURL, "URL must include a host")
	}
	return nil
}
