package integrations

import (
	"errors"
	"net/http"
	"time"
)

// httpTimeout bounds every upstream request, including reading the body.
const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the upstream resource doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for transport failures and non-200 responses.
	ErrNetwork = errors.New("network error")

	// ErrDecode is returned when a response body is not the expected JSON shape.
	ErrDecode = errors.New("decode response")
)

// NewHTTPClient creates an HTTP client with the standard upstream timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}
