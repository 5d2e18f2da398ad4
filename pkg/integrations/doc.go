// Package integrations provides the shared HTTP client for upstream APIs.
//
// # Overview
//
// Upstream clients live in subpackages:
//
//   - [github]: GitHub REST API (public repositories of a user)
//
// # Client Pattern
//
// [Client] wraps a *http.Client with a fixed 10 second timeout and a set of
// default headers. Each call is a single attempt. Failures are reported
// through sentinel errors so callers can decide how to degrade:
//
//   - [ErrNetwork]: transport failure or a non-200 status
//   - [ErrNotFound]: 404 from the upstream
//   - [ErrDecode]: body is not the expected JSON shape
//
// [github]: github.com/matzehuels/ghrepos/pkg/integrations/github
package integrations
