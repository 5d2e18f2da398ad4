// Package github provides an HTTP client for the public GitHub REST API.
//
// # Overview
//
// This package lists a user's public repositories from
// https://api.github.com/users/{username}/repos and extracts usernames from
// profile URLs.
//
// # Usage
//
//	username := github.ExtractUsername("https://github.com/octocat")
//	if username == "" {
//	    return // not a GitHub profile URL
//	}
//
//	client := github.NewClient(github.DefaultUserAgent)
//	repos, err := client.FetchUserRepos(ctx, username)
//
// # Failure Model
//
// Requests carry a User-Agent header and time out after 10 seconds. There is
// no authentication, pagination, caching or retry; a failed request is
// reported once through the sentinel errors of the integrations package.
//
// # Username Extraction
//
// [ExtractUsername] matches github.com/<segment> anywhere in the input, where
// the segment is one or more word characters or hyphens.
package github
