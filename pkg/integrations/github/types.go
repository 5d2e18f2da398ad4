package github

// Repository is a public repository as returned by GET /users/{user}/repos.
// Only the fields the renderer displays are decoded.
type Repository struct {
	Name        string `json:"name"`
	Description string `json:"description"` // null in the API when unset
	HTMLURL     string `json:"html_url"`
	Stars       int    `json:"stargazers_count"`
	UpdatedAt   string `json:"updated_at"` // raw ISO-8601 string, e.g. "2024-01-31T09:15:00Z"
}
