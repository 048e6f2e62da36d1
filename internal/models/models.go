// package models defines the data model for the playlist service
package models

// PlaylistRequest describes which upstream endpoint to query for a playlist.
//
// Owner is set if and only if Legacy is true.
type PlaylistRequest struct {
	Owner  string
	Kind   string
	Legacy bool
}

// Track is a normalized track entry.
//
// CoverURL is nil when the upstream payload carries no cover template.
type Track struct {
	Title       string   `json:"title"`
	Artists     []string `json:"artists"`
	CoverURL    *string  `json:"cover_url"`
	EmbedMarkup string   `json:"iframe_code"`
}

// PlaylistSummary is the response returned for a resolved playlist.
type PlaylistSummary struct {
	Title  string  `json:"title"`
	Owner  string  `json:"owner"`
	Tracks []Track `json:"tracks"`
}

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthStatus is the body of the readiness endpoint.
type HealthStatus struct {
	Status string `json:"status"`
}
