// Package models defines the request descriptor and response contract of the playlist service.
//
// [PlaylistRequest] is produced by the URL parser and consumed by the upstream client.
//
// [PlaylistSummary] and [Track] form the stable JSON contract returned to callers regardless of which
// upstream endpoint produced the data.
//
// [ErrorResponse] and [HealthStatus] are the remaining bodies the HTTP server writes.
package models
