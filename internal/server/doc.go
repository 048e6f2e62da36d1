// Package server exposes the playlist service over HTTP.
//
// # Routes
//
//	GET /                  → 307 redirect to /docs
//	GET /docs              → interactive documentation
//	GET /openapi.json      → OpenAPI document
//	GET /health            → {"status": "healthy"}
//	GET /api/v1/playlist   → playlist summary for the ?url= parameter
//
// Unknown paths answer 404 and wrong methods answer 405, both with a JSON detail.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
// [New] installs [RequestID], [Logger] and [Recoverer] on every route.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Error Mapping
//
// [StatusFor] is the single place errors become status codes:
//   - [shared.ErrInvalidURL] : 400
//   - [shared.ErrUpstreamNotFound] : 404
//   - [shared.ErrUpstream], [shared.ErrUpstreamUnreachable] : 502
//   - [shared.ErrUpstreamTimeout] : 504
//   - anything else : 500, logged but never described to the caller
package server
