// package server contains the router, middleware and handlers of the playlist HTTP API
package server

import (
	"net/http"
)

// Middleware decorates every request passing through a route.
type Middleware func(http.Handler) http.Handler

// Handler is an [http.Handler] that owns several fixed paths, like the documentation pages.
type Handler interface {
	http.Handler
	Routes() []string
}

// Router registers routes behind a shared middleware stack.
type Router interface {
	Use(middleware ...Middleware)
	Handle(method, path string, handler http.Handler)
	Handler(handler Handler)
	Fallback(handler http.Handler)
	http.Handler
}

var _ Router = (*BasicRouter)(nil)
