package server

import (
	"net/http"
	"slices"
	"strings"
)

// BasicRouter is a simple HTTP router implementing the [Router] interface.
//
// Paths are matched by [http.ServeMux]; methods are dispatched per path so a wrong method gets a JSON 405
// listing every method registered for that path.
type BasicRouter struct {
	mux         *http.ServeMux
	middlewares []Middleware
	routes      map[string]*methodTable
}

// methodTable dispatches one path by request method. GET handlers also answer HEAD.
type methodTable struct {
	handlers map[string]http.Handler
}

func (m *methodTable) allow() string {
	methods := make([]string, 0, len(m.handlers)+1)
	for method := range m.handlers {
		methods = append(methods, method)
	}
	if _, ok := m.handlers[http.MethodGet]; ok {
		if _, ok := m.handlers[http.MethodHead]; !ok {
			methods = append(methods, http.MethodHead)
		}
	}
	slices.Sort(methods)
	return strings.Join(methods, ", ")
}

func (m *methodTable) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h, ok := m.handlers[req.Method]
	if !ok && req.Method == http.MethodHead {
		h, ok = m.handlers[http.MethodGet]
	}
	if !ok {
		w.Header().Set("Allow", m.allow())
		writeDetail(w, req, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	h.ServeHTTP(w, req)
}

// NewBasicRouter creates a new [BasicRouter] instance.
func NewBasicRouter() *BasicRouter {
	return &BasicRouter{
		mux:    http.NewServeMux(),
		routes: map[string]*methodTable{},
	}
}

// Use adds [Middleware] to the stack. Only routes registered afterwards are wrapped.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers handler for method on path. Middleware runs before method dispatch, so 405s are logged too.
func (r *BasicRouter) Handle(method, path string, handler http.Handler) {
	table, ok := r.routes[path]
	if !ok {
		table = &methodTable{handlers: map[string]http.Handler{}}
		r.routes[path] = table
		r.mux.Handle(path, r.Apply(table))
	}
	table.handlers[strings.ToUpper(method)] = handler
}

// Handler registers a [Handler] on every path returned by [Handler.Routes]; it does its own method checks.
func (r *BasicRouter) Handler(handler Handler) {
	wrapped := r.Apply(handler)

	for _, route := range handler.Routes() {
		r.mux.Handle(route, wrapped)
	}
}

// Fallback serves every request no other route matched.
func (r *BasicRouter) Fallback(handler http.Handler) {
	r.mux.Handle("/", r.Apply(handler))
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Apply wraps a handler with all registered middleware, first added outermost.
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	wrapped := handler

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}

	return wrapped
}
