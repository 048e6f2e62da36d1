package server

import (
	"context"
	_ "embed"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/soundgram/internal/models"
)

//go:embed static/openapi.json
var openAPISpec []byte

//go:embed static/docs.html
var docsPage []byte

// PlaylistResolver turns a public playlist URL into its summary.
type PlaylistResolver interface {
	Resolve(ctx context.Context, rawURL string) (*models.PlaylistSummary, error)
}

// PlaylistHandler serves GET /api/v1/playlist?url=...
type PlaylistHandler struct {
	playlists PlaylistResolver
	logger    *log.Logger
}

// NewPlaylistHandler creates a handler backed by the given resolver.
func NewPlaylistHandler(playlists PlaylistResolver, logger *log.Logger) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists, logger: logger}
}

func (h *PlaylistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeDetail(w, r, http.StatusBadRequest, detailMissingURL)
		return
	}

	summary, err := h.playlists.Resolve(r.Context(), rawURL)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, r, http.StatusOK, summary)
}

// Health reports a fixed healthy status.
func Health() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, models.HealthStatus{Status: "healthy"})
	})
}

// RedirectToDocs sends the root path to the documentation page.
func RedirectToDocs() http.Handler {
	return http.RedirectHandler("/docs", http.StatusTemporaryRedirect)
}

// NotFound answers unknown routes with a JSON detail.
func NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, r, http.StatusNotFound, detailRouteAbsent)
	})
}

// DocsHandler serves the interactive documentation and the OpenAPI document behind it.
type DocsHandler struct{}

// Routes returns the HTTP routes this handler serves.
func (DocsHandler) Routes() []string {
	return []string{"/docs", "/openapi.json"}
}

func (DocsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet)
		writeDetail(w, r, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	switch r.URL.Path {
	case "/openapi.json":
		w.Header().Set("Content-Type", "application/json")
		w.Write(openAPISpec)
	default:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(docsPage)
	}
}
