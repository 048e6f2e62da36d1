package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/soundgram/internal/models"
	"github.com/desertthunder/soundgram/internal/shared"
)

const (
	detailNotFound    = "playlist not found"
	detailUpstream    = "failed to fetch data from Yandex Music"
	detailTimeout     = "Yandex Music did not respond in time"
	detailInternal    = "internal server error"
	detailMissingURL  = "missing required query parameter: url"
	detailRouteAbsent = "Not Found"
)

// StatusFor maps an error onto the response status and the detail shown to the caller.
//
// Invalid URLs echo the parser message; everything else uses a fixed detail so internals do not leak.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, shared.ErrInvalidURL):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, shared.ErrUpstreamNotFound):
		return http.StatusNotFound, detailNotFound
	case errors.Is(err, shared.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout, detailTimeout
	case errors.Is(err, shared.ErrUpstream), errors.Is(err, shared.ErrUpstreamUnreachable):
		return http.StatusBadGateway, detailUpstream
	default:
		return http.StatusInternalServerError, detailInternal
	}
}

func writeError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	status, detail := StatusFor(err)

	l := shared.WithLogger(logger, "path", r.URL.Path, "status", status, "request_id", RequestIDFromContext(r.Context()))
	if status >= http.StatusInternalServerError {
		l.Error("request failed", "error", err)
	} else {
		l.Warn("request rejected", "error", err)
	}

	writeDetail(w, r, status, detail)
}

func writeDetail(w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeJSON(w, r, status, models.ErrorResponse{Detail: detail})
}

// writeJSON logs encode and write failures through the request logger; the status is already sent by then.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.FromContext(r.Context()).Error("failed to write response", "path", r.URL.Path, "status", status, "error", err)
	}
}
