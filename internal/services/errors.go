package services

import (
	"fmt"
	"net/http"

	"github.com/desertthunder/soundgram/internal/shared"
)

// StatusError reports a non-2xx upstream response.
//
// It unwraps to [shared.ErrUpstreamNotFound] for 404 and to [shared.ErrUpstream] otherwise.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e == nil {
		return "upstream status error"
	}
	return fmt.Sprintf("upstream returned HTTP %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return shared.ErrUpstreamNotFound
	}
	return shared.ErrUpstream
}
