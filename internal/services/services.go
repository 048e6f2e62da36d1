// package services fetches and normalizes provider playlists
package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/soundgram/internal/models"
	"github.com/desertthunder/soundgram/internal/shared"
)

// Fetcher retrieves the raw playlist document for a parsed request.
type Fetcher interface {
	// Fetch performs a single upstream request and returns the JSON body.
	Fetch(ctx context.Context, req models.PlaylistRequest) (json.RawMessage, error)

	// Name returns the name of the provider (e.g., "Yandex Music")
	Name() string
}

// PlaylistService composes the URL parser, a [Fetcher] and the normalizer.
type PlaylistService struct {
	fetcher Fetcher
	logger  *log.Logger
}

// NewPlaylistService creates a PlaylistService. A nil logger falls back to [shared.NewLogger].
func NewPlaylistService(fetcher Fetcher, logger *log.Logger) *PlaylistService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &PlaylistService{fetcher: fetcher, logger: logger}
}

// Resolve parses rawURL, fetches the playlist and returns its normalized summary.
func (s *PlaylistService) Resolve(ctx context.Context, rawURL string) (*models.PlaylistSummary, error) {
	req, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("fetching playlist", "provider", s.fetcher.Name(), "owner", req.Owner, "kind", req.Kind, "legacy", req.Legacy)

	payload, err := s.fetcher.Fetch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist %s: %w", req.Kind, err)
	}

	summary := Summarize(payload)
	s.logger.Debug("normalized playlist", "kind", req.Kind, "title", summary.Title, "tracks", len(summary.Tracks))

	return &summary, nil
}
