package tasks

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/soundgram/internal/models"
	"github.com/desertthunder/soundgram/internal/shared"
)

// Resolver turns a public playlist URL into its normalized summary.
type Resolver interface {
	Resolve(ctx context.Context, rawURL string) (*models.PlaylistSummary, error)
}

// Exporter runs playlist exports against a [Resolver].
type Exporter struct {
	playlists Resolver
	logger    *log.Logger
}

// NewExporter creates an Exporter.
func NewExporter(playlists Resolver, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Exporter{playlists: playlists, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Exporter) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
