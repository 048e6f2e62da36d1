package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/desertthunder/soundgram/internal/models"
	"github.com/desertthunder/soundgram/internal/shared"
)

type mockResolver struct {
	summaries map[string]*models.PlaylistSummary
	calls     atomic.Int32
}

func (m *mockResolver) Resolve(ctx context.Context, rawURL string) (*models.PlaylistSummary, error) {
	m.calls.Add(1)
	if s, ok := m.summaries[rawURL]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("failed to fetch playlist %s: %w", rawURL, shared.ErrUpstreamNotFound)
}

func playlistURLs(n int) ([]string, *mockResolver) {
	resolver := &mockResolver{summaries: map[string]*models.PlaylistSummary{}}
	urls := make([]string, n)
	for i := range n {
		u := fmt.Sprintf("https://music.yandex.ru/users/dj/playlists/%d", i+1)
		urls[i] = u
		resolver.summaries[u] = &models.PlaylistSummary{
			Title: fmt.Sprintf("Playlist %d", i+1),
			Owner: "dj",
			Tracks: []models.Track{
				{Title: "Song 1", Artists: []string{"Artist 1"}, EmbedMarkup: "<iframe></iframe>"},
				{Title: "Song 2", Artists: []string{"Artist 2"}, EmbedMarkup: "<iframe></iframe>"},
			},
		}
	}
	return urls, resolver
}

func drain(ch chan ProgressUpdate) {
	go func() {
		for range ch {
		}
	}()
}

func TestBulkExport_SuccessfulExport(t *testing.T) {
	tests := []struct {
		name          string
		format        string
		playlistCount int
		wantFile      string
		wantPrefix    string
	}{
		{name: "single playlist json export", format: "json", playlistCount: 1, wantFile: "001_dj_1.json", wantPrefix: "{"},
		{name: "multiple playlists csv export", format: "csv", playlistCount: 3, wantFile: "003_dj_3.csv", wantPrefix: "Position,Title"},
		{name: "text export", format: "text", playlistCount: 2, wantFile: "002_dj_2.txt", wantPrefix: ""},
		{name: "markdown export", format: "markdown", playlistCount: 1, wantFile: "001_dj_1.md", wantPrefix: "# Playlist 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			urls, resolver := playlistURLs(tt.playlistCount)

			progressCh := make(chan ProgressUpdate, 100)
			drain(progressCh)
			defer close(progressCh)

			result, err := NewExporter(resolver, nil).BulkExport(context.Background(), progressCh, urls, BulkExportOpts{
				Format:     tt.format,
				OutputDir:  tempDir,
				NumWorkers: 2,
			})
			if err != nil {
				t.Fatalf("BulkExport failed: %v", err)
			}

			if result.SuccessfulExports != tt.playlistCount || result.FailedExports != 0 {
				t.Errorf("expected %d successes and 0 failures, got %d/%d",
					tt.playlistCount, result.SuccessfulExports, result.FailedExports)
			}

			content, err := os.ReadFile(filepath.Join(tempDir, tt.wantFile))
			if err != nil {
				t.Fatalf("expected export file %s: %v", tt.wantFile, err)
			}
			if !strings.HasPrefix(string(content), tt.wantPrefix) {
				t.Errorf("unexpected content in %s: %s", tt.wantFile, content)
			}

			if _, err := os.Stat(result.ManifestPath); err != nil {
				t.Errorf("expected manifest at %s: %v", result.ManifestPath, err)
			}
		})
	}
}

func TestBulkExport_PartialFailures(t *testing.T) {
	tempDir := t.TempDir()
	urls, resolver := playlistURLs(2)
	urls = append([]string{"https://music.yandex.ru/playlists/missing"}, urls...)

	result, err := NewExporter(resolver, nil).BulkExport(context.Background(), nil, urls, BulkExportOpts{
		Format:    "json",
		OutputDir: tempDir,
	})
	if err != nil {
		t.Fatalf("BulkExport failed: %v", err)
	}

	if result.SuccessfulExports != 2 || result.FailedExports != 1 {
		t.Errorf("expected 2 successes and 1 failure, got %d/%d", result.SuccessfulExports, result.FailedExports)
	}

	t.Run("results keep input order", func(t *testing.T) {
		for i, res := range result.Results {
			if res.Index != i || res.URL != urls[i] {
				t.Errorf("result %d: got index %d url %s", i, res.Index, res.URL)
			}
		}
		if result.Results[0].Success || !strings.Contains(result.Results[0].Error, "not found") {
			t.Errorf("expected first result to carry the upstream error, got %+v", result.Results[0])
		}
	})

	t.Run("manifest records failures", func(t *testing.T) {
		data, err := os.ReadFile(result.ManifestPath)
		if err != nil {
			t.Fatalf("failed to read manifest: %v", err)
		}

		var manifest BulkExportResult
		if err := json.Unmarshal(data, &manifest); err != nil {
			t.Fatalf("manifest is not valid JSON: %v", err)
		}
		if manifest.FailedExports != 1 || len(manifest.Results) != 3 {
			t.Errorf("unexpected manifest: %+v", manifest)
		}
		if manifest.Results[0].File != "" {
			t.Errorf("failed export should have no file, got %s", manifest.Results[0].File)
		}
	})
}

func TestBulkExport_ContextCancellation(t *testing.T) {
	urls, resolver := playlistURLs(5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewExporter(resolver, nil).BulkExport(ctx, nil, urls, BulkExportOpts{
		Format:    "json",
		OutputDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("BulkExport failed: %v", err)
	}

	if result.FailedExports != 5 {
		t.Errorf("expected every export to fail, got %d failures", result.FailedExports)
	}
	if resolver.calls.Load() != 0 {
		t.Errorf("expected no resolver calls after cancellation, got %d", resolver.calls.Load())
	}
}

func TestBulkExport_DefaultOptions(t *testing.T) {
	t.Chdir(t.TempDir())
	urls, resolver := playlistURLs(1)

	result, err := NewExporter(resolver, nil).BulkExport(context.Background(), nil, urls, BulkExportOpts{})
	if err != nil {
		t.Fatalf("BulkExport failed: %v", err)
	}

	if !strings.HasPrefix(result.OutputDirectory, "soundgram_export_") {
		t.Errorf("expected default output directory, got %s", result.OutputDirectory)
	}
	if !strings.HasSuffix(result.Results[0].File, ".json") {
		t.Errorf("expected json by default, got %s", result.Results[0].File)
	}
}

func TestBulkExport_InvalidInput(t *testing.T) {
	_, resolver := playlistURLs(0)
	exporter := NewExporter(resolver, nil)

	t.Run("no urls", func(t *testing.T) {
		_, err := exporter.BulkExport(context.Background(), nil, nil, BulkExportOpts{OutputDir: t.TempDir()})
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := exporter.BulkExport(context.Background(), nil, []string{"x"}, BulkExportOpts{Format: "xml", OutputDir: t.TempDir()})
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("unwritable output directory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(file, nil, 0644); err != nil {
			t.Fatal(err)
		}
		_, err := exporter.BulkExport(context.Background(), nil, []string{"x"}, BulkExportOpts{OutputDir: filepath.Join(file, "sub")})
		if err == nil {
			t.Error("expected error when output directory cannot be created")
		}
	})
}

func TestBulkExport_ProgressUpdates(t *testing.T) {
	urls, resolver := playlistURLs(3)
	progressCh := make(chan ProgressUpdate, 100)

	_, err := NewExporter(resolver, nil).BulkExport(context.Background(), progressCh, urls, BulkExportOpts{
		OutputDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("BulkExport failed: %v", err)
	}
	close(progressCh)

	phases := map[Phase]int{}
	for update := range progressCh {
		phases[update.Phase]++
		if update.Phase.String() == "" {
			t.Errorf("unnamed phase %d", update.Phase)
		}
	}

	if phases[ResolvePlaylists] != 1 || phases[ExportPlaylist] != 3 || phases[WriteManifest] != 1 {
		t.Errorf("unexpected progress phases: %v", phases)
	}
}

func TestSendProgress(t *testing.T) {
	exporter := NewExporter(nil, nil)

	t.Run("nil channel", func(t *testing.T) {
		exporter.sendProgress(nil, ProgressUpdate{})
	})

	t.Run("full channel does not block", func(t *testing.T) {
		ch := make(chan ProgressUpdate, 1)
		exporter.sendProgress(ch, ProgressUpdate{Message: "first"})
		exporter.sendProgress(ch, ProgressUpdate{Message: "second"})
		if got := <-ch; got.Message != "first" {
			t.Errorf("expected first update to be kept, got %s", got.Message)
		}
	})
}

func TestExportFileName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://music.yandex.ru/users/dj.one/playlists/3", "001_dj.one_3.csv"},
		{"https://music.yandex.ru/playlists/lk.abc", "001_playlist.csv"},
		{"https://music.yandex.by/playlists/pl-7", "001_pl-7.csv"},
	}

	for _, tt := range tests {
		if got := exportFileName(exportJob{url: tt.url}, "csv"); got != tt.want {
			t.Errorf("exportFileName(%s) = %s, want %s", tt.url, got, tt.want)
		}
	}
}
