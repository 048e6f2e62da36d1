package tasks

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/desertthunder/soundgram/internal/formatter"
	"github.com/desertthunder/soundgram/internal/services"
	"github.com/desertthunder/soundgram/internal/shared"
)

const (
	defaultWorkers = 4
	maxWorkers     = 10
	manifestName   = "export_manifest.json"
)

// BulkExportOpts contains configuration for bulk playlist exports.
type BulkExportOpts struct {
	Format     string // json, text, markdown or csv
	OutputDir  string // Base output directory (default: soundgram_export_{epoch})
	NumWorkers int    // Concurrent workers (default: 4, capped at 10)
	Pretty     bool   // Indent JSON output
}

// PlaylistExportResult is the outcome for one URL.
type PlaylistExportResult struct {
	Index   int    `json:"index"`
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Tracks  int    `json:"tracks"`
	File    string `json:"file,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BulkExportResult summarizes a bulk export. Results keep the order of the input URLs.
type BulkExportResult struct {
	TotalPlaylists    int                    `json:"total_playlists"`
	SuccessfulExports int                    `json:"successful_exports"`
	FailedExports     int                    `json:"failed_exports"`
	OutputDirectory   string                 `json:"output_directory"`
	ManifestPath      string                 `json:"-"`
	Results           []PlaylistExportResult `json:"results"`
}

type exportJob struct {
	index int
	url   string
}

// BulkExport resolves every URL concurrently and writes one file per playlist into opts.OutputDir.
//
// Individual failures are recorded in the result and the manifest; the returned error is reserved
// for problems with the export as a whole (bad format, unwritable directory, manifest failure).
func (e *Exporter) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	urls []string,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: at least one playlist URL", shared.ErrMissingArgument)
	}

	ext, err := formatter.Extension(opts.Format)
	if err != nil {
		return nil, err
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("soundgram_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkers
	}
	if opts.NumWorkers > maxWorkers {
		opts.NumWorkers = maxWorkers
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalPlaylists:  len(urls),
		OutputDirectory: opts.OutputDir,
		Results:         make([]PlaylistExportResult, 0, len(urls)),
	}

	jobs := make(chan exportJob, len(urls))
	results := make(chan PlaylistExportResult, len(urls))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts, ext)
	}

	e.sendProgress(prog, resolvingUpdate(len(urls), opts.NumWorkers))
	for i, u := range urls {
		jobs <- exportJob{index: i, url: u}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(urls), res))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(urls), res))
		}
	}

	slices.SortFunc(result.Results, func(a, b PlaylistExportResult) int {
		return cmp.Compare(a.Index, b.Index)
	})

	manifestPath := filepath.Join(opts.OutputDir, manifestName)
	e.sendProgress(prog, manifestUpdate(manifestPath))
	if err := writeManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	e.logger.Info("bulk export finished",
		"dir", opts.OutputDir, "ok", result.SuccessfulExports, "failed", result.FailedExports)
	return result, nil
}

// exportWorker drains the jobs channel until it closes. Jobs left after cancellation fail fast.
func (e *Exporter) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan exportJob,
	results chan<- PlaylistExportResult,
	opts BulkExportOpts,
	ext string,
) {
	defer wg.Done()

	for job := range jobs {
		if err := ctx.Err(); err != nil {
			results <- PlaylistExportResult{Index: job.index, URL: job.url, Error: err.Error()}
			continue
		}
		results <- e.exportSinglePlaylist(ctx, job, opts, ext)
	}
}

func (e *Exporter) exportSinglePlaylist(ctx context.Context, j exportJob, opts BulkExportOpts, ext string) PlaylistExportResult {
	result := PlaylistExportResult{Index: j.index, URL: j.url}

	summary, err := e.playlists.Resolve(ctx, j.url)
	if err != nil {
		e.logger.Warn("playlist export failed", "url", j.url, "error", err)
		result.Error = err.Error()
		return result
	}
	result.Title = summary.Title
	result.Tracks = len(summary.Tracks)

	path := filepath.Join(opts.OutputDir, exportFileName(j, ext))
	if err := formatter.WriteExport(summary, opts.Format, path, opts.Pretty); err != nil {
		result.Error = err.Error()
		return result
	}

	result.File = path
	result.Success = true
	return result
}

// exportFileName builds a stable name from the input position and playlist identifiers.
func exportFileName(j exportJob, ext string) string {
	stem := "playlist"
	if req, err := services.ParseURL(j.url); err == nil {
		stem = req.Kind
		if req.Legacy {
			stem = req.Owner + "_" + req.Kind
		}
	}
	return fmt.Sprintf("%03d_%s.%s", j.index+1, stem, ext)
}

func writeManifest(result *BulkExportResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
