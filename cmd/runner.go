package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/soundgram/internal/formatter"
	"github.com/desertthunder/soundgram/internal/server"
	"github.com/desertthunder/soundgram/internal/services"
	"github.com/desertthunder/soundgram/internal/shared"
	"github.com/desertthunder/soundgram/internal/tasks"
	"github.com/desertthunder/soundgram/internal/ui"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	playlists  server.PlaylistResolver
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Playlists may be left nil; it is then built from Config on first use.
type RunnerOpts struct {
	Config     *shared.Config
	Playlists  server.PlaylistResolver
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		playlists:  opts.Playlists,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, playlistCommand, exportCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// configure loads an explicitly passed --config, applies the log level and builds the playlist service.
func (r *Runner) configure(cmd *cli.Command) error {
	if cmd.IsSet("config") {
		config, err := shared.LoadConfig(cmd.String("config"))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		r.config = config
		r.playlists = nil
	}

	if err := shared.ConfigureLogger(r.logger, r.config.Log); err != nil {
		return err
	}

	if r.playlists != nil {
		return nil
	}

	upstream, err := services.NewUpstreamConfig(r.config.Upstream)
	if err != nil {
		return err
	}
	r.playlists = services.NewPlaylistService(services.NewYandexService(upstream, r.httpClient), r.logger)

	return nil
}

// Serve runs the HTTP API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if err := r.configure(cmd); err != nil {
		return err
	}

	config := r.config.Server
	if cmd.IsSet("host") {
		config.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		config.Port = int(cmd.Int("port"))
	}
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("%w: port %d", shared.ErrInvalidFlag, config.Port)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(config, r.playlists, r.logger).ListenAndServe(ctx)
}

// Playlist resolves one playlist URL and prints or saves it.
func (r *Runner) Playlist(ctx context.Context, cmd *cli.Command) error {
	rawURL := cmd.StringArg("url")
	if rawURL == "" {
		return fmt.Errorf("%w: playlist URL", shared.ErrMissingArgument)
	}

	if err := r.configure(cmd); err != nil {
		return err
	}

	r.logger.Debug("resolving playlist", "url", rawURL)

	summary, err := r.playlists.Resolve(ctx, rawURL)
	if err != nil {
		return err
	}

	format := cmd.String("format")
	pretty := cmd.Bool("pretty")

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteExport(summary, format, path, pretty); err != nil {
			return err
		}
		r.logger.Info("playlist exported", "file", path, "tracks", len(summary.Tracks))
		return r.writePlain("%s\n", ui.Styles.Done("Playlist saved to "+path))
	}

	data, err := formatter.Render(summary, format, pretty)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Export resolves every URL argument and writes the results to a directory.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	urls := cmd.Args().Slice()
	if len(urls) == 0 {
		return fmt.Errorf("%w: at least one playlist URL", shared.ErrMissingArgument)
	}

	if err := r.configure(cmd); err != nil {
		return err
	}

	progress := make(chan tasks.ProgressUpdate, len(urls)+2)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := tasks.NewExporter(r.playlists, r.logger).BulkExport(ctx, progress, urls, tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("dir"),
		NumWorkers: int(cmd.Int("workers")),
		Pretty:     cmd.Bool("pretty"),
	})
	close(progress)
	<-done

	if err != nil {
		return err
	}

	line := fmt.Sprintf("Exported %d/%d playlists to %s (manifest: %s)",
		result.SuccessfulExports, result.TotalPlaylists, result.OutputDirectory, result.ManifestPath)
	if result.FailedExports > 0 {
		return r.writePlain("%s\n", ui.Styles.Failed(line))
	}
	return r.writePlain("%s\n", ui.Styles.Done(line))
}

// ConfigInit writes the example configuration.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	return r.writePlain("%s\n", ui.Styles.Done("Configuration written to "+path))
}

// ConfigShow prints the effective configuration as TOML.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.configure(cmd); err != nil {
		return err
	}
	if err := toml.NewEncoder(r.output).Encode(r.config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
