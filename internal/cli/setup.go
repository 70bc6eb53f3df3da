package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sdejongh/vidupe/internal/platform"
	"github.com/sdejongh/vidupe/pkg/config"
	"github.com/sdejongh/vidupe/pkg/detect"
	"github.com/sdejongh/vidupe/pkg/logging"
	"github.com/sdejongh/vidupe/pkg/models"
	"github.com/sdejongh/vidupe/pkg/output"
	"github.com/sdejongh/vidupe/pkg/scanner"
	"github.com/sdejongh/vidupe/pkg/storage"
	"github.com/sdejongh/vidupe/pkg/tags"
)

// env is what every command needs once flags and config are resolved
type env struct {
	cfg     *config.Config
	logger  logging.Logger
	backend storage.Backend
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cfg *config.Config, sf *scanFlags) {
	if globalFlags.Output != "" {
		cfg.Output.Format = globalFlags.Output
	}
	if globalFlags.LogFile != "" {
		cfg.Logging.File = globalFlags.LogFile
	}
	if globalFlags.LogFormat != "" {
		cfg.Logging.Format = globalFlags.LogFormat
	}
	if globalFlags.LogLevel != "" {
		cfg.Logging.Level = globalFlags.LogLevel
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}

	// Verbose mode logs everything
	if globalFlags.Verbose && globalFlags.LogLevel == "" {
		cfg.Logging.Level = "debug"
	}

	if sf == nil {
		return
	}
	if len(sf.Exclude) > 0 {
		cfg.Scan.Exclude = sf.Exclude
	}
	if len(sf.Extensions) > 0 {
		cfg.Scan.VideoExtensions = sf.Extensions
	}
	if sf.Parallel > 0 {
		cfg.Scan.MaxWorkers = sf.Parallel
	}
}

// setup loads config, applies flags, validates and opens the logger
func setup(sf *scanFlags) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	applyFlagsToConfig(cfg, sf)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := createLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &env{cfg: cfg, logger: logger, backend: storage.NewLocal()}, nil
}

func (e *env) Close() {
	e.backend.Close()
	e.logger.Close()
}

// createLogger creates a logger based on configuration
func createLogger(cfg config.LoggingConfig) (logging.Logger, error) {
	// If no log file specified, return null logger
	if cfg.File == "" {
		return logging.NewNullLogger(), nil
	}

	// Parse log format
	var format logging.Format
	switch cfg.Format {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:       cfg.File,
		Format:     format,
		Level:      logging.ParseLevel(cfg.Level),
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
	})
}

func (e *env) scanner() *scanner.Scanner {
	return scanner.New(e.backend, e.logger, scanner.Options{
		Extensions: e.cfg.Scan.VideoExtensions,
		Exclude:    e.cfg.Scan.Exclude,
	})
}

func (e *env) formatter(w io.Writer) (output.Formatter, error) {
	return output.New(e.cfg.Output.Format, w)
}

func (e *env) tagStore(ctx context.Context) *tags.Store {
	path := e.cfg.Tags.File
	if path == "" {
		path = tags.DefaultPath()
	}
	return tags.Open(ctx, path, e.logger)
}

// withProgress runs fn with an engine whose progress events are drawn on
// stderr when enabled.
func (e *env) withProgress(fn func(*detect.Engine)) {
	opts := detect.Options{MaxWorkers: e.cfg.Scan.MaxWorkers}

	showProgress := e.cfg.Output.Progress && !e.cfg.Output.Quiet && e.cfg.Output.Format == "human"
	if !showProgress {
		fn(detect.NewEngine(e.scanner(), e.logger, opts))
		return
	}

	events := make(chan models.ProgressUpdate, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		output.NewProgressSink(os.Stderr).Consume(events)
	}()

	opts.Progress = events
	fn(detect.NewEngine(e.scanner(), e.logger, opts))
	close(events)
	<-done
}

// resolveRoots validates every user-supplied root and makes it absolute
func resolveRoots(paths []string) ([]string, error) {
	roots := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := platform.ResolvePath(p)
		if err != nil {
			return nil, err
		}
		roots = append(roots, abs)
	}
	return roots, nil
}

// writeReportFile writes the report to path with the configured format
func (e *env) writeReportFile(path string, render func(output.Formatter) error) error {
	if path == "" {
		return nil
	}
	if err := output.WriteReport(path, e.cfg.Output.Format, render); err != nil {
		return err
	}
	e.logger.Info(context.Background(), "Report written", logging.Fields{"path": path})
	return nil
}

// exitStatus leaves the process with the exit code of a non-successful scan
func exitStatus(e *env, status models.ScanStatus) {
	if code := status.ExitCode(); code != 0 {
		e.Close()
		os.Exit(code)
	}
}
