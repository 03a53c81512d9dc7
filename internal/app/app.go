package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/peunion/internal/config"
	"github.com/specialistvlad/peunion/internal/ctxlog"
	"github.com/specialistvlad/peunion/internal/fsutil"
	"github.com/specialistvlad/peunion/internal/project"
	"github.com/specialistvlad/peunion/internal/report"
)

// ErrValidationFailed is returned by Validate when at least one project
// could not be loaded or has error issues. The report has been written by
// then.
var ErrValidationFailed = errors.New("validation failed")

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	files  fsutil.FileOracle
}

// Option customizes an App.
type Option func(*App)

// WithFiles replaces the file system used to validate projects.
func WithFiles(f fsutil.FileOracle) Option {
	return func(a *App) { a.files = f }
}

// NewApp is the constructor for the main application. Reports go to outW,
// logs go to logW.
func NewApp(outW, logW io.Writer, cfg *Config, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	a := &App{outW: outW, logger: logger, config: cfg}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) formatFor(path string) (config.Format, error) {
	return config.ForPath(path, config.Options{StrictEnums: a.config.StrictEnums, Files: a.files})
}

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.config.Command, "args", a.config.Args)

	var err error
	switch a.config.Command {
	case CommandValidate:
		err = a.Validate(ctx, a.config.Args...)
	case CommandConvert:
		err = a.Convert(ctx, a.config.Args[0], a.config.Args[1])
	case CommandNew:
		err = a.New(ctx, a.config.Args[0])
	default:
		err = fmt.Errorf("unknown command %q", a.config.Command)
	}

	a.logger.Debug("App.Run method finished.", "error", err)
	return err
}

// Validate loads every project found under paths and writes a report.
func (a *App) Validate(ctx context.Context, paths ...string) error {
	logger := ctxlog.FromContext(ctx)

	files, err := config.Discover(paths...)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no project files found in %v", paths)
	}
	logger.Debug("Discovered project files.", "count", len(files), "workers", a.config.WorkerCount)

	// Projects are independent, so each is loaded and validated on its own
	// goroutine; entries keep discovery order.
	entries := make([]report.Entry, len(files))
	workers := a.config.WorkerCount
	if workers <= 0 {
		workers = DefaultWorkerCount
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range files {
		g.Go(func() error {
			entries[i] = a.validateOne(ctx, path)
			return nil
		})
	}
	_ = g.Wait()

	if a.config.Output == OutputJSON {
		err = report.JSON(a.outW, entries)
	} else {
		err = report.Text(a.outW, entries)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	summary := report.Summarize(entries)
	logger.Info("Validation finished.", "files", summary.Files, "failed", summary.Failed, "errors", summary.Errors)
	if summary.Failed > 0 {
		return ErrValidationFailed
	}
	return nil
}

func (a *App) validateOne(ctx context.Context, path string) report.Entry {
	ctx = ctxlog.With(ctx, "path", path)
	logger := ctxlog.FromContext(ctx)

	format, err := a.formatFor(path)
	if err != nil {
		return report.Entry{Path: path, Err: err}
	}
	p, err := format.Load(ctx, path)
	if err != nil {
		logger.Debug("Project failed to load.", "error", err)
		return report.Entry{Path: path, Err: err}
	}
	result := p.Validation()
	logger.Debug("Project validated.", "errors", result.ErrorCount, "warnings", result.WarningCount, "messages", result.MessageCount)
	return report.Entry{Path: path, Title: p.DisplayTitle(), Result: &result}
}

// Convert loads in and writes it to out. The formats follow the extensions,
// so converting a document to a document rewrites it with paths relative to
// the new location.
func (a *App) Convert(ctx context.Context, in, out string) error {
	logger := ctxlog.FromContext(ctx)

	src, err := a.formatFor(in)
	if err != nil {
		return err
	}
	dst, err := a.formatFor(out)
	if err != nil {
		return err
	}

	p, err := src.Load(ctx, in)
	if err != nil {
		return err
	}
	if err := dst.Save(ctx, p, out); err != nil {
		return err
	}

	logger.Info("Project converted.", "from", in, "to", out, "items", p.Len())
	return nil
}

// New writes a project with default settings to out. Existing files are only
// replaced when Force is set.
func (a *App) New(ctx context.Context, out string) error {
	logger := ctxlog.FromContext(ctx)

	if _, err := os.Stat(out); err == nil && !a.config.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", out)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	dst, err := a.formatFor(out)
	if err != nil {
		return err
	}
	var popts []project.Option
	if a.files != nil {
		popts = append(popts, project.WithFileOracle(a.files))
	}
	p := project.New(popts...)
	if err := dst.Save(ctx, p, out); err != nil {
		return err
	}

	logger.Info("Project created.", "path", out, "format", dst.Name())
	return nil
}
