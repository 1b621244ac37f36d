// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/starford/muninn/internal/archive"
	"github.com/starford/muninn/internal/export"
	"github.com/starford/muninn/internal/menu"
	"github.com/starford/muninn/internal/noteservice"
	"github.com/starford/muninn/internal/storage"
)

// errSessionDone threads a clean session end through the errgroup.
var errSessionDone = errors.New("session done")

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{in: os.Stdin, out: os.Stdout}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Structured JSON logger. It writes to stderr (or the configured file)
	// because stdout belongs to the interactive menu.
	logSink := io.Writer(os.Stderr)
	if cfg.App.LogFile != "" {
		f, err := os.OpenFile(cfg.App.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logSink = f
	}
	logger := slog.New(slog.NewJSONHandler(logSink, &slog.HandlerOptions{
		Level: cfg.App.Level(),
	}))
	slog.SetDefault(logger)

	logger.Info("configuration loaded",
		slog.String("notes_dir", cfg.Notes.Dir),
		slog.String("backups_dir", cfg.Backups.Dir),
		slog.Int("retention_days", cfg.Backups.RetentionDays),
		slog.String("log_level", cfg.App.LogLevel))

	// The artifact directories must exist before the session starts. This is
	// the one failure that ends the program rather than a single operation.
	for _, dir := range []string{
		cfg.Notes.Dir,
		cfg.Backups.Dir,
		cfg.Exports.CSVDir,
		cfg.Exports.JSONDir,
		cfg.Exports.PDFDir,
		cfg.Trash.Dir,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}

	trash := storage.NewTrash(cfg.Trash.Dir, cfg.Trash.Platform)
	store, err := storage.NewFS(cfg.Notes.Dir, cfg.Notes.Extension, trash)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	notes := noteservice.New(store, cfg.Notes.Extension, logger)
	archiver := archive.New(store, cfg.Backups.Dir, logger)
	exporter := export.New(store, cfg.Exports.CSVDir, cfg.Exports.JSONDir, cfg.Exports.PDFDir, logger)
	m := menu.New(notes, archiver, exporter, cfg.Backups.RetentionDays, app.in, app.out)

	logger.Info("session starting")

	g, gCtx := errgroup.WithContext(ctx)

	// Drive the interactive session.
	g.Go(func() error {
		if err := m.Run(); err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		return errSessionDone
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("received shutdown signal", slog.String("signal", sig.String()))
			// Unblock the prompt so the menu goroutine can unwind.
			if app.in == os.Stdin {
				_ = os.Stdin.Close()
			}
			return errSessionDone
		case <-gCtx.Done():
			return nil
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errSessionDone) {
		logger.Error("application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("session ended")
	return nil
}
