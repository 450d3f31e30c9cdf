package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	nethttp "net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Fauli/screenshot-organizer/internal/app"
	"github.com/Fauli/screenshot-organizer/internal/config"
	"github.com/Fauli/screenshot-organizer/internal/http"
	"github.com/Fauli/screenshot-organizer/internal/jobs"
	"github.com/Fauli/screenshot-organizer/internal/ocr/tesseract"
	"github.com/Fauli/screenshot-organizer/internal/watcher"
)

const shutdownTimeout = 15 * time.Second

//go:embed web/index.html
var indexHTML string

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	engine, err := tesseract.New(strings.Split(cfg.OCRLanguage, "+")...)
	if err != nil {
		log.Fatalf("Failed to initialize OCR engine: %v", err)
	}

	a, err := app.New(cfg, engine, app.WithCloser(engine))
	if err != nil {
		_ = engine.Close()
		log.Fatalf("Failed to initialize application: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	runErr := run(cfg, a)
	if err := a.Close(); err != nil {
		slog.Error("Failed to close resources", "error", err)
	}
	if runErr != nil {
		slog.Error("Server stopped with error", "error", runErr)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func run(cfg *config.Config, a *app.App) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Seed(ctx); err != nil {
		return fmt.Errorf("failed to seed preferences: %w", err)
	}

	queue := jobs.New(ctx)
	defer queue.Close()

	pipeline := a.Pipeline(queue)
	if err := pipeline.Startup(ctx); err != nil {
		return fmt.Errorf("failed to recover pipeline: %w", err)
	}
	if cfg.ScanInterval > 0 {
		queue.Schedule(ctx, cfg.ScanInterval, pipeline.PeriodicJob())
		slog.Info("Periodic scan scheduled", "interval", cfg.ScanInterval)
	}

	router := http.NewRouter(&http.Deps{
		Items:       a.ItemService,
		Search:      a.SearchService,
		Insights:    a.InsightsService,
		Preferences: a.PreferencesService,
		Pipeline:    pipeline,
		Backup:      a.Backup,
		DB:          a.DB,
		Events:      a.Notifier,
		Folder:      a.Scans.Folder,
		IndexHTML:   indexHTML,
	})
	srv := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Event streams end when the process is asked to stop.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Starting API server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return fmt.Errorf("API server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("Shutting down API server")
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.WatchFolder {
		changes, unsubscribe := a.Notifier.Subscribe(16)
		w := watcher.New(func(ctx context.Context) {
			prefs, err := a.PreferencesService.Get(ctx)
			if err != nil {
				slog.WarnContext(ctx, "Failed to load preferences for watch scan", "error", err)
			}
			pipeline.RequestScan(err == nil && prefs.AutoProcessOnStartup)
		})
		g.Go(func() error {
			defer unsubscribe()
			return w.Follow(gctx, a.Scans.Folder, changes)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if n := queue.CancelAll(); n > 0 {
		slog.Info("Dropped pending jobs", "jobs", n)
	}
	return nil
}
