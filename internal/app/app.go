// Package app assembles the storage, processing and service layers from configuration.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/Fauli/screenshot-organizer/internal/backup"
	"github.com/Fauli/screenshot-organizer/internal/config"
	"github.com/Fauli/screenshot-organizer/internal/extractor"
	"github.com/Fauli/screenshot-organizer/internal/llm"
	"github.com/Fauli/screenshot-organizer/internal/ocr"
	"github.com/Fauli/screenshot-organizer/internal/orchestrator"
	"github.com/Fauli/screenshot-organizer/internal/scanner"
	"github.com/Fauli/screenshot-organizer/internal/service"
	"github.com/Fauli/screenshot-organizer/internal/storage"
)

// App holds the wired components shared by the server and the CLI.
type App struct {
	DB       *sql.DB
	Notifier *storage.Notifier

	Items    *storage.ItemRepo
	Essences *storage.EssenceRepo
	Search   *storage.SearchRepo
	Prefs    *storage.PrefsRepo

	Processor *orchestrator.Processor
	Scans     *service.ScanService

	ItemService        *service.ItemService
	SearchService      *service.SearchService
	InsightsService    *service.InsightsService
	PreferencesService *service.PreferencesService
	Backup             *backup.Service

	cfg     *config.Config
	closers []io.Closer
}

// Option configures New.
type Option func(*options)

type options struct {
	httpClient *http.Client
	closers    []io.Closer
}

// WithHTTPClient replaces the HTTP client used for cloud extraction.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithCloser registers c to be closed with the App, after the database.
func WithCloser(c io.Closer) Option {
	return func(o *options) {
		o.closers = append(o.closers, c)
	}
}

// New opens the database, applies migrations and wires every component.
// engine performs text recognition for the processing pipeline.
func New(cfg *config.Config, engine ocr.Engine, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	notify := storage.NewNotifier()
	a := &App{
		DB:       db,
		Notifier: notify,
		Items:    storage.NewItemRepo(db, notify),
		Essences: storage.NewEssenceRepo(db, notify),
		Search:   storage.NewSearchRepo(db, notify),
		Prefs:    storage.NewPrefsRepo(db, notify),
		cfg:      cfg,
		closers:  o.closers,
	}

	selector := extractor.NewSelector(extractor.NewHeuristic(), cloudFactory(cfg, o.httpClient))
	a.Processor = orchestrator.New(a.Items, a.Essences, a.Search, ocr.NewService(engine), selector)
	a.Scans = service.NewScanService(scanner.New(a.Items), a.Prefs, cfg.ScreenshotDir)

	a.ItemService = service.NewItemService(a.Items, a.Essences, a.Prefs, a.Processor)
	a.SearchService = service.NewSearchService(a.Search, a.Prefs)
	a.InsightsService = service.NewInsightsService(storage.NewInsightsRepo(db), a.Prefs)
	a.PreferencesService = service.NewPreferencesService(a.Prefs, a.Processor)
	a.Backup = backup.NewService(a.Items, a.Essences, a.Search)

	return a, nil
}

// cloudFactory builds vision clients per API key. All of them share one
// limiter so the request budget holds across key changes.
func cloudFactory(cfg *config.Config, hc *http.Client) extractor.CloudFactory {
	limiter := llm.NewLimiter(cfg.OpenAIRequestsPerMinute)
	return func(apiKey string) extractor.Extractor {
		return extractor.NewCloud(newVisionClient(cfg, apiKey, limiter, hc), cfg.OpenAIModel)
	}
}

func newVisionClient(cfg *config.Config, apiKey string, limiter *rate.Limiter, hc *http.Client) *llm.Client {
	opts := []llm.Option{llm.WithLimiter(limiter)}
	if hc != nil {
		opts = append(opts, llm.WithHTTPClient(hc))
	}
	return llm.NewClient(cfg.OpenAIBaseURL, apiKey, cfg.OpenAIModel, opts...)
}

// Pipeline returns a scan and processing pipeline. With a nil queue only the
// synchronous operations are usable.
func (a *App) Pipeline(queue service.JobQueue) *service.Pipeline {
	return service.NewPipeline(a.Scans, a.Processor, a.Prefs, queue, a.cfg.BatchSize)
}

// Seed applies the configured API key and auto-process flag to unset preferences.
func (a *App) Seed(ctx context.Context) error {
	return a.PreferencesService.Seed(ctx, a.cfg.OpenAIAPIKey, a.cfg.AutoProcess)
}

// Close releases the database and every registered closer.
func (a *App) Close() error {
	var errs []error
	if err := a.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database: %w", err))
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
