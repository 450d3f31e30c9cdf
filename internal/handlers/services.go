package handlers

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_services.go -package=mocks github.com/Fauli/screenshot-organizer/internal/handlers ItemService,SearchService,InsightsService,PreferencesService,PipelineService,BackupService,Pinger,EventSource

import (
	"context"
	"io"

	"github.com/Fauli/screenshot-organizer/internal/backup"
	"github.com/Fauli/screenshot-organizer/internal/orchestrator"
	"github.com/Fauli/screenshot-organizer/internal/service"
	"github.com/Fauli/screenshot-organizer/internal/storage"
)

// ItemService is the catalog browsing and per-item action surface.
type ItemService interface {
	List(ctx context.Context, params service.ListParams) ([]storage.Item, error)
	Get(ctx context.Context, id string) (service.ItemDetail, error)
	SetSolved(ctx context.Context, id string, solved bool) error
	Reprocess(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	ResetAll(ctx context.Context) (int, error)
	ResetStuck(ctx context.Context) (int, error)
}

// SearchService runs full-text searches.
type SearchService interface {
	Search(ctx context.Context, params service.SearchParams) ([]storage.Item, error)
}

// InsightsService computes catalog aggregates.
type InsightsService interface {
	Get(ctx context.Context, includeSolved *bool) (service.Insights, error)
}

// PreferencesService reads and updates preferences.
type PreferencesService interface {
	Get(ctx context.Context) (storage.Preferences, error)
	Update(ctx context.Context, u service.PreferencesUpdate) (storage.Preferences, error)
}

// PipelineService queues scans and processing.
type PipelineService interface {
	RequestScan(thenProcess bool) bool
	RequestProcess(batchSize int) bool
	Progress(ctx context.Context) (orchestrator.Progress, error)
	Activity() service.Activity
}

// BackupService exports and imports the catalog.
type BackupService interface {
	Export(ctx context.Context, w io.Writer) (int, error)
	Import(ctx context.Context, r io.Reader) (backup.Result, error)
}

// Pinger checks database connectivity.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// EventSource streams store changes.
type EventSource interface {
	Subscribe(buffer int) (<-chan storage.Change, func())
}
