package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Fauli/screenshot-organizer/internal/handlers"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Items       handlers.ItemService
	Search      handlers.SearchService
	Insights    handlers.InsightsService
	Preferences handlers.PreferencesService
	Pipeline    handlers.PipelineService
	Backup      handlers.BackupService
	DB          handlers.Pinger
	Events      handlers.EventSource
	Folder      handlers.FolderResolver
	IndexHTML   string // Embedded HTML content
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	items := handlers.NewItemsHandler(deps.Items)
	pipeline := handlers.NewPipelineHandler(deps.Pipeline)
	prefs := handlers.NewPreferencesHandler(deps.Preferences)
	backups := handlers.NewBackupHandler(deps.Backup)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.DB, deps.Folder))
		r.Method(http.MethodGet, "/events", handlers.NewEventsHandler(deps.Events))

		r.Post("/scan", pipeline.Scan)
		r.Post("/process", pipeline.Process)
		r.Get("/progress", pipeline.Progress)

		r.Route("/items", func(r chi.Router) {
			r.Get("/", items.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", items.Get)
				r.Delete("/", items.Delete)
				r.Method(http.MethodGet, "/card", handlers.NewCardHandler(deps.Items))
				r.Post("/solved", items.SetSolved)
				r.Post("/reprocess", items.Reprocess)
			})
		})
		r.Post("/reset", items.ResetAll)
		r.Post("/reset-stuck", items.ResetStuck)

		r.Method(http.MethodGet, "/search", handlers.NewSearchHandler(deps.Search))
		r.Method(http.MethodGet, "/insights", handlers.NewInsightsHandler(deps.Insights))

		r.Get("/preferences", prefs.Get)
		r.Put("/preferences", prefs.Update)

		r.Get("/backup", backups.Export)
		r.Post("/backup", backups.Import)
	})

	// Serve HTML page at root
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(deps.IndexHTML))
	})

	return r
}
