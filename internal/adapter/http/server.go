package adapthttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/text/language"

	"nappu/internal/app"
	"nappu/internal/export"
	"nappu/internal/log"
)

// Server is the driving HTTP adapter that routes requests to the diary
// repository.
type Server struct {
	repo     *app.Repository
	exporter *export.Exporter
	loc      *time.Location
	lang     language.Tag
	now      func() time.Time
	logger   *log.Logger
	metrics  *metrics
}

// Option configures a Server.
type Option func(*Server)

// WithLocation sets the time zone used for calendar-day grouping.
func WithLocation(loc *time.Location) Option {
	return func(s *Server) { s.loc = loc }
}

// WithLanguage sets the language of weekday labels.
func WithLanguage(tag language.Tag) Option {
	return func(s *Server) { s.lang = tag }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates a Server over repo. exporter may be nil, which disables
// uploading exports.
func New(repo *app.Repository, exporter *export.Exporter, opts ...Option) *Server {
	s := &Server{
		repo:     repo,
		exporter: exporter,
		loc:      time.Local,
		lang:     language.SimplifiedChinese,
		now:      time.Now,
		logger:   log.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent(log.ComponentHTTP)
	s.metrics = newMetrics(repo)
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(s.metrics.middleware)
	r.Use(withNoCache)

	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		})

		api.Route("/babies", func(br chi.Router) {
			br.Get("/", s.handleListBabies)
			br.Post("/", s.handleCreateBaby)
			br.Get("/current", s.handleGetCurrentBaby)
			br.Put("/current", s.handleSetCurrentBaby)

			br.Route("/{babyID}", func(one chi.Router) {
				one.Get("/", s.handleGetBaby)
				one.Patch("/", s.handleUpdateBaby)
				one.Delete("/", s.handleDeleteBaby)

				one.Get("/feedings", s.handleListFeedings)
				one.Get("/feedings/last", s.handleLastFeeding)
				one.Get("/diapers", s.handleListDiapers)
				one.Get("/diapers/last", s.handleLastDiaper)
				one.Get("/stats", s.handleStats)
			})
		})

		api.Post("/feedings", s.handleCreateFeeding)
		api.Patch("/feedings/{id}", s.handleUpdateFeeding)
		api.Delete("/feedings/{id}", s.handleDeleteFeeding)

		api.Post("/diapers", s.handleCreateDiaper)
		api.Patch("/diapers/{id}", s.handleUpdateDiaper)
		api.Delete("/diapers/{id}", s.handleDeleteDiaper)

		api.Get("/export", s.handleExportDownload)
		api.Post("/export", s.handleExportUpload)

		api.Get("/settings", s.handleGetSettings)
		api.Put("/settings", s.handlePutSettings)
	})

	return r
}
