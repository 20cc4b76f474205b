package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dompetku/dompetku/internal/forecast"
	"github.com/dompetku/dompetku/internal/goals"
	"github.com/dompetku/dompetku/internal/ledger"
	"github.com/dompetku/dompetku/internal/observability"
	"github.com/dompetku/dompetku/internal/profile"
	"github.com/dompetku/dompetku/internal/stats"
	"github.com/dompetku/dompetku/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	ForecastHandler *forecast.Handler
	LedgerHandler   *ledger.Handler
	StatsHandler    *stats.Handler
	GoalsHandler    *goals.Handler
	ProfileHandler  *profile.Handler
	JobHandler      *jobs.Handler
	Metrics         *observability.Metrics
}

// NewRouter constructs the chi.Router with engine defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/forecast", params.ForecastHandler.MountRoutes)
	r.Route("/records", params.LedgerHandler.MountRoutes)
	r.Route("/stats", params.StatsHandler.MountRoutes)
	r.Route("/goals", params.GoalsHandler.MountRoutes)
	r.Route("/profile", params.ProfileHandler.MountRoutes)
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
