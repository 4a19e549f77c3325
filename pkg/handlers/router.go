package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/chris/daily-prize-pools/pkg/api"
	"github.com/chris/daily-prize-pools/pkg/handlers/respond"
	"github.com/chris/daily-prize-pools/pkg/middleware"
)

// NewRouter mounts the API together with health and metrics endpoints. A nil gatherer
// leaves /metrics unmounted.
func NewRouter(si api.ServerInterface, logger zerolog.Logger, gatherer prometheus.Gatherer) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewStructuredLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	api.HandlerWithOptions(si, api.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: respond.ParamError,
	})
	return r
}
