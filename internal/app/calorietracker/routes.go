package calorietracker

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/calorie-tracker/internal/http/handlers/health"
	"github.com/magabrotheeeer/calorie-tracker/internal/http/middlewarectx"
)

// Deps содержит обработчики и сервисы, из которых собираются маршруты.
type Deps struct {
	GraphQL http.Handler
	Auth    middlewarectx.Service
	Storage health.Pinger
	Metrics prometheus.Gatherer
	Timeout time.Duration
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Group(func(r chi.Router) {
		if deps.Timeout > 0 {
			r.Use(middleware.Timeout(deps.Timeout))
		}
		r.Use(middlewarectx.TokenMiddleware(deps.Auth, logger))
		r.Method(http.MethodPost, "/graphql", deps.GraphQL)
	})

	r.Get("/healthz", health.New(logger).ServeHTTP)
	r.Get("/readyz", health.NewReady(logger, deps.Storage).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
}
