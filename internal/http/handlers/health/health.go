// Package health содержит обработчики проверки живости и готовности сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/calorie-tracker/internal/http/response"
	"github.com/magabrotheeeer/calorie-tracker/internal/lib/sl"
)

// readyTimeout ограничивает проверку хранилища.
const readyTimeout = 2 * time.Second

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler отвечает на /healthz: процесс жив и обслуживает запросы.
type Handler struct {
	log *slog.Logger
}

// New создаёт обработчик живости.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.OK())
}

// ReadyHandler отвечает на /readyz: хранилище доступно.
type ReadyHandler struct {
	log     *slog.Logger
	storage Pinger
}

// NewReady создаёт обработчик готовности.
func NewReady(log *slog.Logger, storage Pinger) *ReadyHandler {
	return &ReadyHandler{
		log:     log,
		storage: storage,
	}
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health.Ready"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		log.Error("storage is not ready", sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("storage unavailable"))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(map[string]string{"storage": "up"}))
}
