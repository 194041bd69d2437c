// Package health отдаёт состояние сервиса и его зависимостей.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/nutriede/internal/http/response"
	"github.com/magabrotheeeer/nutriede/internal/lib/sl"
)

const pingTimeout = 2 * time.Second

// Pinger зависимость, доступность которой проверяется.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler обрабатывает GET /healthz.
type Handler struct {
	log  *slog.Logger
	deps map[string]Pinger
}

// New создает обработчик; deps сопоставляет имя зависимости с её проверкой.
func New(log *slog.Logger, deps map[string]Pinger) *Handler {
	return &Handler{
		log:  log,
		deps: deps,
	}
}

// ServeHTTP godoc
// @Summary Проверка состояния
// @Description Пингует PostgreSQL и Redis.
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response "Все зависимости доступны"
// @Failure 503 {object} response.Response "Хотя бы одна зависимость недоступна"
// @Router /healthz [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	status := make(map[string]string, len(h.deps))
	healthy := true
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			h.log.Warn("dependency is unavailable", slog.String("op", op), slog.String("dependency", name), sl.Err(err))
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	if !healthy {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.ErrorWithData("dependency unavailable", status))
		return
	}
	render.JSON(w, r, response.OKWithData(status))
}
