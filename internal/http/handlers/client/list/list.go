// Package list реализует HTTP-обработчик списка клиентов с фильтрами.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/response"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/sl"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
)

// Service описывает интерфейс бизнес-логики списка клиентов.
type Service interface {
	List(ctx context.Context, service, status string) ([]models.Client, error)
}

// Handler управляет HTTP-запросами на получение списка клиентов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список клиентов
// @Description Возвращает клиентов с необязательными фильтрами: по ключу сервиса и по статусу (all, active, expiring, debtor, trash).
// @Tags Clients
// @Produce  json
// @Param service query string false "Фильтр по ключу сервиса"
// @Param status query string false "Статусный фильтр: all, active, expiring, debtor, trash"
// @Success 200 {object} map[string]any "Список клиентов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /clients [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	service := r.URL.Query().Get("service")
	status := r.URL.Query().Get("status")

	clients, err := h.service.List(r.Context(), service, status)
	if err != nil {
		log.Error("failed to list clients", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list clients"))
		return
	}

	log.Info("clients listed", slog.Int("count", len(clients)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"clients": clients,
		"count":   len(clients),
	}))
}
