// Package purge реализует HTTP-обработчик безвозвратного удаления клиента.
package purge

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/response"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/sl"
	clientsvc "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/services/client"
)

// Service описывает интерфейс бизнес-логики безвозвратного удаления клиента.
type Service interface {
	Purge(ctx context.Context, phoneNumber string) error
}

// Handler управляет HTTP-запросами на безвозвратное удаление клиентов.
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
// @Summary Безвозвратно удалить клиента
// @Description Удаляет клиента из базы без возможности восстановления.
// @Tags Clients
// @Produce  json
// @Param phone path string true "Номер телефона клиента"
// @Success 200 {object} map[string]any "Клиент удалён"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /clients/{phone}/purge [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.purge"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	phoneNumber := chi.URLParam(r, "phone")
	err := h.service.Purge(r.Context(), phoneNumber)
	if errors.Is(err, clientsvc.ErrClientNotFound) {
		log.Error("client not found", slog.String("phone_number", phoneNumber))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("client not found"))
		return
	}
	if err != nil {
		log.Error("failed to purge client", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not purge client"))
		return
	}

	log.Info("client purged", slog.String("phone_number", phoneNumber))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"phone_number": phoneNumber,
		"purged":       true,
	}))
}
