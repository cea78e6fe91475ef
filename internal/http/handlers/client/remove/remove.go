// Package remove реализует HTTP-обработчик мягкого удаления клиента.
//
// Клиент помечается удалённым и выпадает из ранжирования, но остаётся
// в базе и может быть восстановлен.
package remove

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

// Service описывает интерфейс бизнес-логики удаления клиента.
type Service interface {
	Remove(ctx context.Context, phoneNumber string) error
}

// Handler управляет HTTP-запросами на мягкое удаление клиентов.
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
// @Summary Удалить клиента
// @Description Помечает клиента удалённым. Клиент выпадает из распределения, но может быть восстановлен.
// @Tags Clients
// @Produce  json
// @Param phone path string true "Номер телефона клиента"
// @Success 200 {object} map[string]any "Клиент помечен удалённым"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /clients/{phone} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	phoneNumber := chi.URLParam(r, "phone")
	err := h.service.Remove(r.Context(), phoneNumber)
	if errors.Is(err, clientsvc.ErrClientNotFound) {
		log.Error("client not found", slog.String("phone_number", phoneNumber))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("client not found"))
		return
	}
	if err != nil {
		log.Error("failed to remove client", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove client"))
		return
	}

	log.Info("client removed", slog.String("phone_number", phoneNumber))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"phone_number": phoneNumber,
		"deleted":      true,
	}))
}
