// Package preferences реализует HTTP-обработчик обновления настроек клиента:
// имени и оформления личного кабинета. Поля, отсутствующие в запросе,
// остаются без изменений.
package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/response"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/sl"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
	clientsvc "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/services/client"
)

// Service описывает интерфейс бизнес-логики обновления настроек.
type Service interface {
	UpdatePreferences(ctx context.Context, phoneNumber string, prefs models.DummyPreferences) error
}

// Handler управляет HTTP-запросами на обновление настроек клиента.
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
// @Summary Обновить настройки клиента
// @Description Обновляет имя и оформление кабинета клиента. Отсутствующие поля не меняются.
// @Tags Clients
// @Accept  json
// @Produce  json
// @Param phone path string true "Номер телефона клиента"
// @Param request body models.DummyPreferences true "Новые настройки"
// @Success 200 {object} map[string]any "Настройки обновлены"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /clients/{phone}/preferences [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.preferences"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	phoneNumber := chi.URLParam(r, "phone")

	var req models.DummyPreferences
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	err := h.service.UpdatePreferences(r.Context(), phoneNumber, req)
	if errors.Is(err, clientsvc.ErrClientNotFound) {
		log.Error("client not found", slog.String("phone_number", phoneNumber))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("client not found"))
		return
	}
	if err != nil {
		log.Error("failed to update preferences", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update preferences"))
		return
	}

	log.Info("preferences updated", slog.String("phone_number", phoneNumber))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"phone_number": phoneNumber,
	}))
}
