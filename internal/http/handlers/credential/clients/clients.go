// Package clients реализует HTTP-обработчик обратного поиска:
// какие клиенты назначены на конкретную учётную запись.
package clients

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
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
	accesssvc "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/services/access"
)

// Service описывает интерфейс бизнес-логики обратного поиска клиентов.
type Service interface {
	CredentialClients(ctx context.Context, credentialID string) ([]models.Client, error)
}

// Handler управляет HTTP-запросами на обратный поиск клиентов.
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
// @Summary Клиенты учётной записи
// @Description Возвращает список клиентов, назначенных на учётную запись по текущему распределению.
// @Tags Credentials
// @Produce  json
// @Param id path string true "Идентификатор учётной записи"
// @Success 200 {object} map[string]any "Список клиентов"
// @Failure 404 {object} response.ErrorResponse "Учётная запись не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /credentials/{id}/clients [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.credential.clients"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	result, err := h.service.CredentialClients(r.Context(), id)
	if errors.Is(err, accesssvc.ErrCredentialNotFound) {
		log.Error("credential not found", slog.String("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("credential not found"))
		return
	}
	if err != nil {
		log.Error("failed to find credential clients", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not find credential clients"))
		return
	}

	log.Info("credential clients found", slog.String("id", id), slog.Int("count", len(result)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id":      id,
		"clients": result,
		"count":   len(result),
	}))
}
