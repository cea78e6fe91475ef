// Package remove реализует HTTP-обработчик удаления учётной записи из пула.
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
	credsvc "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/services/credential"
)

// Service описывает интерфейс бизнес-логики удаления учётной записи.
type Service interface {
	Remove(ctx context.Context, id string) error
}

// Handler управляет HTTP-запросами на удаление учётных записей.
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
// @Summary Удалить учётную запись
// @Description Удаляет учётную запись из пула. Клиенты перераспределяются по оставшимся при следующем обращении.
// @Tags Credentials
// @Produce  json
// @Param id path string true "Идентификатор учётной записи"
// @Success 200 {object} map[string]any "Учётная запись удалена"
// @Failure 404 {object} response.ErrorResponse "Учётная запись не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /credentials/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.credential.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	err := h.service.Remove(r.Context(), id)
	if errors.Is(err, credsvc.ErrCredentialNotFound) {
		log.Error("credential not found", slog.String("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("credential not found"))
		return
	}
	if err != nil {
		log.Error("failed to remove credential", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove credential"))
		return
	}

	log.Info("credential removed", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
