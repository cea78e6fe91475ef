// Package list реализует HTTP-обработчик списка учётных записей
// с оценкой срока годности и числом назначенных клиентов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/response"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/sl"
	credsvc "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/services/credential"
)

// Service описывает интерфейс бизнес-логики списка учётных записей.
type Service interface {
	List(ctx context.Context) ([]credsvc.CredentialInfo, error)
}

// Handler управляет HTTP-запросами на получение списка учётных записей.
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
// @Summary Список учётных записей
// @Description Возвращает учётные записи пула со сроком годности и числом назначенных клиентов.
// @Tags Credentials
// @Produce  json
// @Success 200 {object} map[string]any "Список учётных записей"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /credentials [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.credential.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	credentials, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list credentials", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list credentials"))
		return
	}

	log.Info("credentials listed", slog.Int("count", len(credentials)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"credentials": credentials,
		"count":       len(credentials),
	}))
}
