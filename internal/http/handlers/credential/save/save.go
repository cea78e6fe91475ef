// Package save реализует HTTP-обработчик создания или обновления
// учётной записи стримингового сервиса.
package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/response"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/sl"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
)

// Service описывает интерфейс бизнес-логики сохранения учётной записи.
type Service interface {
	Save(ctx context.Context, req models.DummyCredential) (string, error)
}

// Handler управляет HTTP-запросами на сохранение учётных записей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Сохранить учётную запись
// @Description Создаёт или обновляет учётную запись стримингового сервиса в пуле.
// @Tags Credentials
// @Accept  json
// @Produce  json
// @Param request body models.DummyCredential true "Данные учётной записи"
// @Success 200 {object} map[string]any "Идентификатор учётной записи"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /credentials [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.credential.save"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyCredential
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.Save(r.Context(), req)
	if err != nil {
		log.Error("failed to save credential", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save credential"))
		return
	}

	log.Info("credential saved", slog.String("id", id), slog.String("service", req.Service))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
