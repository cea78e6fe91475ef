// Package usage реализует HTTP-обработчик отчёта о загрузке пула:
// число клиентов на каждой учётной записи.
package usage

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/response"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики отчёта о загрузке.
type Service interface {
	UsageReport(ctx context.Context, service string) (map[string]int, error)
}

// Handler управляет HTTP-запросами на получение отчёта о загрузке пула.
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
// @Summary Загрузка пула учётных записей
// @Description Возвращает число назначенных клиентов по каждой учётной записи указанного сервиса.
// @Tags Credentials
// @Produce  json
// @Param service query string true "Ключ сервиса"
// @Success 200 {object} map[string]any "Число клиентов по учётным записям"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /credentials/usage [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.credential.usage"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	service := r.URL.Query().Get("service")

	usage, err := h.service.UsageReport(r.Context(), service)
	if err != nil {
		log.Error("failed to build usage report", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build usage report"))
		return
	}

	log.Info("usage report built", slog.String("service", service), slog.Int("credentials", len(usage)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"service": service,
		"usage":   usage,
	}))
}
