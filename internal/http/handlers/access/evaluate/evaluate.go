// Package evaluate реализует HTTP-обработчик выдачи доступа клиенту.
//
// Обработчик оценивает все подписки клиента по номеру телефона: временное
// состояние каждой, назначенную учётную запись и решение о раскрытии её
// содержимого. Заблокированные подписки возвращаются без логина и пароля.
package evaluate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/response"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/sl"
	accesssvc "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/services/access"
)

var evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "eudorama_access_evaluations_total",
	Help: "Number of client access evaluations by outcome.",
}, []string{"outcome"})

// Service описывает интерфейс бизнес-логики выдачи доступа.
type Service interface {
	EvaluateClient(ctx context.Context, phoneNumber string) (*accesssvc.ClientAccess, error)
}

// Handler обрабатывает HTTP-запросы на оценку доступа клиента.
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
// @Summary Оценить доступ клиента
// @Description Возвращает решения по всем подпискам клиента: состояние, назначенную учётную запись и её содержимое, если подписка не заблокирована.
// @Tags Access
// @Produce  json
// @Param phone path string true "Номер телефона клиента"
// @Success 200 {object} map[string]any "Решения по подпискам"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /clients/{phone}/access [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.access.evaluate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	phoneNumber := chi.URLParam(r, "phone")
	if phoneNumber == "" {
		log.Error("phone number is empty")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("phone number is required"))
		return
	}

	result, err := h.service.EvaluateClient(r.Context(), phoneNumber)
	if errors.Is(err, accesssvc.ErrClientNotFound) {
		evaluationsTotal.WithLabelValues("not_found").Inc()
		log.Error("client not found", slog.String("phone_number", phoneNumber))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("client not found"))
		return
	}
	if err != nil {
		evaluationsTotal.WithLabelValues("error").Inc()
		log.Error("failed to evaluate client access", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not evaluate client access"))
		return
	}
	evaluationsTotal.WithLabelValues("ok").Inc()

	log.Info("client access evaluated",
		slog.String("phone_number", phoneNumber),
		slog.Int("decisions", len(result.Decisions)))
	render.JSON(w, r, response.OKWithData(result))
}
