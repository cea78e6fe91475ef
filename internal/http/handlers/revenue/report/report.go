// Package report реализует HTTP-обработчик отчёта о выручке:
// текущая месячная выручка, прогноз и потери.
package report

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/revenue"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/response"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики отчёта о выручке.
type Service interface {
	RevenueReport(ctx context.Context, analysisDays, projectionDays int) (*revenue.Report, error)
}

// Handler управляет HTTP-запросами на получение отчёта о выручке.
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
// @Summary Отчёт о выручке
// @Description Возвращает месячную выручку по активным подпискам, прогноз продлений и детализацию по сервисам. Окна анализа и прогноза можно переопределить query-параметрами.
// @Tags Revenue
// @Produce  json
// @Param analysis_days query int false "Окно анализа в днях"
// @Param projection_days query int false "Окно прогноза в днях"
// @Success 200 {object} map[string]any "Отчёт о выручке"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /revenue [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.revenue.report"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	analysisDays, _ := strconv.Atoi(r.URL.Query().Get("analysis_days"))
	projectionDays, _ := strconv.Atoi(r.URL.Query().Get("projection_days"))

	result, err := h.service.RevenueReport(r.Context(), analysisDays, projectionDays)
	if err != nil {
		log.Error("failed to build revenue report", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build revenue report"))
		return
	}

	log.Info("revenue report built")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"report": result,
	}))
}
