// Package services содержит бизнес-логику отчётов по выручке.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/revenue"
)

// Repository определяет методы чтения данных для отчётов.
type Repository interface {
	// ListClients возвращает всех клиентов, включая удалённых.
	ListClients(ctx context.Context) ([]models.Client, error)
}

// ReportService строит отчёты по выручке над текущими данными.
type ReportService struct {
	repo           Repository
	log            *slog.Logger
	prices         revenue.Prices
	analysisDays   int
	projectionDays int
}

// NewReportService создает новый экземпляр ReportService.
func NewReportService(repo Repository, log *slog.Logger, prices revenue.Prices, analysisDays, projectionDays int) *ReportService {
	return &ReportService{
		repo:           repo,
		log:            log,
		prices:         prices,
		analysisDays:   analysisDays,
		projectionDays: projectionDays,
	}
}

// RevenueReport строит проекцию выручки. Неположительные окна заменяются
// значениями из конфигурации.
func (s *ReportService) RevenueReport(ctx context.Context, analysisDays, projectionDays int) (*revenue.Report, error) {
	if analysisDays <= 0 {
		analysisDays = s.analysisDays
	}
	if projectionDays <= 0 {
		projectionDays = s.projectionDays
	}
	clients, err := s.repo.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	report := revenue.Project(clients, s.prices, analysisDays, projectionDays, time.Now())
	s.log.Info("built revenue report",
		slog.Int("active_clients", report.ActiveClientsCount),
		slog.Float64("total", report.TotalMonthlyRevenue))
	return &report, nil
}
