// Package services содержит планировщик уведомлений: периодический обход
// клиентов и публикацию событий об истекающих подписках в очередь.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/sl"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lifecycle"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/rabbitmq"
)

// ClientRepository определяет методы чтения клиентов для обхода.
type ClientRepository interface {
	ListClients(ctx context.Context) ([]models.Client, error)
}

// SchedulerService периодически сканирует подписки и публикует уведомления.
type SchedulerService struct {
	repo ClientRepository
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo ClientRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
	}
}

// FindExpiringSubscriptions запускает обход сразу и далее по тикеру,
// пока контекст не отменён.
func (s *SchedulerService) FindExpiringSubscriptions(ctx context.Context, channel *amqp.Channel, interval time.Duration) {
	s.runFindExpiringSubscriptions(ctx, channel)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runFindExpiringSubscriptions(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

func (s *SchedulerService) runFindExpiringSubscriptions(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting scan for expiring subscriptions")
	clients, err := s.repo.ListClients(ctx)
	if err != nil {
		s.log.Error("failed to list clients", sl.Err(err))
		return
	}

	now := time.Now()
	notices := collectExpiryNotices(clients, now)
	if len(notices) == 0 {
		s.log.Info("no expiring subscriptions found")
		return
	}
	s.log.Info("found expiring subscriptions", "count", len(notices))

	for _, notice := range notices {
		err = rabbitmq.PublishMessage(channel, "notifications", "expiry", notice)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}

// collectExpiryNotices собирает уведомления по подпискам в состояниях
// expiring_soon и grace. Заблокированные не уведомляются: клиент уже
// потерял доступ, отправлять предупреждение поздно.
func collectExpiryNotices(clients []models.Client, now time.Time) []models.ExpiryNotice {
	var notices []models.ExpiryNotice
	for _, c := range clients {
		if c.Deleted {
			continue
		}
		for _, raw := range c.ValidSubscriptions() {
			status := lifecycle.Evaluate(c, raw, now)
			if status.State != lifecycle.StateExpiringSoon && status.State != lifecycle.StateGrace {
				continue
			}
			notices = append(notices, models.ExpiryNotice{
				PhoneNumber:   c.PhoneNumber,
				Name:          c.Name,
				Service:       status.Service,
				ExpiryDate:    status.ExpiryDate,
				DaysRemaining: status.DaysRemaining,
				State:         status.State.String(),
			})
		}
	}
	return notices
}
