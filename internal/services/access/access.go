// Package services содержит бизнес-логику выдачи доступа: снимок данных,
// оценку подписок клиента и производные отчёты по учётным записям.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/access"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/allocation"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lifecycle"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
)

// ErrClientNotFound возвращается, когда клиента нет в снимке или он удалён.
var ErrClientNotFound = errors.New("client not found")

// ErrCredentialNotFound возвращается при запросе несуществующей учётной записи.
var ErrCredentialNotFound = errors.New("credential not found")

// snapshotKey — ключ кеша для снимка входных данных ядра.
const snapshotKey = "snapshot:core"

// Repository определяет методы чтения данных для построения снимка.
type Repository interface {
	// ListClients возвращает всех клиентов, включая удалённых.
	ListClients(ctx context.Context) ([]models.Client, error)
	// ListCredentials возвращает все учётные записи сервисов.
	ListCredentials(ctx context.Context) ([]models.Credential, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// ClientAccess — полный результат оценки клиента: решения по каждой
// подписке и агрегированные флаги.
type ClientAccess struct {
	PhoneNumber string            `json:"phone_number"`
	Name        string            `json:"name,omitempty"`
	Decisions   []access.Decision `json:"decisions"`
	Summary     lifecycle.Summary `json:"summary"`
}

// AccessService реализует оценку доступа клиентов над единым снимком данных.
type AccessService struct {
	repo        Repository
	cache       Cache
	log         *slog.Logger
	limits      allocation.Limits
	snapshotTTL time.Duration
}

// NewAccessService создает новый экземпляр AccessService.
func NewAccessService(repo Repository, cache Cache, log *slog.Logger, limits allocation.Limits, snapshotTTL time.Duration) *AccessService {
	return &AccessService{
		repo:        repo,
		cache:       cache,
		log:         log,
		limits:      limits,
		snapshotTTL: snapshotTTL,
	}
}

// Snapshot возвращает снимок входных данных ядра: из кеша либо из
// хранилища с последующим кешированием. Одно вычисление всегда
// выполняется над одним снимком целиком.
func (s *AccessService) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	var snap models.Snapshot
	found, err := s.cache.Get(snapshotKey, &snap)
	if err != nil {
		s.log.Warn("failed to read snapshot from cache", slog.Any("err", err))
	}
	if found {
		return &snap, nil
	}

	clients, err := s.repo.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	credentials, err := s.repo.ListCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}
	snap = models.Snapshot{
		Clients:     clients,
		Credentials: credentials,
		TakenAt:     time.Now(),
	}

	if err := s.cache.Set(snapshotKey, snap, s.snapshotTTL); err != nil {
		s.log.Warn("failed to cache snapshot", slog.Any("err", err))
	}
	return &snap, nil
}

// InvalidateSnapshot сбрасывает кешированный снимок после изменения данных.
func (s *AccessService) InvalidateSnapshot() {
	if err := s.cache.Invalidate(snapshotKey); err != nil {
		s.log.Warn("failed to invalidate snapshot cache", slog.Any("err", err))
	}
}

// EvaluateClient оценивает все подписки клиента: временное состояние,
// назначение учётной записи и решение о выдаче её содержимого.
func (s *AccessService) EvaluateClient(ctx context.Context, phoneNumber string) (*ClientAccess, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var client *models.Client
	for i := range snap.Clients {
		if snap.Clients[i].PhoneNumber == phoneNumber {
			client = &snap.Clients[i]
			break
		}
	}
	if client == nil || client.Deleted {
		return nil, ErrClientNotFound
	}

	now := time.Now()
	tokens := client.ValidSubscriptions()
	decisions := make([]access.Decision, 0, len(tokens))
	for _, raw := range tokens {
		status := lifecycle.Evaluate(*client, raw, now)
		result := allocation.Assign(*client, raw, snap.Clients, snap.Credentials, s.limits, now)
		decisions = append(decisions, access.Resolve(status, result))
	}

	return &ClientAccess{
		PhoneNumber: client.PhoneNumber,
		Name:        client.Name,
		Decisions:   decisions,
		Summary:     access.Summarize(decisions),
	}, nil
}

// UsageReport возвращает число клиентов на каждой учётной записи пула сервиса.
func (s *AccessService) UsageReport(ctx context.Context, service string) (map[string]int, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return allocation.UsageCounts(service, snap.Clients, snap.Credentials), nil
}

// CredentialClients возвращает клиентов, попадающих на данную учётную запись.
func (s *AccessService) CredentialClients(ctx context.Context, credentialID string) ([]models.Client, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	for _, cred := range snap.Credentials {
		if cred.ID == credentialID {
			return allocation.ClientsOnCredential(cred, snap.Clients, snap.Credentials), nil
		}
	}
	return nil, ErrCredentialNotFound
}
