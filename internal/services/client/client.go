// Package services содержит бизнес-логику управления клиентами.
package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lifecycle"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
)

// ErrClientNotFound возвращается, когда операция не нашла клиента.
var ErrClientNotFound = errors.New("client not found")

// Статусные фильтры списка клиентов.
const (
	StatusAll      = "all"
	StatusActive   = "active"
	StatusExpiring = "expiring"
	StatusDebtor   = "debtor"
	StatusTrash    = "trash"
)

// Repository определяет методы для работы с клиентами в хранилище.
type Repository interface {
	// SaveClient вставляет или обновляет клиента по номеру телефона.
	SaveClient(ctx context.Context, client models.Client) (string, error)
	// ListClients возвращает всех клиентов, включая удалённых.
	ListClients(ctx context.Context) ([]models.Client, error)
	// GetClientByPhone возвращает клиента по номеру телефона.
	GetClientByPhone(ctx context.Context, phoneNumber string) (*models.Client, error)
	// SetClientDeleted помечает клиента удалённым или восстанавливает его.
	SetClientDeleted(ctx context.Context, phoneNumber string, deleted bool) (int, error)
	// PurgeClient безвозвратно удаляет клиента.
	PurgeClient(ctx context.Context, phoneNumber string) (int, error)
	// UpdateClientPreferences обновляет имя и оформление клиента.
	UpdateClientPreferences(ctx context.Context, phoneNumber string, prefs models.DummyPreferences) (int, error)
}

// SnapshotInvalidator сбрасывает кешированный снимок ядра после изменения данных.
type SnapshotInvalidator interface {
	InvalidateSnapshot()
}

// ClientService реализует бизнес-логику работы с клиентами.
type ClientService struct {
	repo      Repository
	snapshots SnapshotInvalidator
	log       *slog.Logger
}

// NewClientService создает новый экземпляр ClientService.
func NewClientService(repo Repository, snapshots SnapshotInvalidator, log *slog.Logger) *ClientService {
	return &ClientService{
		repo:      repo,
		snapshots: snapshots,
		log:       log,
	}
}

// Save создает или обновляет клиента и возвращает его ID.
// Номер телефона служит естественным ключом: повторная запись с тем же
// номером обновляет существующего клиента.
func (s *ClientService) Save(ctx context.Context, req models.DummyClient) (string, error) {
	client := models.Client{
		ID:                 uuid.NewString(),
		PhoneNumber:        strings.TrimSpace(req.PhoneNumber),
		Name:               req.Name,
		Subscriptions:      req.Subscriptions,
		DurationMonths:     req.DurationMonths,
		PurchaseDate:       req.PurchaseDate,
		Overrides:          req.Overrides,
		IsDebtor:           req.IsDebtor,
		OverrideExpiration: req.OverrideExpiration,
	}

	id, err := s.repo.SaveClient(ctx, client)
	if err != nil {
		return "", err
	}
	s.log.Info("saved client", slog.String("id", id))
	s.snapshots.InvalidateSnapshot()
	return id, nil
}

// List возвращает клиентов с необязательными фильтрами: по вхождению
// ключа сервиса в подписки и по статусу. Фильтр trash показывает только
// удалённых, остальные статусы удалённых исключают.
func (s *ClientService) List(ctx context.Context, service, status string) ([]models.Client, error) {
	clients, err := s.repo.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	key := strings.ToLower(strings.TrimSpace(service))
	result := make([]models.Client, 0, len(clients))
	for _, c := range clients {
		if !matchStatus(c, status, now) {
			continue
		}
		if key != "" && !hasService(c, key) {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func matchStatus(c models.Client, status string, now time.Time) bool {
	switch status {
	case StatusTrash:
		return c.Deleted
	case StatusDebtor:
		return !c.Deleted && c.IsDebtor
	case StatusActive:
		if c.Deleted {
			return false
		}
		for _, raw := range c.ValidSubscriptions() {
			st := lifecycle.EvaluateByTokenDate(c, raw, now)
			if st.Blocked() || st.Expired() {
				return false
			}
		}
		return true
	case StatusExpiring:
		if c.Deleted {
			return false
		}
		for _, raw := range c.ValidSubscriptions() {
			if lifecycle.EvaluateByTokenDate(c, raw, now).State == lifecycle.StateExpiringSoon {
				return true
			}
		}
		return false
	default:
		return !c.Deleted
	}
}

func hasService(c models.Client, key string) bool {
	for _, raw := range c.ValidSubscriptions() {
		if strings.Contains(strings.ToLower(raw), key) {
			return true
		}
	}
	return false
}

// Get возвращает клиента по номеру телефона.
func (s *ClientService) Get(ctx context.Context, phoneNumber string) (*models.Client, error) {
	client, err := s.repo.GetClientByPhone(ctx, phoneNumber)
	if err != nil {
		return nil, ErrClientNotFound
	}
	return client, nil
}

// Remove помечает клиента удалённым. Удаление мягкое: клиент выпадает из
// ранжирования, но остаётся в базе и может быть восстановлен.
func (s *ClientService) Remove(ctx context.Context, phoneNumber string) error {
	return s.setDeleted(ctx, phoneNumber, true)
}

// Restore снимает пометку удаления с клиента.
func (s *ClientService) Restore(ctx context.Context, phoneNumber string) error {
	return s.setDeleted(ctx, phoneNumber, false)
}

func (s *ClientService) setDeleted(ctx context.Context, phoneNumber string, deleted bool) error {
	count, err := s.repo.SetClientDeleted(ctx, phoneNumber, deleted)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrClientNotFound
	}
	s.snapshots.InvalidateSnapshot()
	return nil
}

// Purge безвозвратно удаляет клиента из базы.
func (s *ClientService) Purge(ctx context.Context, phoneNumber string) error {
	count, err := s.repo.PurgeClient(ctx, phoneNumber)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrClientNotFound
	}
	s.log.Info("purged client", slog.String("phone_number", phoneNumber))
	s.snapshots.InvalidateSnapshot()
	return nil
}

// UpdatePreferences обновляет имя и оформление клиента. Поля со значением
// nil остаются без изменений.
func (s *ClientService) UpdatePreferences(ctx context.Context, phoneNumber string, prefs models.DummyPreferences) error {
	count, err := s.repo.UpdateClientPreferences(ctx, phoneNumber, prefs)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrClientNotFound
	}
	s.snapshots.InvalidateSnapshot()
	return nil
}
