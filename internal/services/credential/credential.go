// Package services содержит бизнес-логику управления учётными записями сервисов.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/allocation"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lifecycle"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/pool"
)

// ErrCredentialNotFound возвращается, когда операция не нашла учётную запись.
var ErrCredentialNotFound = errors.New("credential not found")

// Repository определяет методы для работы с учётными записями в хранилище.
type Repository interface {
	// SaveCredential вставляет или обновляет учётную запись.
	SaveCredential(ctx context.Context, credential models.Credential) (string, error)
	// ListCredentials возвращает все учётные записи.
	ListCredentials(ctx context.Context) ([]models.Credential, error)
	// ListClients возвращает всех клиентов для подсчёта использования.
	ListClients(ctx context.Context) ([]models.Client, error)
	// RemoveCredential удаляет учётную запись по ID.
	RemoveCredential(ctx context.Context, id string) (int, error)
}

// SnapshotInvalidator сбрасывает кешированный снимок ядра после изменения данных.
type SnapshotInvalidator interface {
	InvalidateSnapshot()
}

// CredentialInfo — учётная запись с административной оценкой возраста
// и текущим числом клиентов на ней.
type CredentialInfo struct {
	models.Credential
	Health     pool.AdminHealth `json:"health"`
	UsageCount int              `json:"usage_count"`
}

// CredentialService реализует бизнес-логику работы с учётными записями.
type CredentialService struct {
	repo      Repository
	snapshots SnapshotInvalidator
	log       *slog.Logger
}

// NewCredentialService создает новый экземпляр CredentialService.
func NewCredentialService(repo Repository, snapshots SnapshotInvalidator, log *slog.Logger) *CredentialService {
	return &CredentialService{
		repo:      repo,
		snapshots: snapshots,
		log:       log,
	}
}

// Save создает или обновляет учётную запись и возвращает её ID.
// Пустая дата публикации трактуется как текущий момент, пустой ID —
// как создание новой записи.
func (s *CredentialService) Save(ctx context.Context, req models.DummyCredential) (string, error) {
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	publishedAt := time.Now()
	if req.PublishedAt != "" {
		publishedAt = lifecycle.ParseDate(req.PublishedAt, publishedAt)
	}

	isVisible := true
	if req.IsVisible != nil {
		isVisible = *req.IsVisible
	}

	credential := models.Credential{
		ID:          id,
		Service:     req.Service,
		Email:       req.Email,
		Password:    req.Password,
		PublishedAt: publishedAt,
		IsVisible:   isVisible,
	}

	savedID, err := s.repo.SaveCredential(ctx, credential)
	if err != nil {
		return "", err
	}
	s.log.Info("saved credential", slog.String("id", savedID), slog.String("service", req.Service))
	s.snapshots.InvalidateSnapshot()
	return savedID, nil
}

// List возвращает все учётные записи с оценкой возраста и числом клиентов.
func (s *CredentialService) List(ctx context.Context) ([]CredentialInfo, error) {
	credentials, err := s.repo.ListCredentials(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := s.repo.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := make([]CredentialInfo, 0, len(credentials))
	for _, cred := range credentials {
		usage := allocation.UsageCounts(cred.Service, clients, credentials)[cred.ID]
		result = append(result, CredentialInfo{
			Credential: cred,
			Health:     pool.AdminEvaluate(cred, now),
			UsageCount: usage,
		})
	}
	return result, nil
}

// Remove удаляет учётную запись. Клиенты, сидевшие на ней, при следующем
// вычислении перераспределяются на оставшиеся записи пула.
func (s *CredentialService) Remove(ctx context.Context, id string) error {
	count, err := s.repo.RemoveCredential(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrCredentialNotFound
	}
	s.log.Info("removed credential", slog.String("id", id))
	s.snapshots.InvalidateSnapshot()
	return nil
}
