package repository

import (
	"context"
	"fmt"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
)

// SaveCredential вставляет или обновляет учётную запись сервиса
// и возвращает её ID.
func (s *Storage) SaveCredential(ctx context.Context, credential models.Credential) (string, error) {
	const op = "storage.SaveCredential"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO credentials (id, service, email, password, published_at, is_visible)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (id) DO UPDATE
			  SET service = EXCLUDED.service,
			      email = EXCLUDED.email,
			      password = EXCLUDED.password,
			      published_at = EXCLUDED.published_at,
			      is_visible = EXCLUDED.is_visible
			  RETURNING id`
	var id string
	err := s.DB.QueryRowContext(ctx, query,
		credential.ID, credential.Service, credential.Email, credential.Password,
		credential.PublishedAt, credential.IsVisible).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ListCredentials возвращает все учётные записи сервисов.
func (s *Storage) ListCredentials(ctx context.Context) ([]models.Credential, error) {
	const op = "storage.ListCredentials"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, service, email, password, published_at, is_visible
			  FROM credentials
			  ORDER BY published_at`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Credential
	for rows.Next() {
		var item models.Credential
		if err := rows.Scan(&item.ID, &item.Service, &item.Email, &item.Password,
			&item.PublishedAt, &item.IsVisible); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveCredential удаляет учётную запись по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveCredential(ctx context.Context, id string) (int, error) {
	const op = "storage.RemoveCredential"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM credentials WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
