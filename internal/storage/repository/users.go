package repository

import (
	"context"
	"fmt"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
)

// RegisterAdmin сохраняет новую административную учётную запись.
func (s *Storage) RegisterAdmin(ctx context.Context, admin models.Admin) error {
	const op = "storage.RegisterAdmin"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO admins (username, email, password_hash, role)
			  VALUES ($1, $2, $3, $4)`
	if _, err := s.DB.ExecContext(ctx, query,
		admin.Username, admin.Email, admin.PasswordHash, admin.Role); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetAdminByUsername возвращает администратора по его username.
func (s *Storage) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	const op = "storage.GetAdminByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT username, email, password_hash, role
			  FROM admins
			  WHERE username = $1`
	a := &models.Admin{}
	row := s.DB.QueryRowContext(ctx, query, username)
	if err := row.Scan(&a.Username, &a.Email, &a.PasswordHash, &a.Role); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}
