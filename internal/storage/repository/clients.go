package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/subtoken"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
)

// SaveClient вставляет или обновляет клиента по номеру телефона
// и возвращает его ID. Номер телефона глобально уникален.
func (s *Storage) SaveClient(ctx context.Context, client models.Client) (string, error) {
	const op = "storage.SaveClient"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	subscriptions, err := json.Marshal(client.Subscriptions)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	overrides, err := json.Marshal(client.Overrides)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO clients (id, phone_number, name, subscriptions, duration_months,
			      purchase_date, subscription_overrides, is_debtor, override_expiration,
			      deleted, theme_color, background_image, profile_image)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			  ON CONFLICT (phone_number) DO UPDATE
			  SET name = EXCLUDED.name,
			      subscriptions = EXCLUDED.subscriptions,
			      duration_months = EXCLUDED.duration_months,
			      purchase_date = EXCLUDED.purchase_date,
			      subscription_overrides = EXCLUDED.subscription_overrides,
			      is_debtor = EXCLUDED.is_debtor,
			      override_expiration = EXCLUDED.override_expiration,
			      deleted = EXCLUDED.deleted
			  RETURNING id`
	var id string
	err = s.DB.QueryRowContext(ctx, query,
		client.ID, client.PhoneNumber, client.Name, string(subscriptions), client.DurationMonths,
		client.PurchaseDate, overrides, client.IsDebtor, client.OverrideExpiration,
		client.Deleted, client.ThemeColor, client.BackgroundImage, client.ProfileImage).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

const clientColumns = `id, phone_number, name, subscriptions, duration_months,
			      purchase_date, subscription_overrides, is_debtor, override_expiration,
			      deleted, theme_color, background_image, profile_image, created_at`

func scanClient(row interface{ Scan(...any) error }) (*models.Client, error) {
	var c models.Client
	var rawSubscriptions string
	var rawOverrides []byte
	var name, themeColor, backgroundImage, profileImage sql.NullString
	if err := row.Scan(&c.ID, &c.PhoneNumber, &name, &rawSubscriptions, &c.DurationMonths,
		&c.PurchaseDate, &rawOverrides, &c.IsDebtor, &c.OverrideExpiration,
		&c.Deleted, &themeColor, &backgroundImage, &profileImage, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Name = name.String
	c.ThemeColor = themeColor.String
	c.BackgroundImage = backgroundImage.String
	c.ProfileImage = profileImage.String
	// Поле subscriptions могло быть записано старой системой в любой
	// из текстовых кодировок, поэтому читается через нормализацию.
	c.Subscriptions = subtoken.FromRaw(rawSubscriptions)
	if len(rawOverrides) > 0 {
		if err := json.Unmarshal(rawOverrides, &c.Overrides); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

// ListClients возвращает всех клиентов, включая помеченных удалёнными.
func (s *Storage) ListClients(ctx context.Context) ([]models.Client, error) {
	const op = "storage.ListClients"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + clientColumns + `
			  FROM clients
			  ORDER BY phone_number`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetClientByPhone возвращает клиента по номеру телефона.
func (s *Storage) GetClientByPhone(ctx context.Context, phoneNumber string) (*models.Client, error) {
	const op = "storage.GetClientByPhone"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + clientColumns + `
			  FROM clients
			  WHERE phone_number = $1`
	row := s.DB.QueryRowContext(ctx, query, phoneNumber)
	c, err := scanClient(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// SetClientDeleted помечает клиента удалённым или восстанавливает его,
// возвращает количество изменённых строк.
func (s *Storage) SetClientDeleted(ctx context.Context, phoneNumber string, deleted bool) (int, error) {
	const op = "storage.SetClientDeleted"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE clients SET deleted = $1 WHERE phone_number = $2`
	result, err := s.DB.ExecContext(ctx, query, deleted, phoneNumber)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// PurgeClient безвозвратно удаляет клиента и возвращает количество удалённых строк.
func (s *Storage) PurgeClient(ctx context.Context, phoneNumber string) (int, error) {
	const op = "storage.PurgeClient"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM clients WHERE phone_number = $1`
	result, err := s.DB.ExecContext(ctx, query, phoneNumber)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateClientPreferences обновляет имя и оформление клиента.
// NULL-аргумент оставляет текущее значение без изменений.
func (s *Storage) UpdateClientPreferences(ctx context.Context, phoneNumber string, prefs models.DummyPreferences) (int, error) {
	const op = "storage.UpdateClientPreferences"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE clients
			  SET name = COALESCE($1, name),
			      theme_color = COALESCE($2, theme_color),
			      background_image = COALESCE($3, background_image),
			      profile_image = COALESCE($4, profile_image)
			  WHERE phone_number = $5`
	result, err := s.DB.ExecContext(ctx, query,
		prefs.Name, prefs.ThemeColor, prefs.BackgroundImage, prefs.ProfileImage, phoneNumber)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
