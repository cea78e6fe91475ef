// Package services содержит логику бизнес-уровня для аутентификации администраторов.
package services

import (
	"context"
	"errors"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/jwt"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/password"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminRepository описывает контракт для работы с администраторами в базе данных.
type AdminRepository interface {
	// RegisterAdmin сохраняет новую административную учётную запись.
	RegisterAdmin(ctx context.Context, admin models.Admin) error
	// GetAdminByUsername возвращает администратора по имени или ошибку, если не найден.
	GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
}

// AuthService отвечает за регистрацию и авторизацию администраторов.
type AuthService struct {
	admins   AdminRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(admins AdminRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		admins:   admins,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового администратора с хэшированием пароля
// и дефолтной ролью "admin".
func (s *AuthService) Register(ctx context.Context, email, username, rawPassword string) error {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return err
	}
	admin := models.Admin{
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Role:         "admin",
	}
	return s.admins.RegisterAdmin(ctx, admin)
}

// Login проверяет пару логин/пароль и возвращает подписанный JWT и роль.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, string, error) {
	admin, err := s.admins.GetAdminByUsername(ctx, username)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if err := password.CompareHash(admin.PasswordHash, rawPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(admin.Username, admin.Role)
	if err != nil {
		return "", "", err
	}
	return token, admin.Role, nil
}
