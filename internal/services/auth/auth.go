// Package services содержит логику бизнес-уровня для регистрации, входа и выдачи токенов.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/calorie-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/calorie-tracker/internal/lib/password"
	"github.com/magabrotheeeer/calorie-tracker/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или models.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// credentials используется для валидации входных данных регистрации и входа.
type credentials struct {
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required"`
}

// AuthService отвечает за регистрацию, вход и выдачу подписанных токенов.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	validate *validator.Validate
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		validate: validator.New(),
	}
}

// Register создает нового пользователя с хэшированием пароля и возвращает его UID.
func (s *AuthService) Register(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "services.auth.Register"

	if err := s.validateCredentials(email, rawPassword); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if len(rawPassword) > password.MaxLength {
		return "", fmt.Errorf("%s: %w: password longer than %d bytes", op, models.ErrValidation, password.MaxLength)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	uid, err := s.users.RegisterUser(ctx, models.User{
		Email:        email,
		PasswordHash: hashed,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uid, nil
}

// Login проверяет пароль и возвращает UID пользователя.
// Неизвестный email и неверный пароль неотличимы: оба дают models.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "services.auth.Login"

	if err := s.validateCredentials(email, rawPassword); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	// bcrypt сравнивает только первые MaxLength байт, такой пароль не мог быть зарегистрирован.
	if len(rawPassword) > password.MaxLength {
		password.EqualizeTiming(rawPassword)
		return "", fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			password.EqualizeTiming(rawPassword)
			return "", fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err = password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return "", fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return user.UUID, nil
}

// IssueToken выполняет вход и выдаёт подписанный токен с UID в subject.
func (s *AuthService) IssueToken(ctx context.Context, email, rawPassword string) (*models.AuthToken, error) {
	const op = "services.auth.IssueToken"

	uid, err := s.Login(ctx, email, rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	token, expiresAt, err := s.jwtMaker.GenerateToken(uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.AuthToken{
		Token:     token,
		UserUID:   uid,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateToken проверяет токен и возвращает UID его владельца.
func (s *AuthService) ValidateToken(_ context.Context, token string) (string, error) {
	const op = "services.auth.ValidateToken"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, models.ErrUnauthorized, err)
	}
	return claims.UserUID(), nil
}

func (s *AuthService) validateCredentials(email, rawPassword string) error {
	if err := s.validate.Struct(credentials{Email: email, Password: rawPassword}); err != nil {
		return fmt.Errorf("%w: %s", models.ErrValidation, err)
	}
	return nil
}
