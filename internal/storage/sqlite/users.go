package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/magabrotheeeer/calorie-tracker/internal/models"
)

// RegisterUser сохраняет нового пользователя и возвращает сгенерированный UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.sqlite.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	row := userRow{
		UID:          uuid.NewString(),
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    toUnix(s.now()),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("%s: %w", op, models.ErrEmailAlreadyInUse)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return row.UID, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.sqlite.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var row userRow
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.User{
		UUID:         row.UID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    fromUnix(row.CreatedAt),
	}, nil
}
