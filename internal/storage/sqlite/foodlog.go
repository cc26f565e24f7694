package sqlite

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/magabrotheeeer/calorie-tracker/internal/lib/day"
	"github.com/magabrotheeeer/calorie-tracker/internal/models"
)

// CreateFoodLog сохраняет запись о съеденном продукте.
func (s *Storage) CreateFoodLog(ctx context.Context, entry models.FoodLogEntry) (*models.FoodLogEntry, error) {
	const op = "storage.sqlite.CreateFoodLog"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}
	row := foodLogRow{
		UserUID:   entry.UserUID,
		FoodID:    entry.FoodID,
		Label:     entry.Label,
		Kcal:      entry.Kcal,
		CreatedAt: toUnix(createdAt),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return row.toModel(), nil
}

// DeleteFoodLog удаляет запись, только если она принадлежит пользователю.
func (s *Storage) DeleteFoodLog(ctx context.Context, id int64, userUID string) (int64, error) {
	const op = "storage.sqlite.DeleteFoodLog"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res := s.db.WithContext(ctx).
		Where("id = ? AND user_uid = ?", id, userUID).
		Delete(&foodLogRow{})
	if res.Error != nil {
		return 0, fmt.Errorf("%s: %w", op, res.Error)
	}
	return res.RowsAffected, nil
}

// ListFoodLogs возвращает записи пользователя в полуинтервале [from, to).
func (s *Storage) ListFoodLogs(ctx context.Context, userUID string, from, to time.Time) ([]*models.FoodLogEntry, error) {
	const op = "storage.sqlite.ListFoodLogs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows := make([]foodLogRow, 0)
	if err := s.db.WithContext(ctx).
		Where("user_uid = ? AND created_at >= ? AND created_at < ?", userUID, toUnix(from), toUnix(to)).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*models.FoodLogEntry, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].toModel())
	}
	return result, nil
}

// SumCaloriesByDay суммирует калории по UTC-дням начиная с since.
func (s *Storage) SumCaloriesByDay(ctx context.Context, userUID string, since time.Time) ([]models.DailyTotal, error) {
	const op = "storage.sqlite.SumCaloriesByDay"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows := make([]foodLogRow, 0)
	if err := s.db.WithContext(ctx).
		Select("kcal", "created_at").
		Where("user_uid = ? AND created_at >= ?", userUID, toUnix(since)).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sums := make(map[string]int)
	for _, r := range rows {
		sums[day.Format(fromUnix(r.CreatedAt))] += r.Kcal
	}
	result := make([]models.DailyTotal, 0, len(sums))
	for date, total := range sums {
		result = append(result, models.DailyTotal{Date: date, Total: total})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

func (r foodLogRow) toModel() *models.FoodLogEntry {
	return &models.FoodLogEntry{
		ID:        r.ID,
		UserUID:   r.UserUID,
		FoodID:    r.FoodID,
		Label:     r.Label,
		Kcal:      r.Kcal,
		CreatedAt: fromUnix(r.CreatedAt),
	}
}
