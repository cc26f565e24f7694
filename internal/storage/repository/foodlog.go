package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/calorie-tracker/internal/models"
)

// CreateFoodLog сохраняет запись о съеденном продукте и возвращает её
// с заполненными id и created_at.
func (s *Storage) CreateFoodLog(ctx context.Context, entry models.FoodLogEntry) (*models.FoodLogEntry, error) {
	const op = "storage.CreateFoodLog"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO food_log (user_uid, food_id, label, kcal)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at;`
	created := entry
	if err := s.DB.QueryRowContext(ctx, query,
		entry.UserUID, entry.FoodID, entry.Label, entry.Kcal,
	).Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	created.CreatedAt = created.CreatedAt.UTC()
	return &created, nil
}

// DeleteFoodLog удаляет запись, только если она принадлежит пользователю.
// Возвращает число удалённых строк.
func (s *Storage) DeleteFoodLog(ctx context.Context, id int64, userUID string) (int64, error) {
	const op = "storage.DeleteFoodLog"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM food_log
			  WHERE id = $1 AND user_uid = $2`
	res, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}

// ListFoodLogs возвращает записи пользователя в полуинтервале [from, to)
// в порядке добавления.
func (s *Storage) ListFoodLogs(ctx context.Context, userUID string, from, to time.Time) ([]*models.FoodLogEntry, error) {
	const op = "storage.ListFoodLogs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, food_id, label, kcal, created_at
			  FROM food_log
			  WHERE user_uid = $1 AND created_at >= $2 AND created_at < $3
			  ORDER BY created_at, id`
	rows, err := s.DB.QueryContext(ctx, query, userUID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.FoodLogEntry, 0)
	for rows.Next() {
		var e models.FoodLogEntry
		if err = rows.Scan(&e.ID, &e.UserUID, &e.FoodID, &e.Label, &e.Kcal, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		e.CreatedAt = e.CreatedAt.UTC()
		result = append(result, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SumCaloriesByDay суммирует калории пользователя по UTC-дням начиная с since.
// Дни без записей в результат не попадают.
func (s *Storage) SumCaloriesByDay(ctx context.Context, userUID string, since time.Time) ([]models.DailyTotal, error) {
	const op = "storage.SumCaloriesByDay"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT TO_CHAR((created_at AT TIME ZONE 'UTC')::date, 'YYYY-MM-DD') AS day,
			      SUM(kcal)::bigint AS total
			  FROM food_log
			  WHERE user_uid = $1 AND created_at >= $2
			  GROUP BY day
			  ORDER BY day`
	rows, err := s.DB.QueryContext(ctx, query, userUID, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.DailyTotal, 0)
	for rows.Next() {
		var (
			d     models.DailyTotal
			total int64
		)
		if err = rows.Scan(&d.Date, &total); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		d.Total = int(total)
		result = append(result, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
