// Package services содержит бизнес-логику дневника питания: добавление и удаление записей,
// выборку за день, суммы калорий по дням и поиск продуктов во внешней базе.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/calorie-tracker/internal/lib/day"
	"github.com/magabrotheeeer/calorie-tracker/internal/models"
)

// MaxDays ограничивает окно CaloriesPerDay.
const MaxDays = 3650

// FoodLogRepository определяет методы для работы с дневником питания в хранилище.
type FoodLogRepository interface {
	// CreateFoodLog добавляет запись и возвращает её с id и created_at.
	CreateFoodLog(ctx context.Context, entry models.FoodLogEntry) (*models.FoodLogEntry, error)
	// DeleteFoodLog удаляет запись пользователя и возвращает количество удалённых строк.
	DeleteFoodLog(ctx context.Context, id int64, userUID string) (int64, error)
	// ListFoodLogs возвращает записи пользователя в полуинтервале [from, to).
	ListFoodLogs(ctx context.Context, userUID string, from, to time.Time) ([]*models.FoodLogEntry, error)
	// SumCaloriesByDay возвращает суммы калорий по дням начиная с since.
	SumCaloriesByDay(ctx context.Context, userUID string, since time.Time) ([]models.DailyTotal, error)
}

// FoodSearcher ищет продукты во внешней базе.
type FoodSearcher interface {
	Search(ctx context.Context, query string) ([]models.FoodSearchResult, error)
}

type deleteRequest struct {
	ID      int64  `validate:"gt=0"`
	UserUID string `validate:"required,uuid"`
}

type userRequest struct {
	UserUID string `validate:"required,uuid"`
}

type windowRequest struct {
	UserUID string `validate:"required,uuid"`
	Days    int    `validate:"window_days"`
}

type searchRequest struct {
	Query string `validate:"required,max=200"`
}

// FoodLogService реализует бизнес-логику дневника питания.
type FoodLogService struct {
	repo     FoodLogRepository
	searcher FoodSearcher
	log      *slog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewFoodLogService создает новый экземпляр FoodLogService.
func NewFoodLogService(repo FoodLogRepository, searcher FoodSearcher, log *slog.Logger) *FoodLogService {
	return &FoodLogService{
		repo:     repo,
		searcher: searcher,
		log:      log,
		validate: newValidator(),
		now:      time.Now,
	}
}

// newValidator регистрирует теги, границы которых заданы константами.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterAlias("entry_kcal", fmt.Sprintf("gt=0,max=%d", models.MaxEntryKcal))
	v.RegisterAlias("window_days", fmt.Sprintf("min=1,max=%d", MaxDays))
	return v
}

// Add логирует продукт за пользователем. Калорийность уже посчитана для порции.
func (s *FoodLogService) Add(ctx context.Context, req models.DummyFoodLog) (*models.FoodLogEntry, error) {
	const op = "services.foodlog.Add"

	req.Label = strings.TrimSpace(req.Label)
	req.Brand = strings.TrimSpace(req.Brand)
	if err := s.check(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entry, err := s.repo.CreateFoodLog(ctx, models.FoodLogEntry{
		UserUID: req.UserUID,
		FoodID:  models.FoodKey(req.Label, req.Brand),
		Label:   req.Label,
		Kcal:    req.Kcal,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("food log entry created", slog.Int64("id", entry.ID), slog.String("user_uid", entry.UserUID))
	return entry, nil
}

// Delete удаляет запись пользователя. Если записи нет или она чужая, возвращает
// models.ErrNotFoundOrNotOwned, состояние хранилища при этом не меняется.
func (s *FoodLogService) Delete(ctx context.Context, id int64, userUID string) error {
	const op = "services.foodlog.Delete"

	if err := s.check(deleteRequest{ID: id, UserUID: userUID}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	removed, err := s.repo.DeleteFoodLog(ctx, id, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if removed == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFoundOrNotOwned)
	}

	s.log.Info("food log entry deleted", slog.Int64("id", id), slog.String("user_uid", userUID))
	return nil
}

// ListForDate возвращает записи пользователя за календарную дату YYYY-MM-DD (UTC).
func (s *FoodLogService) ListForDate(ctx context.Context, userUID, date string) ([]*models.FoodLogEntry, error) {
	const op = "services.foodlog.ListForDate"

	if err := s.check(userRequest{UserUID: userUID}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	from, to, err := day.Parse(date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %s", op, models.ErrValidation, err)
	}

	entries, err := s.repo.ListFoodLogs(ctx, userUID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}

// CaloriesPerDay возвращает суммы калорий за последние days суток, по возрастанию даты.
// Дни без записей не возвращаются.
func (s *FoodLogService) CaloriesPerDay(ctx context.Context, userUID string, days int) ([]models.DailyTotal, error) {
	const op = "services.foodlog.CaloriesPerDay"

	if err := s.check(windowRequest{UserUID: userUID, Days: days}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	totals, err := s.repo.SumCaloriesByDay(ctx, userUID, day.WindowStart(s.now(), days))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return totals, nil
}

// Search ищет продукты во внешней базе.
func (s *FoodLogService) Search(ctx context.Context, query string) ([]models.FoodSearchResult, error) {
	const op = "services.foodlog.Search"

	query = strings.TrimSpace(query)
	if err := s.check(searchRequest{Query: query}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result, err := s.searcher.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// PortionCalories считает калорийность порции весом grams по калорийности на 100 г.
func (s *FoodLogService) PortionCalories(calPer100g int, grams float64) (int, error) {
	const op = "services.foodlog.PortionCalories"

	if calPer100g < 0 || grams < 0 || math.IsNaN(grams) || math.IsInf(grams, 0) {
		return 0, fmt.Errorf("%s: %w: cal and grams must be non-negative", op, models.ErrValidation)
	}
	return day.PortionKcal(calPer100g, grams), nil
}

func (s *FoodLogService) check(v any) error {
	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%w: %s", models.ErrValidation, verrs.Error())
		}
		return fmt.Errorf("%w: %s", models.ErrValidation, err)
	}
	return nil
}
