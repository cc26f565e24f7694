// Package graph реализует GraphQL API сервиса: схему, резолверы запросов и мутаций
// и преобразование ошибок сервисов в публичные коды.
package graph

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/calorie-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/calorie-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/calorie-tracker/internal/models"
)

// AuthService описывает операции регистрации и входа.
type AuthService interface {
	Register(ctx context.Context, email, rawPassword string) (string, error)
	Login(ctx context.Context, email, rawPassword string) (string, error)
	IssueToken(ctx context.Context, email, rawPassword string) (*models.AuthToken, error)
}

// FoodLogService описывает операции дневника питания и поиска продуктов.
type FoodLogService interface {
	Add(ctx context.Context, req models.DummyFoodLog) (*models.FoodLogEntry, error)
	Delete(ctx context.Context, id int64, userUID string) error
	ListForDate(ctx context.Context, userUID, date string) ([]*models.FoodLogEntry, error)
	CaloriesPerDay(ctx context.Context, userUID string, days int) ([]models.DailyTotal, error)
	Search(ctx context.Context, query string) ([]models.FoodSearchResult, error)
	PortionCalories(calPer100g int, grams float64) (int, error)
}

// Observer учитывает выполнение операций.
type Observer interface {
	ObserveOperation(operation string, started time.Time, err error)
}

// Resolver обслуживает корневые поля Query и Mutation.
type Resolver struct {
	log          *slog.Logger
	auth         AuthService
	foodLog      FoodLogService
	observer     Observer
	requireToken bool
}

// NewResolver создаёт корневой резолвер. Если requireToken выставлен, операции
// над данными пользователя требуют валидный токен в заголовке Authorization.
func NewResolver(log *slog.Logger, auth AuthService, foodLog FoodLogService, observer Observer, requireToken bool) *Resolver {
	return &Resolver{
		log:          log,
		auth:         auth,
		foodLog:      foodLog,
		observer:     observer,
		requireToken: requireToken,
	}
}

// authorize сверяет user_id из аргументов с владельцем токена, если токен передан.
func (r *Resolver) authorize(ctx context.Context, userID string) error {
	tokenUID, ok := middlewarectx.UserUIDFrom(ctx)
	switch {
	case ok && tokenUID != userID:
		return models.ErrUnauthorized
	case !ok && r.requireToken:
		return models.ErrUnauthorized
	}
	return nil
}

func (r *Resolver) done(operation string, started time.Time) {
	if r.observer != nil {
		r.observer.ObserveOperation(operation, started, nil)
	}
}

// fail логирует внутреннюю ошибку и возвращает клиенту публичную.
func (r *Resolver) fail(ctx context.Context, operation string, started time.Time, err error) error {
	if r.observer != nil {
		r.observer.ObserveOperation(operation, started, err)
	}

	public := toPublic(err)
	log := r.log.With(
		slog.String("op", "graph."+operation),
		slog.String("request_id", middleware.GetReqID(ctx)),
		slog.String("code", public.Code),
	)
	if public.Code == CodeStorage || errors.Is(err, models.ErrUpstreamUnavailable) {
		log.Error("operation failed", sl.Err(err))
	} else {
		log.Info("operation rejected", sl.Err(err))
	}
	return public
}
