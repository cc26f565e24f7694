package graph

import (
	"context"
	"errors"
	"strconv"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/magabrotheeeer/calorie-tracker/internal/models"
)

type credentialsArgs struct {
	Email    string
	Password string
}

// Register регистрирует пользователя.
func (r *Resolver) Register(ctx context.Context, args credentialsArgs) (*bool, error) {
	const operation = "register"
	started := time.Now()

	if _, err := r.auth.Register(ctx, args.Email, args.Password); err != nil {
		return nil, r.fail(ctx, operation, started, err)
	}
	r.done(operation, started)
	return boolPtr(true), nil
}

// Login возвращает UID пользователя при верных учётных данных.
func (r *Resolver) Login(ctx context.Context, args credentialsArgs) (*string, error) {
	const operation = "login"
	started := time.Now()

	uid, err := r.auth.Login(ctx, args.Email, args.Password)
	if err != nil {
		return nil, r.fail(ctx, operation, started, err)
	}
	r.done(operation, started)
	return &uid, nil
}

// IssueToken выдаёт подписанный токен доступа.
func (r *Resolver) IssueToken(ctx context.Context, args credentialsArgs) (*authTokenResolver, error) {
	const operation = "issueToken"
	started := time.Now()

	token, err := r.auth.IssueToken(ctx, args.Email, args.Password)
	if err != nil {
		return nil, r.fail(ctx, operation, started, err)
	}
	r.done(operation, started)
	return &authTokenResolver{t: token}, nil
}

type addFoodLogArgs struct {
	UserID string
	Label  string
	Cal    int32
	Brand  string
}

// AddFoodLog добавляет запись в дневник. Калорийность уже посчитана клиентом для порции.
func (r *Resolver) AddFoodLog(ctx context.Context, args addFoodLogArgs) (*bool, error) {
	const operation = "addFoodLog"
	started := time.Now()

	if err := r.authorize(ctx, args.UserID); err != nil {
		return nil, r.fail(ctx, operation, started, err)
	}
	if _, err := r.foodLog.Add(ctx, models.DummyFoodLog{
		UserUID: args.UserID,
		Label:   args.Label,
		Brand:   args.Brand,
		Kcal:    int(args.Cal),
	}); err != nil {
		return nil, r.fail(ctx, operation, started, err)
	}
	r.done(operation, started)
	return boolPtr(true), nil
}

type deleteFoodLogArgs struct {
	ID     graphql.ID
	UserID string
}

// DeleteFoodLog удаляет запись пользователя. Для отсутствующей или чужой записи
// возвращает false без ошибки.
func (r *Resolver) DeleteFoodLog(ctx context.Context, args deleteFoodLogArgs) (*bool, error) {
	const operation = "deleteFoodLog"
	started := time.Now()

	if err := r.authorize(ctx, args.UserID); err != nil {
		return nil, r.fail(ctx, operation, started, err)
	}
	id, err := strconv.ParseInt(string(args.ID), 10, 64)
	if err != nil {
		return nil, r.fail(ctx, operation, started, models.ErrValidation)
	}

	err = r.foodLog.Delete(ctx, id, args.UserID)
	switch {
	case errors.Is(err, models.ErrNotFoundOrNotOwned):
		r.done(operation, started)
		return boolPtr(false), nil
	case err != nil:
		return nil, r.fail(ctx, operation, started, err)
	}
	r.done(operation, started)
	return boolPtr(true), nil
}

func boolPtr(v bool) *bool {
	return &v
}
