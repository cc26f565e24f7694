package graph

import (
	"context"
	"time"
)

type foodLogsForDateArgs struct {
	UserID string
	Date   string
}

// FoodLogsForDate возвращает записи пользователя за дату YYYY-MM-DD.
func (r *Resolver) FoodLogsForDate(ctx context.Context, args foodLogsForDateArgs) (*[]*foodLogResolver, error) {
	const operation = "foodLogsForDate"
	started := time.Now()

	if err := r.authorize(ctx, args.UserID); err != nil {
		return nil, r.fail(ctx, operation, started, err)
	}
	entries, err := r.foodLog.ListForDate(ctx, args.UserID, args.Date)
	if err != nil {
		return nil, r.fail(ctx, operation, started, err)
	}

	result := make([]*foodLogResolver, 0, len(entries))
	for _, e := range entries {
		result = append(result, &foodLogResolver{e: e})
	}
	r.done(operation, started)
	return &result, nil
}

type searchFoodArgs struct {
	Query string
}

// SearchFood ищет продукты во внешней базе.
func (r *Resolver) SearchFood(ctx context.Context, args searchFoodArgs) (*[]*foodResolver, error) {
	const operation = "searchFood"
	started := time.Now()

	foods, err := r.foodLog.Search(ctx, args.Query)
	if err != nil {
		return nil, r.fail(ctx, operation, started, err)
	}

	result := make([]*foodResolver, 0, len(foods))
	for _, f := range foods {
		result = append(result, &foodResolver{f: f})
	}
	r.done(operation, started)
	return &result, nil
}

type caloriesPerDayArgs struct {
	UserID string
	Days   int32
}

// CaloriesPerDay возвращает суммы калорий по дням за последние days суток.
func (r *Resolver) CaloriesPerDay(ctx context.Context, args caloriesPerDayArgs) (*[]*dailyTotalResolver, error) {
	const operation = "caloriesPerDay"
	started := time.Now()

	if err := r.authorize(ctx, args.UserID); err != nil {
		return nil, r.fail(ctx, operation, started, err)
	}
	totals, err := r.foodLog.CaloriesPerDay(ctx, args.UserID, int(args.Days))
	if err != nil {
		return nil, r.fail(ctx, operation, started, err)
	}

	result := make([]*dailyTotalResolver, 0, len(totals))
	for _, d := range totals {
		result = append(result, &dailyTotalResolver{d: d})
	}
	r.done(operation, started)
	return &result, nil
}

type portionCaloriesArgs struct {
	Cal   int32
	Grams float64
}

// PortionCalories считает калорийность порции.
func (r *Resolver) PortionCalories(ctx context.Context, args portionCaloriesArgs) (*int32, error) {
	const operation = "portionCalories"
	started := time.Now()

	kcal, err := r.foodLog.PortionCalories(int(args.Cal), args.Grams)
	if err != nil {
		return nil, r.fail(ctx, operation, started, err)
	}
	result := toInt32(kcal)
	r.done(operation, started)
	return &result, nil
}
