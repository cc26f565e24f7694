package graph

import (
	"math"
	"strconv"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/magabrotheeeer/calorie-tracker/internal/models"
)

type foodResolver struct {
	f models.FoodSearchResult
}

func (r *foodResolver) Label() string { return r.f.Label }
func (r *foodResolver) Cal() int32    { return toInt32(r.f.Cal) }
func (r *foodResolver) Brand() string { return r.f.Brand }

type foodLogResolver struct {
	e *models.FoodLogEntry
}

func (r *foodLogResolver) ID() graphql.ID {
	return graphql.ID(strconv.FormatInt(r.e.ID, 10))
}
func (r *foodLogResolver) UserID() string { return r.e.UserUID }
func (r *foodLogResolver) FoodID() string { return r.e.FoodID }
func (r *foodLogResolver) Label() string  { return r.e.Label }
func (r *foodLogResolver) Kcal() int32    { return toInt32(r.e.Kcal) }
func (r *foodLogResolver) CreatedAt() string {
	return r.e.CreatedAt.UTC().Format(time.RFC3339)
}

type dailyTotalResolver struct {
	d models.DailyTotal
}

func (r *dailyTotalResolver) Date() string { return r.d.Date }
func (r *dailyTotalResolver) Total() int32 { return toInt32(r.d.Total) }

type authTokenResolver struct {
	t *models.AuthToken
}

func (r *authTokenResolver) Token() string  { return r.t.Token }
func (r *authTokenResolver) UserID() string { return r.t.UserUID }
func (r *authTokenResolver) ExpiresAt() string {
	return r.t.ExpiresAt.UTC().Format(time.RFC3339)
}

// toInt32 приводит калорийность к GraphQL Int с насыщением, без переполнения.
func toInt32(v int) int32 {
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < 0:
		return 0
	}
	return int32(v)
}
