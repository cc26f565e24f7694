//go:build integration

package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/calorie-tracker/internal/migrations"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его UID
func (f *TestDataFactory) CreateUser(t *testing.T, email string) string {
	var uid string
	err := f.storage.DB.QueryRow(`INSERT INTO users (email, password_hash) VALUES ($1, 'hash') RETURNING uid`,
		email).Scan(&uid)
	require.NoError(t, err)
	return uid
}

// CreateFoodLogAt создает запись дневника с заданным временем создания
func (f *TestDataFactory) CreateFoodLogAt(t *testing.T, userUID, label string, kcal int, createdAt time.Time) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO food_log (user_uid, food_id, label, kcal, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		userUID, label+"-Generic", label, kcal, createdAt).Scan(&id)
	require.NoError(t, err)
	return id
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// CountFoodLogs возвращает число записей пользователя
func (v *TestVerification) CountFoodLogs(t *testing.T, userUID string) int {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM food_log WHERE user_uid = $1", userUID).Scan(&count)
	require.NoError(t, err)
	return count
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL и применяет миграции
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, nat.Port("5432/tcp"))
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())

	storage, err := New(ctx, dsn, 5)
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB))

	cleanup := func() {
		_ = storage.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return storage, cleanup
}
