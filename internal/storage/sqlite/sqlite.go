// Package sqlite реализует встроенное хранилище на SQLite поверх gorm.
// Используется для локального запуска без PostgreSQL и в сквозных тестах;
// набор методов совпадает с repository.Storage.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MemoryPath открывает отдельную базу в памяти процесса.
const MemoryPath = ":memory:"

type userRow struct {
	UID          string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    int64  `gorm:"not null;autoCreateTime:nano"`
}

func (userRow) TableName() string { return "users" }

type foodLogRow struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserUID   string `gorm:"size:36;not null;index:idx_food_log_user_created_at,priority:1"`
	FoodID    string `gorm:"not null"`
	Label     string `gorm:"not null"`
	Kcal      int    `gorm:"not null;check:kcal >= 0"`
	CreatedAt int64  `gorm:"not null;autoCreateTime:nano;index:idx_food_log_user_created_at,priority:2"`
}

func (foodLogRow) TableName() string { return "food_log" }

// Storage хранит пользователей и дневник питания в файле SQLite.
// Моменты времени хранятся как Unix-наносекунды в UTC, что делает сравнение диапазонов точным.
type Storage struct {
	db  *gorm.DB
	now func() time.Time
}

// New открывает (или создаёт) базу по пути и применяет схему.
func New(path string, log *slog.Logger) (*Storage, error) {
	const op = "storage.sqlite.New"

	dsn := path
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("%s: create db directory: %w", op, err)
		}
		dsn = fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", path)
	}

	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(
			slog.NewLogLogger(log.Handler(), slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: open sqlite: %w", op, err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	// Одно соединение: иначе каждая новая связь с :memory: получает свою пустую базу.
	sqlDB.SetMaxOpenConns(1)

	if err = database.AutoMigrate(&userRow{}, &foodLogRow{}); err != nil {
		return nil, fmt.Errorf("%s: migrate: %w", op, err)
	}

	return &Storage{db: database, now: time.Now}, nil
}

// Ping проверяет доступность базы.
func (s *Storage) Ping(ctx context.Context) error {
	const op = "storage.sqlite.Ping"

	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает соединение.
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func toUnix(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromUnix(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
