// Package config предоставляет структуры и функции для парсинга и загрузки конфига
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// EnvLocal — окружение для локальной разработки.
	EnvLocal = "local"
	// EnvDev — тестовый стенд.
	EnvDev = "dev"
	// EnvProd — боевое окружение.
	EnvProd = "prod"

	// DriverPostgres — хранилище PostgreSQL.
	DriverPostgres = "postgres"
	// DriverSQLite — встроенное хранилище SQLite для локального запуска.
	DriverSQLite = "sqlite"
)

// Config общая структура для хранения настроек
type Config struct {
	Env               string `yaml:"env" env:"ENV" env-default:"local"`
	GRPCHealthAddress string `yaml:"grpc_health_address" env:"GRPC_HEALTH_ADDRESS"`
	Storage           `yaml:"storage"`
	HTTPServer        `yaml:"http_server"`
	JWTToken          `yaml:"jwttoken"`
	Auth              `yaml:"auth"`
	FoodProvider      `yaml:"food_provider"`
}

// Storage структура для настройки хранилища
type Storage struct {
	Driver         string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
	DSN            string `yaml:"dsn" env:"STORAGE_DSN"`
	SQLitePath     string `yaml:"sqlite_path" env:"STORAGE_SQLITE_PATH" env-default:"./data/calorie-tracker.db"`
	SkipMigrations bool   `yaml:"skip_migrations" env:"STORAGE_SKIP_MIGRATIONS"`
	MaxOpenConns   int    `yaml:"max_open_conns" env:"STORAGE_MAX_OPEN_CONNS" env-default:"10"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":4000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"JWT_TOKEN_TTL" env-default:"24h"`
}

// Auth структура для настройки проверки токена на границе API
type Auth struct {
	RequireToken bool `yaml:"require_token" env:"AUTH_REQUIRE_TOKEN" env-default:"false"`
}

// FoodProvider структура для настройки клиента внешней базы продуктов (Edamam)
type FoodProvider struct {
	BaseURL string        `yaml:"base_url" env:"EDAMAM_BASE_URL" env-default:"https://api.edamam.com"`
	AppID   string        `yaml:"app_id" env:"EDAMAM_APP_ID"`
	AppKey  string        `yaml:"app_key" env:"EDAMAM_APP_KEY"`
	Timeout time.Duration `yaml:"timeout" env:"EDAMAM_TIMEOUT" env-default:"5s"`
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH, завершает процесс при ошибке
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает YAML-конфиг, накладывает переменные окружения и проверяет обязательные поля.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.DSN == "" {
			return errors.New("storage.dsn is required for postgres driver")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("storage.sqlite_path is required for sqlite driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Driver)
	}
	if c.RequireToken && c.JWTSecretKey == "" {
		return errors.New("jwttoken.jwt_secret_key is required when auth.require_token is set")
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"GRPCHealthAddress: %s\n"+
			"Storage:\n"+
			"  Driver: %s\n"+
			"  DSN: %s\n"+
			"  SQLitePath: %s\n"+
			"  SkipMigrations: %t\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  JWTSecretKey: %s\n"+
			"  TokenTTL: %s\n"+
			"Auth:\n"+
			"  RequireToken: %t\n"+
			"FoodProvider:\n"+
			"  BaseURL: %s\n"+
			"  AppID: %s\n"+
			"  AppKey: %s\n"+
			"  Timeout: %s\n",
		c.Env,
		c.GRPCHealthAddress,
		c.Driver,
		mask(c.DSN),
		c.SQLitePath,
		c.SkipMigrations,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		mask(c.JWTSecretKey),
		c.TokenTTL,
		c.RequireToken,
		c.BaseURL,
		c.AppID,
		mask(c.AppKey),
		c.FoodProvider.Timeout,
	)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}
