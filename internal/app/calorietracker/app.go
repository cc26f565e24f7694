// Package calorietracker собирает зависимости сервиса учёта калорий и запускает его серверы.
package calorietracker

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/grpc"

	"github.com/magabrotheeeer/calorie-tracker/internal/config"
	"github.com/magabrotheeeer/calorie-tracker/internal/foodprovider"
	"github.com/magabrotheeeer/calorie-tracker/internal/graph"
	"github.com/magabrotheeeer/calorie-tracker/internal/grpc/server"
	"github.com/magabrotheeeer/calorie-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/calorie-tracker/internal/lib/metrics"
	"github.com/magabrotheeeer/calorie-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/calorie-tracker/internal/migrations"
	authservice "github.com/magabrotheeeer/calorie-tracker/internal/services/auth"
	foodlogservice "github.com/magabrotheeeer/calorie-tracker/internal/services/foodlog"
	"github.com/magabrotheeeer/calorie-tracker/internal/storage/repository"
	"github.com/magabrotheeeer/calorie-tracker/internal/storage/sqlite"
)

const (
	shutdownTimeout     = 15 * time.Second
	healthCheckInterval = 10 * time.Second
)

// Store объединяет всё, что приложению нужно от хранилища.
type Store interface {
	authservice.UserRepository
	foodlogservice.FoodLogRepository
	Ping(ctx context.Context) error
	Close() error
}

// App держит HTTP-сервер, необязательный gRPC health-сервер и хранилище.
type App struct {
	server       *http.Server
	grpcServer   *grpc.Server
	grpcListener net.Listener
	health       *server.HealthServer
	logger       *slog.Logger
	store        Store
}

// New открывает хранилище, применяет миграции и собирает обработчики.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "calorietracker.New"

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	app, err := build(cfg, logger, store, prometheus.NewRegistry())
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return app, nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.New(cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DriverPostgres:
		db, err := repository.New(ctx, cfg.DSN, cfg.MaxOpenConns)
		if err != nil {
			return nil, err
		}
		if cfg.SkipMigrations {
			return db, nil
		}
		if err = migrations.Run(db.DB); err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func build(cfg *config.Config, logger *slog.Logger, store Store, reg *prometheus.Registry) (*App, error) {
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	secret := cfg.JWTSecretKey
	if secret == "" {
		var err error
		if secret, err = randomSecret(); err != nil {
			return nil, err
		}
		logger.Warn("jwt secret is not configured, tokens will not survive a restart")
	}
	jwtMaker := jwt.NewJWTMaker(secret, cfg.TokenTTL)

	provider := foodprovider.NewClient(cfg.BaseURL, cfg.AppID, cfg.AppKey, cfg.FoodProvider.Timeout, m)
	authService := authservice.NewAuthService(store, jwtMaker)
	foodLogService := foodlogservice.NewFoodLogService(store, provider, logger)

	schema, err := graph.NewSchema(graph.NewResolver(logger, authService, foodLogService, m, cfg.RequireToken))
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Deps{
		GraphQL: graph.NewHandler(schema),
		Auth:    authService,
		Storage: store,
		Metrics: reg,
		Timeout: cfg.TimeoutHTTP,
	})

	app := &App{
		server: &http.Server{
			Addr:         cfg.AddressHTTP,
			Handler:      router,
			ReadTimeout:  cfg.TimeoutHTTP,
			WriteTimeout: cfg.TimeoutHTTP,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: logger,
		store:  store,
	}

	if cfg.GRPCHealthAddress != "" {
		lis, err := net.Listen("tcp", cfg.GRPCHealthAddress)
		if err != nil {
			return nil, err
		}
		app.grpcListener = lis
		app.grpcServer = grpc.NewServer()
		app.health = server.NewHealthServer(store, logger, healthCheckInterval)
		app.health.Register(app.grpcServer)
	}

	return app, nil
}

// Handler возвращает корневой HTTP-обработчик.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run запускает серверы и блокируется до отмены ctx или ошибки одного из них.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	if a.grpcServer != nil {
		go a.health.Watch(ctx)
		go func() {
			a.logger.Info("gRPC health service listening on", slog.String("address", a.grpcListener.Addr().String()))
			errCh <- a.grpcServer.Serve(a.grpcListener)
		}()
	}

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
	}

	timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.logger.Info("shutting down HTTP server gracefully")
	if err := a.server.Shutdown(timeoutCtx); err != nil && runErr == nil {
		runErr = err
	}
	if a.grpcServer != nil {
		a.grpcServer.GracefulStop()
	}
	if err := a.store.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
	return runErr
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
