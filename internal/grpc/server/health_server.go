// Package server реализует служебный gRPC-сервер здоровья (grpc.health.v1.Health).
//
// HealthServer периодически проверяет хранилище и публикует статус SERVING
// или NOT_SERVING для общего статуса и для имени сервиса.
package server

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/magabrotheeeer/calorie-tracker/internal/lib/sl"
)

// ServiceName используется как имя сервиса в протоколе здоровья.
const ServiceName = "calorie-tracker"

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthServer связывает стандартный health-сервер gRPC с проверкой хранилища.
type HealthServer struct {
	health   *health.Server
	storage  Pinger
	log      *slog.Logger
	interval time.Duration
}

// NewHealthServer создаёт health-сервер, который проверяет storage раз в interval.
func NewHealthServer(storage Pinger, logger *slog.Logger, interval time.Duration) *HealthServer {
	return &HealthServer{
		health:   health.NewServer(),
		storage:  storage,
		log:      logger,
		interval: interval,
	}
}

// Register регистрирует сервис здоровья на gRPC-сервере.
func (s *HealthServer) Register(grpcServer *grpc.Server) {
	healthpb.RegisterHealthServer(grpcServer, s.health)
}

// Refresh выполняет одну проверку хранилища и обновляет статус.
func (s *HealthServer) Refresh(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if err := s.storage.Ping(ctx); err != nil {
		s.log.Warn("storage ping failed", sl.Err(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
	return status
}

// Watch обновляет статус до отмены ctx, затем переводит сервер в NOT_SERVING.
func (s *HealthServer) Watch(ctx context.Context) {
	s.Refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.health.Shutdown()
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, s.interval)
			s.Refresh(pingCtx)
			cancel()
		}
	}
}
