// Package handler implements the gRPC services of the probe server.
package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/dtroode/chirper-server/internal/logger"
	"github.com/dtroode/chirper-server/internal/model"
)

// ServiceName is the service name probes may ask about besides the empty server-wide name.
const ServiceName = "chirper.API"

// Health answers grpc.health.v1 checks from the same readiness check as GET /ready.
type Health struct {
	healthpb.UnimplementedHealthServer

	checker model.ReadinessChecker
	logger  *logger.Logger
}

func NewHealth(checker model.ReadinessChecker, logger *logger.Logger) *Health {
	return &Health{checker: checker, logger: logger}
}

// Check reports SERVING when every dependency is ready.
func (h *Health) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if svc := req.GetService(); svc != "" && svc != ServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", svc)
	}

	if err := h.checker.Ready(ctx); err != nil {
		h.logger.Warn("gRPC health: not ready", "error", err.Error())
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}
