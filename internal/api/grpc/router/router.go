// Package router builds the gRPC probe server.
package router

import (
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/dtroode/chirper-server/internal/api/grpc/handler"
	"github.com/dtroode/chirper-server/internal/api/grpc/middleware"
	"github.com/dtroode/chirper-server/internal/logger"
	"github.com/dtroode/chirper-server/internal/model"
)

// Router registers the gRPC services and interceptors.
type Router struct {
	readiness model.ReadinessChecker
	logger    *logger.Logger
}

// New creates new gRPC Router instance.
func New(readiness model.ReadinessChecker, logger *logger.Logger) *Router {
	return &Router{
		readiness: readiness,
		logger:    logger,
	}
}

// Register returns a gRPC server with the health service and reflection
// registered. Every call is logged, and panics become codes.Internal.
func (r *Router) Register() *grpc.Server {
	interceptorLogger := middleware.InterceptorLogger(r.logger)
	loggingOpts := middleware.LoggingOptions()
	recoveryOpt := recovery.WithRecoveryHandlerContext(middleware.RecoveryHandler(r.logger))

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.UnaryServerInterceptor(interceptorLogger, loggingOpts...),
			recovery.UnaryServerInterceptor(recoveryOpt),
		),
		grpc.ChainStreamInterceptor(
			logging.StreamServerInterceptor(interceptorLogger, loggingOpts...),
			recovery.StreamServerInterceptor(recoveryOpt),
		),
	)
	healthpb.RegisterHealthServer(s, handler.NewHealth(r.readiness, r.logger))
	reflection.Register(s)

	return s
}
