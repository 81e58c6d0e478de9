package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/chirper-server/internal/logger"
)

// RecoveryHandler logs a recovered panic with its stack and answers the call
// with codes.Internal.
func RecoveryHandler(l *logger.Logger) recovery.RecoveryHandlerFuncContext {
	return func(ctx context.Context, p any) error {
		l.ErrorContext(ctx, "gRPC: recovered from panic",
			"panic", fmt.Sprint(p),
			"stack", string(debug.Stack()))
		return status.Error(codes.Internal, "internal error")
	}
}
