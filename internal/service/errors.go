package service

import (
	"context"
	"log/slog"

	"stevensfit/fitness-api/internal/apperror"
	"stevensfit/fitness-api/internal/logging"
)

// persistenceFailure logs an unexpected store error and wraps it for the caller.
func persistenceFailure(ctx context.Context, op string, err error) error {
	logging.FromContext(ctx).Error("store operation failed",
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
	return apperror.Persistence(op, err)
}
