package logger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey string

const operationIDKey ctxKey = "operation_id"

func WithOperationID(ctx context.Context, operationID string) context.Context {
	return context.WithValue(ctx, operationIDKey, operationID)
}

func OperationIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(operationIDKey).(string); ok {
		return v
	}
	return ""
}

// FromCtx returns logger with operation_id automatically added
func FromCtx(ctx context.Context) *zap.Logger {
	opID := OperationIDFrom(ctx)
	if opID == "" {
		return L()
	}
	return L().With(zap.String("operation_id", opID))
}

// StartOperation tags ctx with a fresh operation id and logs the start of name.
// The returned func logs completion (or failure) with the elapsed time.
func StartOperation(ctx context.Context, name string) (context.Context, func(err error)) {
	opID := OperationIDFrom(ctx)
	if opID == "" {
		opID = uuid.New().String()
		ctx = WithOperationID(ctx, opID)
	}

	start := time.Now()
	log := FromCtx(ctx).With(zap.String("operation", name))
	log.Debug("operation started")

	return ctx, func(err error) {
		if err != nil {
			log.Error("operation failed",
				zap.Error(err),
				zap.Duration("duration", time.Since(start)),
			)
			return
		}
		log.Info("operation finished", zap.Duration("duration", time.Since(start)))
	}
}
