package reactionrole

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// OperationResult carries the outcome of a reaction-role operation. A
// Failure is a first-class non-error outcome (no binding, no match, usage
// error); an Error is a real external failure.
type OperationResult struct {
	Success string
	Failure string
	Error   error
}

type operationFunc func(ctx context.Context) (OperationResult, error)

// wrapReactionRoleOperation is the shared tracing/logging wrapper around
// reaction-role operations.
func wrapReactionRoleOperation(
	ctx context.Context,
	operationName string,
	fn operationFunc,
	logger *slog.Logger,
	tracer trace.Tracer,
) (result OperationResult, err error) {
	if fn == nil {
		return OperationResult{}, errors.New("operation function is nil")
	}

	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}

	ctx, span := tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		duration := time.Since(start)
		if logger != nil {
			logger.DebugContext(ctx, fmt.Sprintf("Completed %s", operationName),
				slog.String("duration_sec", fmt.Sprintf("%.2f", duration.Seconds())),
			)
		}
	}()

	result, err = fn(ctx)
	if err != nil {
		span.RecordError(err)
		if logger != nil {
			logger.ErrorContext(ctx, fmt.Sprintf("Operation %s returned an error", operationName),
				slog.Any("error", err))
		}
	}
	return result, err
}
