package observability

import (
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

// finish closes out one observed call: the span gets the outcome and the log
// line gets a level matching who is at fault.
func finish(span trace.Span, logger *zap.Logger, op string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("op", op))
	if err == nil {
		span.SetStatus(codes.Ok, "")
		logger.Info(op+" completed", fields...)
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	fields = append(fields, zap.Error(err))

	switch {
	case domain.IsValidation(err), domain.IsNotFound(err), domain.IsConflict(err):
		logger.Info(op+" rejected", fields...)
	default:
		logger.Error(op+" failed", fields...)
	}
}
