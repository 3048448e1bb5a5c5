package observability

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/application"
	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

type Payments struct {
	next   application.Payments
	logger *zap.Logger
	tracer trace.Tracer
}

var _ application.Payments = (*Payments)(nil)

func NewPayments(next application.Payments, logger *zap.Logger, tracer trace.Tracer) *Payments {
	return &Payments{next: next, logger: logger.Named("payments"), tracer: tracer}
}

func (o *Payments) ProcessPayment(ctx context.Context, req application.PaymentRequest) (*domain.PaymentTransaction, bool, error) {
	ctx, span := o.tracer.Start(ctx, "payments.process", trace.WithAttributes(
		attribute.String("order.id", req.OrderID.String()),
		attribute.String("payment.method", req.Method),
		attribute.String("payment.amount", req.Amount.String()),
	))
	defer span.End()

	tx, ok, err := o.next.ProcessPayment(ctx, req)
	fields := []zap.Field{
		zap.String("order_id", req.OrderID.String()),
		zap.String("method", req.Method),
		zap.String("amount", req.Amount.String()),
	}
	if err == nil {
		span.SetAttributes(
			attribute.String("payment.transaction_id", tx.TransactionID.String()),
			attribute.String("payment.status", string(tx.Status)),
		)
		fields = append(fields,
			zap.String("transaction_id", tx.TransactionID.String()),
			zap.String("status", string(tx.Status)))
	}
	finish(span, o.logger, "process_payment", err, fields...)
	return tx, ok, err
}

func (o *Payments) GetPaymentStatus(ctx context.Context, transactionID uuid.UUID) (*domain.PaymentTransaction, error) {
	ctx, span := o.tracer.Start(ctx, "payments.get",
		trace.WithAttributes(attribute.String("payment.transaction_id", transactionID.String())))
	defer span.End()

	tx, err := o.next.GetPaymentStatus(ctx, transactionID)
	if err != nil {
		finish(span, o.logger, "get_payment_status", err, zap.String("transaction_id", transactionID.String()))
	}
	return tx, err
}
