package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/application"
	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

// Inventory wraps application.Inventory with a span and a log line per call.
type Inventory struct {
	next   application.Inventory
	logger *zap.Logger
	tracer trace.Tracer
}

var _ application.Inventory = (*Inventory)(nil)

func NewInventory(next application.Inventory, logger *zap.Logger, tracer trace.Tracer) *Inventory {
	return &Inventory{next: next, logger: logger.Named("inventory"), tracer: tracer}
}

func (o *Inventory) GetAvailability(ctx context.Context, productID string) (domain.Availability, error) {
	ctx, span := o.tracer.Start(ctx, "inventory.get_availability",
		trace.WithAttributes(attribute.String("product.id", productID)))
	defer span.End()

	a, err := o.next.GetAvailability(ctx, productID)
	if err != nil {
		finish(span, o.logger, "get_availability", err, zap.String("product_id", productID))
		return a, err
	}
	span.SetAttributes(attribute.Int("inventory.available", a.AvailableQuantity))
	// reads are frequent; keep them out of info
	o.logger.Debug("availability read", zap.String("product_id", productID), zap.Int("available", a.AvailableQuantity))
	return a, nil
}

func (o *Inventory) Reserve(ctx context.Context, productID string, qty int) (domain.Availability, error) {
	return o.change(ctx, "reserve", productID, qty, o.next.Reserve)
}

func (o *Inventory) Release(ctx context.Context, productID string, qty int) (domain.Availability, error) {
	return o.change(ctx, "release", productID, qty, o.next.Release)
}

func (o *Inventory) change(
	ctx context.Context,
	op, productID string,
	qty int,
	fn func(context.Context, string, int) (domain.Availability, error),
) (domain.Availability, error) {
	ctx, span := o.tracer.Start(ctx, "inventory."+op, trace.WithAttributes(
		attribute.String("product.id", productID),
		attribute.Int("inventory.quantity", qty),
	))
	defer span.End()

	o.logger.Debug(op+" requested", zap.String("product_id", productID), zap.Int("quantity", qty))
	a, err := fn(ctx, productID, qty)
	fields := []zap.Field{zap.String("product_id", productID), zap.Int("quantity", qty)}
	if err == nil {
		span.SetAttributes(
			attribute.Int("inventory.available", a.AvailableQuantity),
			attribute.Int("inventory.reserved", a.ReservedQuantity),
		)
		fields = append(fields, zap.Int("available", a.AvailableQuantity), zap.Int("reserved", a.ReservedQuantity))
	}
	finish(span, o.logger, op, err, fields...)
	return a, err
}
