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

type Orders struct {
	next   application.Orders
	logger *zap.Logger
	tracer trace.Tracer
}

var _ application.Orders = (*Orders)(nil)

func NewOrders(next application.Orders, logger *zap.Logger, tracer trace.Tracer) *Orders {
	return &Orders{next: next, logger: logger.Named("orders"), tracer: tracer}
}

func (o *Orders) CreateOrder(ctx context.Context, candidate *domain.Order) (*domain.Order, error) {
	var attrs []attribute.KeyValue
	var fields []zap.Field
	if candidate != nil {
		attrs = append(attrs,
			attribute.String("customer.id", candidate.CustomerID),
			attribute.Int("order.items", len(candidate.Items)),
			attribute.String("order.total", candidate.TotalAmount.String()),
		)
		fields = append(fields,
			zap.String("customer_id", candidate.CustomerID),
			zap.Int("items", len(candidate.Items)),
			zap.String("total", candidate.TotalAmount.String()),
		)
	}
	ctx, span := o.tracer.Start(ctx, "orders.create", trace.WithAttributes(attrs...))
	defer span.End()

	order, err := o.next.CreateOrder(ctx, candidate)
	if err == nil {
		span.SetAttributes(attribute.String("order.id", order.ID.String()))
		fields = append(fields, zap.String("order_id", order.ID.String()))
	}
	finish(span, o.logger, "create_order", err, fields...)
	return order, err
}

func (o *Orders) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	ctx, span := o.tracer.Start(ctx, "orders.get",
		trace.WithAttributes(attribute.String("order.id", id.String())))
	defer span.End()

	order, err := o.next.GetOrder(ctx, id)
	if err != nil {
		finish(span, o.logger, "get_order", err, zap.String("order_id", id.String()))
	}
	return order, err
}

func (o *Orders) ListOrders(ctx context.Context, page, pageSize int) ([]domain.Order, error) {
	ctx, span := o.tracer.Start(ctx, "orders.list", trace.WithAttributes(
		attribute.Int("page", page),
		attribute.Int("page_size", pageSize),
	))
	defer span.End()

	orders, err := o.next.ListOrders(ctx, page, pageSize)
	if err != nil {
		finish(span, o.logger, "list_orders", err, zap.Int("page", page), zap.Int("page_size", pageSize))
		return nil, err
	}
	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	return orders, nil
}

func (o *Orders) UpdateOrderStatus(ctx context.Context, id uuid.UUID, statusName string) (*domain.Order, error) {
	ctx, span := o.tracer.Start(ctx, "orders.update_status", trace.WithAttributes(
		attribute.String("order.id", id.String()),
		attribute.String("order.status", statusName),
	))
	defer span.End()

	order, err := o.next.UpdateOrderStatus(ctx, id, statusName)
	finish(span, o.logger, "update_order_status", err,
		zap.String("order_id", id.String()),
		zap.String("status", statusName))
	return order, err
}
