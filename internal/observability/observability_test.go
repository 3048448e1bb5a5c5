package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rodolfodevapp/eventshop-messaging-go/core/primitives"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/application"
	"github.com/RodolfoDevApp/eventshop-orders-go/internal/config"
	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

type stubInventory struct {
	err error
}

func (s stubInventory) GetAvailability(_ context.Context, id string) (domain.Availability, error) {
	return domain.Availability{ProductID: id, AvailableQuantity: 10}, s.err
}

func (s stubInventory) Reserve(_ context.Context, id string, qty int) (domain.Availability, error) {
	if s.err != nil {
		return domain.Availability{}, s.err
	}
	return domain.Availability{ProductID: id, AvailableQuantity: 10 - qty, ReservedQuantity: qty}, nil
}

func (s stubInventory) Release(ctx context.Context, id string, qty int) (domain.Availability, error) {
	return s.Reserve(ctx, id, -qty)
}

type stubOrders struct {
	application.Orders
	err error
}

func (s stubOrders) UpdateOrderStatus(_ context.Context, id uuid.UUID, name string) (*domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Order{ID: id, Status: domain.OrderStatus(name)}, nil
}

type stubPayments struct {
	application.Payments
}

func (stubPayments) ProcessPayment(_ context.Context, req application.PaymentRequest) (*domain.PaymentTransaction, bool, error) {
	return &domain.PaymentTransaction{
		TransactionID: uuid.New(),
		OrderID:       req.OrderID.String(),
		Amount:        req.Amount,
		Status:        domain.PaymentFailed,
	}, false, nil
}

type failingOutbox struct{}

func (failingOutbox) Enqueue(context.Context, ...primitives.Event) error {
	return errors.New("broker table locked")
}

func newRecorders() (*zap.Logger, *observer.ObservedLogs, *tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	core, logs := observer.New(zapcore.DebugLevel)
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	return zap.New(core), logs, rec, tp
}

func TestInventory_RecordsSpanAndLog(t *testing.T) {
	logger, logs, rec, tp := newRecorders()
	inv := NewInventory(stubInventory{}, logger, tp.Tracer("test"))

	a, err := inv.Reserve(context.Background(), "PROD001", 3)
	require.NoError(t, err)
	assert.Equal(t, 7, a.AvailableQuantity)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "inventory.reserve", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)

	entries := logs.FilterMessage("reserve completed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "PROD001", entries[0].ContextMap()["product_id"])
}

func TestInventory_BusinessErrorIsInfo(t *testing.T) {
	logger, logs, rec, tp := newRecorders()
	inv := NewInventory(stubInventory{err: domain.NewItemError("P", domain.ErrInsufficientAvailable)}, logger, tp.Tracer("test"))

	_, err := inv.Reserve(context.Background(), "P", 3)
	require.ErrorIs(t, err, domain.ErrInsufficientAvailable)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)

	rejected := logs.FilterMessage("reserve rejected").All()
	require.Len(t, rejected, 1)
	assert.Equal(t, zapcore.InfoLevel, rejected[0].Level)
}

func TestOrders_InfrastructureErrorIsError(t *testing.T) {
	logger, logs, _, tp := newRecorders()
	orders := NewOrders(stubOrders{err: errors.New("connection reset")}, logger, tp.Tracer("test"))

	_, err := orders.UpdateOrderStatus(context.Background(), uuid.New(), "Shipped")
	require.Error(t, err)

	failed := logs.FilterMessage("update_order_status failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.ErrorLevel, failed[0].Level)
}

func TestPayments_AttributesOutcome(t *testing.T) {
	logger, _, rec, tp := newRecorders()
	payments := NewPayments(stubPayments{}, logger, tp.Tracer("test"))

	_, ok, err := payments.ProcessPayment(context.Background(), application.PaymentRequest{
		OrderID: uuid.New(),
		Amount:  decimal.NewFromInt(5),
		Method:  "PayPal",
	})
	require.NoError(t, err)
	assert.False(t, ok)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	var status string
	for _, kv := range spans[0].Attributes() {
		if kv.Key == "payment.status" {
			status = kv.Value.AsString()
		}
	}
	assert.Equal(t, "Failed", status)
}

func TestOutbox_LogsFailures(t *testing.T) {
	logger, logs, _, _ := newRecorders()
	w := NewOutbox(failingOutbox{}, logger)

	err := w.Enqueue(context.Background(), domain.NewInventoryAdjustedEvent(domain.Availability{ProductID: "P"}, domain.ReasonReserved))
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("failed to record integration events").Len())
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(config.Config{LogLevel: "debug", LogFormat: "console"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = NewLogger(config.Config{LogLevel: "loud"})
	assert.Error(t, err)
}

func TestSetup_NoEndpointIsNoop(t *testing.T) {
	ctx := context.Background()
	shutdownTracing, err := SetupTracing(ctx, config.Config{})
	require.NoError(t, err)
	shutdownLogging, err := SetupLogging(ctx, config.Config{})
	require.NoError(t, err)

	assert.NoError(t, JoinShutdown(shutdownTracing, shutdownLogging)(ctx))
}
