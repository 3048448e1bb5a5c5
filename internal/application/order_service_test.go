package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

// stepClock advances one second per call.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func newOrderService(f *fixture, releaseOnCancel bool) *OrderService {
	return NewOrderService(f.orderRepo, f.reservations, f.outbox, OrderServiceOptions{
		ReleaseOnCancel: releaseOnCancel,
		Now:             newStepClock().Now,
	})
}

func candidate(customer string, total string, items ...domain.OrderItem) *domain.Order {
	return &domain.Order{
		CustomerID:  customer,
		Items:       items,
		TotalAmount: decimal.RequireFromString(total),
	}
}

func line(productID string, qty int, price string) domain.OrderItem {
	return domain.OrderItem{
		ProductID: productID,
		Quantity:  qty,
		UnitPrice: decimal.RequireFromString(price),
	}
}

func TestCreateOrder_ReservesAndStores(t *testing.T) {
	f := newFixture(t, map[string]int{"PROD001": 100})
	svc := newOrderService(f, false)
	ctx := context.Background()

	o, err := svc.CreateOrder(ctx, candidate("c-1", "20.00", line("PROD001", 2, "10.00")))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, o.ID)
	assert.Equal(t, domain.OrderPending, o.Status)
	assert.False(t, o.CreatedAt.IsZero())
	assert.Equal(t, o.CreatedAt, o.UpdatedAt)
	require.Len(t, o.Items, 1)
	assert.Equal(t, o.ID, o.Items[0].OrderID)
	assert.NotEqual(t, uuid.Nil, o.Items[0].ID)

	row := f.row(t, "PROD001")
	assert.Equal(t, 98, row.Available)
	assert.Equal(t, 2, row.Reserved)

	got, err := svc.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(20)))

	assert.Equal(t, 1, f.outboxTypes()["OrderCreated"])
}

func TestCreateOrder_TotalMismatchLeavesInventory(t *testing.T) {
	f := newFixture(t, map[string]int{"PROD001": 100})
	svc := newOrderService(f, false)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, candidate("c-1", "21.00", line("PROD001", 2, "10.00")))
	assert.ErrorIs(t, err, domain.ErrTotalMismatch)

	row := f.row(t, "PROD001")
	assert.Equal(t, 100, row.Available)
	assert.Equal(t, 0, row.Reserved)

	list, err := svc.ListOrders(ctx, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateOrder_ValidationErrors(t *testing.T) {
	f := newFixture(t, map[string]int{"PROD001": 100})
	svc := newOrderService(f, false)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)

	_, err = svc.CreateOrder(ctx, candidate(" ", "10", line("PROD001", 1, "10")))
	assert.ErrorIs(t, err, domain.ErrInvalidCustomer)

	_, err = svc.CreateOrder(ctx, candidate("c", "0"))
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)

	_, err = svc.CreateOrder(ctx, candidate("c", "0", line("PROD001", 0, "10")))
	assert.ErrorIs(t, err, domain.ErrInvalidItem)

	assert.Equal(t, 100, f.row(t, "PROD001").Available)
}

func TestCreateOrder_InsufficientStockStoresNothing(t *testing.T) {
	f := newFixture(t, map[string]int{"PROD001": 100, "PROD009": 0})
	svc := newOrderService(f, false)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, candidate("c-1", "15.00",
		line("PROD001", 1, "10.00"),
		line("PROD009", 1, "5.00"),
	))
	require.ErrorIs(t, err, domain.ErrInsufficientAvailable)
	var ie *domain.ItemError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "PROD009", ie.ProductID)

	assert.Equal(t, 100, f.row(t, "PROD001").Available)
	assert.Equal(t, 0, f.row(t, "PROD001").Reserved)

	list, err := svc.ListOrders(ctx, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, f.outboxTypes()["OrderCreated"])
}

type failingInsertRepo struct {
	domain.OrderRepository
}

func (failingInsertRepo) Insert(context.Context, *domain.Order) error {
	return errors.New("disk full")
}

func TestCreateOrder_InsertFailureReleasesStock(t *testing.T) {
	f := newFixture(t, map[string]int{"PROD001": 10})
	svc := NewOrderService(failingInsertRepo{f.orderRepo}, f.reservations, f.outbox, OrderServiceOptions{})

	_, err := svc.CreateOrder(context.Background(), candidate("c", "30", line("PROD001", 3, "10")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	row := f.row(t, "PROD001")
	assert.Equal(t, 10, row.Available)
	assert.Equal(t, 0, row.Reserved)
}

func TestGetOrder_NotFound(t *testing.T) {
	f := newFixture(t, nil)
	svc := newOrderService(f, false)

	_, err := svc.GetOrder(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestListOrders_NewestFirstAndPaged(t *testing.T) {
	f := newFixture(t, map[string]int{"PROD001": 100})
	svc := newOrderService(f, false)
	ctx := context.Background()

	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		o, err := svc.CreateOrder(ctx, candidate("c", "1", line("PROD001", 1, "1")))
		require.NoError(t, err)
		ids = append(ids, o.ID)
	}

	first, err := svc.ListOrders(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, ids[4], first[0].ID)
	assert.Equal(t, ids[3], first[1].ID)

	last, err := svc.ListOrders(ctx, 3, 2)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, ids[0], last[0].ID)

	beyond, err := svc.ListOrders(ctx, 9, 2)
	require.NoError(t, err)
	assert.Empty(t, beyond)

	defaults, err := svc.ListOrders(ctx, 0, -1)
	require.NoError(t, err)
	assert.Len(t, defaults, 5)
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newFixture(t, map[string]int{"PROD001": 100})
	svc := newOrderService(f, false)
	ctx := context.Background()

	o, err := svc.CreateOrder(ctx, candidate("c", "10", line("PROD001", 1, "10")))
	require.NoError(t, err)

	updated, err := svc.UpdateOrderStatus(ctx, o.ID, "shipped")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderShipped, updated.Status)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	stored, err := svc.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderShipped, stored.Status)

	payloads := f.outboxPayloads(t, "OrderStatusChanged")
	require.Len(t, payloads, 1)
	assert.Equal(t, "Pending", payloads[0]["from"])
	assert.Equal(t, "Shipped", payloads[0]["to"])
}

func TestUpdateOrderStatus_InvalidNameCheckedFirst(t *testing.T) {
	f := newFixture(t, nil)
	svc := newOrderService(f, false)

	_, err := svc.UpdateOrderStatus(context.Background(), uuid.New(), "Bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = svc.UpdateOrderStatus(context.Background(), uuid.New(), "Shipped")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestUpdateOrderStatus_CancelKeepsReservationByDefault(t *testing.T) {
	f := newFixture(t, map[string]int{"PROD001": 10})
	svc := newOrderService(f, false)
	ctx := context.Background()

	o, err := svc.CreateOrder(ctx, candidate("c", "40", line("PROD001", 4, "10")))
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(ctx, o.ID, "Cancelled")
	require.NoError(t, err)

	row := f.row(t, "PROD001")
	assert.Equal(t, 6, row.Available)
	assert.Equal(t, 4, row.Reserved)
}

func TestUpdateOrderStatus_ReleaseOnCancel(t *testing.T) {
	f := newFixture(t, map[string]int{"PROD001": 10})
	svc := newOrderService(f, true)
	ctx := context.Background()

	o, err := svc.CreateOrder(ctx, candidate("c", "40", line("PROD001", 4, "10")))
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(ctx, o.ID, "Cancelled")
	require.NoError(t, err)

	row := f.row(t, "PROD001")
	assert.Equal(t, 10, row.Available)
	assert.Equal(t, 0, row.Reserved)

	// cancelling again is a no-op on stock
	_, err = svc.UpdateOrderStatus(ctx, o.ID, "Cancelled")
	require.NoError(t, err)
	assert.Equal(t, 10, f.row(t, "PROD001").Available)
}

func TestUpdateOrderStatus_ConcurrentCancelReleasesOnce(t *testing.T) {
	f := newFixture(t, map[string]int{"PROD001": 10})
	svc := newOrderService(f, true)
	ctx := context.Background()

	o, err := svc.CreateOrder(ctx, candidate("c", "40", line("PROD001", 4, "10")))
	require.NoError(t, err)
	// a second order keeps reserved stock above what the first holds
	_, err = svc.CreateOrder(ctx, candidate("c", "40", line("PROD001", 4, "10")))
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.UpdateOrderStatus(ctx, o.ID, "Cancelled")
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrStatusConflict)
			}
		}()
	}
	wg.Wait()

	row := f.row(t, "PROD001")
	assert.Equal(t, 6, row.Available)
	assert.Equal(t, 4, row.Reserved)
}
