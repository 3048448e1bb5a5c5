package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Orders is the order surface offered to the HTTP layer.
type Orders interface {
	CreateOrder(ctx context.Context, candidate *domain.Order) (*domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, page, pageSize int) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, statusName string) (*domain.Order, error)
}

type OrderServiceOptions struct {
	// ReleaseOnCancel returns the reserved stock of a pending order to
	// available when the order is cancelled.
	ReleaseOnCancel bool
	Now             func() time.Time
}

type OrderService struct {
	orders       domain.OrderRepository
	reservations Reservations
	outbox       OutboxWriter
	opts         OrderServiceOptions
}

func NewOrderService(
	orders domain.OrderRepository,
	reservations Reservations,
	outbox OutboxWriter,
	opts OrderServiceOptions,
) *OrderService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &OrderService{
		orders:       orders,
		reservations: reservations,
		outbox:       outbox,
		opts:         opts,
	}
}

// CreateOrder validates the candidate, reserves stock for all of its items and
// persists it. An order is stored only if its whole reservation succeeded.
func (s *OrderService) CreateOrder(ctx context.Context, candidate *domain.Order) (*domain.Order, error) {
	if candidate == nil {
		return nil, domain.ErrEmptyOrder
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	order := *candidate
	order.Items = append([]domain.OrderItem(nil), candidate.Items...)
	demands := order.Demands()

	if _, err := s.reservations.ReserveMany(ctx, demands); err != nil {
		return nil, err
	}

	order.Place(s.opts.Now().UTC())

	if err := s.orders.Insert(ctx, &order); err != nil {
		insertErr := fmt.Errorf("persist order: %w", err)
		if _, relErr := s.reservations.ReleaseMany(ctx, demands); relErr != nil {
			return nil, errors.Join(insertErr, fmt.Errorf("compensate reservation: %w", relErr))
		}
		return nil, insertErr
	}

	enqueue(ctx, s.outbox, domain.NewOrderCreatedEvent(&order))
	return &order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

// ListOrders pages through orders newest first. Non-positive page or page
// size fall back to the defaults.
func (s *OrderService) ListOrders(ctx context.Context, page, pageSize int) ([]domain.Order, error) {
	if page <= 0 {
		page = DefaultPage
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return s.orders.List(ctx, (page-1)*pageSize, pageSize)
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, statusName string) (*domain.Order, error) {
	status, err := domain.ParseOrderStatus(statusName)
	if err != nil {
		return nil, err
	}

	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	from := o.Status
	o.SetStatus(status, s.opts.Now().UTC())
	if err := s.orders.UpdateStatus(ctx, o, from); err != nil {
		return nil, err
	}

	// the conditional update above makes this caller the only one moving the
	// order out of Pending, so stock is released at most once
	if s.opts.ReleaseOnCancel && status == domain.OrderCancelled && from == domain.OrderPending {
		if _, err := s.reservations.ReleaseMany(ctx, o.Demands()); err != nil {
			releaseErr := fmt.Errorf("release reserved stock: %w", err)
			reverted := *o
			reverted.SetStatus(from, s.opts.Now().UTC())
			if revErr := s.orders.UpdateStatus(ctx, &reverted, status); revErr != nil {
				return nil, errors.Join(releaseErr, fmt.Errorf("revert status: %w", revErr))
			}
			return nil, releaseErr
		}
	}

	if from != status {
		enqueue(ctx, s.outbox, domain.NewOrderStatusChangedEvent(o.ID, from, status, o.UpdatedAt))
	}
	return o, nil
}
