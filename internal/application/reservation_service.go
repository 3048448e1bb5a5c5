package application

import (
	"context"

	"github.com/rodolfodevapp/eventshop-messaging-go/core/primitives"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

// Inventory is the inventory surface offered to the HTTP layer.
type Inventory interface {
	GetAvailability(ctx context.Context, productID string) (domain.Availability, error)
	Reserve(ctx context.Context, productID string, qty int) (domain.Availability, error)
	Release(ctx context.Context, productID string, qty int) (domain.Availability, error)
}

// Reservations is what the order workflow needs from the reservation engine.
type Reservations interface {
	ReserveMany(ctx context.Context, demands []domain.Demand) ([]domain.Availability, error)
	ReleaseMany(ctx context.Context, demands []domain.Demand) ([]domain.Availability, error)
}

type ReservationService struct {
	store  *InventoryStore
	outbox OutboxWriter
}

func NewReservationService(store *InventoryStore, outbox OutboxWriter) *ReservationService {
	return &ReservationService{store: store, outbox: outbox}
}

func (s *ReservationService) GetAvailability(ctx context.Context, productID string) (domain.Availability, error) {
	return s.store.GetAvailability(ctx, productID)
}

func (s *ReservationService) Reserve(ctx context.Context, productID string, qty int) (domain.Availability, error) {
	snaps, err := s.apply(ctx, []domain.Demand{{ProductID: productID, Quantity: qty}}, false)
	if err != nil {
		return domain.Availability{}, err
	}
	return snaps[0], nil
}

func (s *ReservationService) Release(ctx context.Context, productID string, qty int) (domain.Availability, error) {
	snaps, err := s.apply(ctx, []domain.Demand{{ProductID: productID, Quantity: qty}}, true)
	if err != nil {
		return domain.Availability{}, err
	}
	return snaps[0], nil
}

// ReserveMany reserves every demand or none. All rows are checked in demand
// order before any is changed; the first failing demand's error is returned.
func (s *ReservationService) ReserveMany(ctx context.Context, demands []domain.Demand) ([]domain.Availability, error) {
	return s.apply(ctx, demands, false)
}

// ReleaseMany is the all-or-nothing inverse of ReserveMany.
func (s *ReservationService) ReleaseMany(ctx context.Context, demands []domain.Demand) ([]domain.Availability, error) {
	return s.apply(ctx, demands, true)
}

func (s *ReservationService) apply(ctx context.Context, demands []domain.Demand, release bool) ([]domain.Availability, error) {
	if len(demands) == 0 {
		return nil, nil
	}

	snaps, err := s.store.Mutate(ctx, domain.ProductIDs(demands), func(items map[string]*domain.InventoryItem) error {
		if err := domain.CheckDemands(items, demands, release); err != nil {
			return err
		}
		for _, d := range demands {
			item := items[d.ProductID]
			var err error
			if release {
				err = item.Release(d.Quantity)
			} else {
				err = item.Reserve(d.Quantity)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	reason := domain.ReasonReserved
	if release {
		reason = domain.ReasonReleased
	}
	evs := make([]primitives.Event, 0, len(snaps))
	for _, a := range snaps {
		evs = append(evs, domain.NewInventoryAdjustedEvent(a, reason))
	}
	enqueue(ctx, s.outbox, evs...)

	return snaps, nil
}
