package domain

import (
	"context"

	"github.com/google/uuid"
)

type InventoryRepository interface {
	// Get returns nil, nil when the product has no inventory row.
	Get(ctx context.Context, productID string) (*InventoryItem, error)
	// Update locks the rows of productIDs for the duration of fn. Rows that do not
	// exist are absent from the map. Mutations made by fn are persisted only when
	// fn returns nil; otherwise nothing is written.
	Update(ctx context.Context, productIDs []string, fn func(items map[string]*InventoryItem) error) error
	// InsertMissing inserts items whose product id is not yet present.
	InsertMissing(ctx context.Context, items []*InventoryItem) error
}

type OrderRepository interface {
	Insert(ctx context.Context, o *Order) error
	// GetByID returns nil, nil when the order does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// List returns orders newest-created first.
	List(ctx context.Context, offset, limit int) ([]Order, error)
	// UpdateStatus writes o.Status and o.UpdatedAt only if the stored status is
	// still from; otherwise it returns ErrStatusConflict (or ErrOrderNotFound).
	UpdateStatus(ctx context.Context, o *Order, from OrderStatus) error
}

type PaymentRepository interface {
	Insert(ctx context.Context, tx *PaymentTransaction) error
	// GetByID returns nil, nil when the transaction does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*PaymentTransaction, error)
}

// AvailabilityCache mirrors recent availability reads. It is never the system of record.
type AvailabilityCache interface {
	Get(ctx context.Context, productID string) (Availability, bool, error)
	// SetIfAbsent is used by readers so a read racing a write cannot overwrite
	// the snapshot installed by the write.
	SetIfAbsent(ctx context.Context, a Availability) error
	Set(ctx context.Context, a Availability) error
	Delete(ctx context.Context, productID string) error
}

type OutboxRepository interface {
	Insert(ctx context.Context, msg OutboxMessage) error
	GetPendingBatch(ctx context.Context, maxRetry, batchSize int) ([]OutboxMessage, error)
	Save(ctx context.Context, msg OutboxMessage) error
}

type OutboxMessage struct {
	ID             uuid.UUID
	Type           string
	PayloadJSON    string
	OccurredAtUtc  int64 // unix seconds
	RetryCount     int
	ProcessedAtUtc *int64
}
