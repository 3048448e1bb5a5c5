package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

type PaymentRepository struct {
	mu  sync.RWMutex
	txs map[uuid.UUID]domain.PaymentTransaction
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{txs: make(map[uuid.UUID]domain.PaymentTransaction)}
}

func (r *PaymentRepository) Insert(ctx context.Context, tx *domain.PaymentTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs[tx.TransactionID] = *tx
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tx, ok := r.txs[id]
	if !ok {
		return nil, nil
	}
	return &tx, nil
}

// Count is used by tests to assert exactly-once persistence.
func (r *PaymentRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.txs)
}
