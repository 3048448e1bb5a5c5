package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

type PgPaymentRepository struct {
	db *sql.DB
}

func NewPgPaymentRepository(db *sql.DB) *PgPaymentRepository {
	return &PgPaymentRepository{db: db}
}

func (r *PgPaymentRepository) Insert(ctx context.Context, tx *domain.PaymentTransaction) error {
	q := `
        insert into payment_transactions
        (transaction_id, order_id, amount, method, status, processed_at)
        values ($1,$2,$3,$4,$5,$6)
    `
	_, err := r.db.ExecContext(
		ctx, q,
		tx.TransactionID,
		tx.OrderID,
		tx.Amount,
		tx.Method,
		string(tx.Status),
		tx.ProcessedAt,
	)
	return err
}

func (r *PgPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentTransaction, error) {
	q := `
        select transaction_id, order_id, amount, method, status, processed_at
        from payment_transactions
        where transaction_id = $1
    `
	var tx domain.PaymentTransaction
	var status string
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&tx.TransactionID,
		&tx.OrderID,
		&tx.Amount,
		&tx.Method,
		&status,
		&tx.ProcessedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	tx.Status = domain.PaymentStatus(status)
	return &tx, nil
}
