package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

type PgOrderRepository struct {
	db *sql.DB
}

func NewPgOrderRepository(db *sql.DB) *PgOrderRepository {
	return &PgOrderRepository{db: db}
}

// Insert writes the order and its items in one transaction.
func (r *PgOrderRepository) Insert(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	q := `
        insert into orders (id, customer_id, total_amount, status, created_at, updated_at)
        values ($1,$2,$3,$4,$5,$6)
    `
	if _, err := tx.ExecContext(
		ctx, q,
		o.ID,
		o.CustomerID,
		o.TotalAmount,
		string(o.Status),
		o.CreatedAt,
		o.UpdatedAt,
	); err != nil {
		return err
	}

	iq := `
        insert into order_items (id, order_id, position, product_id, quantity, unit_price)
        values ($1,$2,$3,$4,$5,$6)
    `
	for i, it := range o.Items {
		id := it.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		if _, err := tx.ExecContext(
			ctx, iq,
			id, o.ID, i, it.ProductID, it.Quantity, it.UnitPrice,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PgOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	q := `
        select id, customer_id, total_amount, status, created_at, updated_at
        from orders
        where id = $1
    `
	var o domain.Order
	var status string
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&o.ID,
		&o.CustomerID,
		&o.TotalAmount,
		&status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)

	items, err := r.loadItems(ctx, []string{o.ID.String()})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

func (r *PgOrderRepository) List(ctx context.Context, offset, limit int) ([]domain.Order, error) {
	q := `
        select id, customer_id, total_amount, status, created_at, updated_at
        from orders
        order by created_at desc, id
        offset $1 limit $2
    `
	rows, err := r.db.QueryContext(ctx, q, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	ids := []string{}
	for rows.Next() {
		var o domain.Order
		var status string
		if err := rows.Scan(
			&o.ID,
			&o.CustomerID,
			&o.TotalAmount,
			&status,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		o.Status = domain.OrderStatus(status)
		orders = append(orders, o)
		ids = append(ids, o.ID.String())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

func (r *PgOrderRepository) UpdateStatus(ctx context.Context, o *domain.Order, from domain.OrderStatus) error {
	q := `
        update orders
        set status = $2,
            updated_at = $3
        where id = $1 and status = $4
    `
	res, err := r.db.ExecContext(ctx, q, o.ID, string(o.Status), o.UpdatedAt, string(from))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `select exists(select 1 from orders where id = $1)`, o.ID).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return domain.ErrStatusConflict
	}
	return domain.ErrOrderNotFound
}

func (r *PgOrderRepository) loadItems(ctx context.Context, orderIDs []string) (map[uuid.UUID][]domain.OrderItem, error) {
	q := `
        select id, order_id, product_id, quantity, unit_price
        from order_items
        where order_id = any($1::uuid[])
        order by order_id, position
    `
	rows, err := r.db.QueryContext(ctx, q, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		result[it.OrderID] = append(result[it.OrderID], it)
	}
	return result, rows.Err()
}
