package db

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

type PgInventoryRepository struct {
	db *sql.DB
}

func NewPgInventoryRepository(db *sql.DB) *PgInventoryRepository {
	return &PgInventoryRepository{db: db}
}

func (r *PgInventoryRepository) Get(ctx context.Context, productID string) (*domain.InventoryItem, error) {
	query := `
        select product_id, available_quantity, reserved_quantity, updated_at_utc
        from inventory_items
        where product_id = $1
    `
	var item domain.InventoryItem
	err := r.db.QueryRowContext(ctx, query, productID).Scan(
		&item.ProductID,
		&item.Available,
		&item.Reserved,
		&item.UpdatedAtUtc,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update locks the rows with select ... for update in product id order, so two
// transactions touching overlapping products always lock in the same order.
func (r *PgInventoryRepository) Update(
	ctx context.Context,
	productIDs []string,
	fn func(items map[string]*domain.InventoryItem) error,
) error {
	ids := append([]string(nil), productIDs...)
	sort.Strings(ids)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        select product_id, available_quantity, reserved_quantity, updated_at_utc
        from inventory_items
        where product_id = any($1)
        order by product_id
        for update
    `
	rows, err := tx.QueryContext(ctx, query, ids)
	if err != nil {
		return err
	}

	items := make(map[string]*domain.InventoryItem, len(ids))
	for rows.Next() {
		var item domain.InventoryItem
		if err := rows.Scan(
			&item.ProductID,
			&item.Available,
			&item.Reserved,
			&item.UpdatedAtUtc,
		); err != nil {
			rows.Close()
			return err
		}
		items[item.ProductID] = &item
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	if err := fn(items); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
        update inventory_items
        set available_quantity = $2,
            reserved_quantity = $3,
            updated_at_utc = $4
        where product_id = $1
    `)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, id := range ids {
		item, ok := items[id]
		if !ok {
			continue
		}
		if _, err := stmt.ExecContext(ctx, item.ProductID, item.Available, item.Reserved, item.UpdatedAtUtc); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// InsertMissing inserts items whose product id is not yet present; existing rows are kept.
func (r *PgInventoryRepository) InsertMissing(ctx context.Context, items []*domain.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
        insert into inventory_items (product_id, available_quantity, reserved_quantity, updated_at_utc)
        values ($1,$2,$3,$4)
        on conflict (product_id) do nothing
    `)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, item := range items {
		if item.UpdatedAtUtc.IsZero() {
			item.UpdatedAtUtc = time.Now().UTC()
		}
		if _, err := stmt.ExecContext(
			ctx,
			item.ProductID,
			item.Available,
			item.Reserved,
			item.UpdatedAtUtc,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}
