package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open connects through the pgx stdlib driver and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)
	conn.SetConnMaxIdleTime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return conn, nil
}

// Migrate creates the schema. Every statement is idempotent.
func Migrate(ctx context.Context, conn *sql.DB) error {
	migrations := []string{
		`create table if not exists inventory_items (
			product_id         text primary key,
			available_quantity integer not null check (available_quantity >= 0),
			reserved_quantity  integer not null check (reserved_quantity >= 0),
			updated_at_utc     timestamptz not null default now()
		)`,

		`create table if not exists orders (
			id           uuid primary key,
			customer_id  text not null,
			total_amount numeric(18,4) not null,
			status       text not null,
			created_at   timestamptz not null,
			updated_at   timestamptz not null
		)`,
		`create index if not exists idx_orders_created_at on orders(created_at desc)`,

		`create table if not exists order_items (
			id         uuid primary key,
			order_id   uuid not null references orders(id) on delete cascade,
			position   integer not null,
			product_id text not null,
			quantity   integer not null check (quantity > 0),
			unit_price numeric(18,4) not null check (unit_price > 0)
		)`,
		`create index if not exists idx_order_items_order_id on order_items(order_id)`,

		`create table if not exists payment_transactions (
			transaction_id uuid primary key,
			order_id       text not null,
			amount         numeric(18,4) not null,
			method         text not null,
			status         text not null,
			processed_at   timestamptz not null
		)`,

		`create table if not exists outbox_messages (
			id               uuid primary key,
			type             text not null,
			payload_json     text not null,
			occurred_at_utc  timestamptz not null,
			retry_count      integer not null default 0,
			processed_at_utc timestamptz
		)`,
		`create index if not exists idx_outbox_pending on outbox_messages(occurred_at_utc) where processed_at_utc is null`,
	}

	for _, m := range migrations {
		if _, err := conn.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
