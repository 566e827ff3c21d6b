package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables on startup when they are missing. There is
// no migration tooling; the schema is small and additive changes go here.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id        BIGSERIAL PRIMARY KEY,
			name      TEXT NOT NULL,
			email     TEXT NOT NULL UNIQUE,
			password  TEXT NOT NULL,
			role      TEXT NOT NULL DEFAULT 'User',
			mobile    TEXT,
			address   TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id          BIGSERIAL PRIMARY KEY,
			item_name   TEXT NOT NULL,
			category    TEXT,
			price       NUMERIC(10,2) NOT NULL,
			status      TEXT NOT NULL DEFAULT 'Available',
			description TEXT,
			image_path  TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id             BIGSERIAL PRIMARY KEY,
			transaction_id TEXT,
			user_email     TEXT NOT NULL,
			item_name      TEXT NOT NULL,
			quantity       INT NOT NULL,
			total_price    NUMERIC(10,2) NOT NULL,
			order_date     TIMESTAMPTZ NOT NULL DEFAULT now(),
			status         TEXT NOT NULL DEFAULT 'Pending'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_transaction_id ON orders (transaction_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user_email ON orders (user_email)`,
		`CREATE TABLE IF NOT EXISTS ratings (
			user_email TEXT NOT NULL,
			item_name  TEXT NOT NULL,
			rating     INT NOT NULL,
			PRIMARY KEY (user_email, item_name)
		)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
