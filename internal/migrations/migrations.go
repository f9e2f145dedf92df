package migrations

import (
	"log"

	"github.com/jmoiron/sqlx"
)

// Run creates the database schema required for the pharmacy backend.
func Run(db *sqlx.DB) {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			role TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS customers (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT DEFAULT '',
			address TEXT DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS suppliers (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT DEFAULT '',
			address TEXT DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS items (
			id BIGSERIAL PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			has_unit_contains BOOLEAN NOT NULL DEFAULT FALSE,
			unit_contains_value BIGINT,
			unit_contains_unit TEXT,
			min_quantity BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			CHECK (min_quantity >= 0),
			CHECK (NOT has_unit_contains OR unit_contains_value > 0)
		);`,
		`CREATE TABLE IF NOT EXISTS batches (
			id BIGSERIAL PRIMARY KEY,
			item_id BIGINT NOT NULL REFERENCES items(id),
			batch_number TEXT NOT NULL,
			quantity BIGINT NOT NULL CHECK (quantity >= 0),
			expiry_date DATE NOT NULL,
			cost_price DOUBLE PRECISION NOT NULL,
			unit_price DOUBLE PRECISION NOT NULL,
			sub_unit_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE (item_id, batch_number)
		);`,
		`CREATE TABLE IF NOT EXISTS purchases (
			id BIGSERIAL PRIMARY KEY,
			invoice_no TEXT NOT NULL UNIQUE,
			supplier_id BIGINT NOT NULL REFERENCES suppliers(id),
			total_amount DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS purchase_items (
			id BIGSERIAL PRIMARY KEY,
			purchase_id BIGINT NOT NULL REFERENCES purchases(id),
			item_id BIGINT NOT NULL REFERENCES items(id),
			batch_id BIGINT NOT NULL REFERENCES batches(id),
			quantity BIGINT NOT NULL,
			total_quantity BIGINT NOT NULL,
			cost_price DOUBLE PRECISION NOT NULL,
			unit_price DOUBLE PRECISION NOT NULL,
			sub_unit_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			expiry_date DATE NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sales (
			id BIGSERIAL PRIMARY KEY,
			invoice_no TEXT NOT NULL UNIQUE,
			customer_id BIGINT REFERENCES customers(id),
			user_id BIGINT REFERENCES users(id),
			total_amount DOUBLE PRECISION NOT NULL,
			total_cost DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS sale_items (
			id BIGSERIAL PRIMARY KEY,
			sale_id BIGINT NOT NULL REFERENCES sales(id),
			item_id BIGINT NOT NULL REFERENCES items(id),
			batch_id BIGINT NOT NULL REFERENCES batches(id),
			unit_quantity BIGINT NOT NULL,
			sub_unit_quantity BIGINT NOT NULL DEFAULT 0,
			total_quantity BIGINT NOT NULL,
			unit_price DOUBLE PRECISION NOT NULL,
			sub_unit_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_price DOUBLE PRECISION NOT NULL,
			total_cost DOUBLE PRECISION NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS doctor_fees (
			id BIGSERIAL PRIMARY KEY,
			sale_id BIGINT NOT NULL REFERENCES sales(id),
			doctor_name TEXT NOT NULL,
			description TEXT DEFAULT '',
			amount DOUBLE PRECISION NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS lab_tests (
			id BIGSERIAL PRIMARY KEY,
			sale_id BIGINT NOT NULL REFERENCES sales(id),
			name TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_batches_item ON batches(item_id);`,
		`CREATE INDEX IF NOT EXISTS idx_batches_expiry ON batches(expiry_date);`,
		`CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items(sale_id);`,
		`CREATE INDEX IF NOT EXISTS idx_purchase_items_purchase ON purchase_items(purchase_id);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}
}
