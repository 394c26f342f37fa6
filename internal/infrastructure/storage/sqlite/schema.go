package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema statements are idempotent; Migrate runs on every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ean TEXT,
		name TEXT NOT NULL,
		expiry_date TEXT,
		purchase_date TEXT,
		location TEXT,
		quantity INTEGER DEFAULT 1,
		weight_volume TEXT,
		notes TEXT,
		is_vegetarian INTEGER DEFAULT 0,
		is_vegan INTEGER DEFAULT 0,
		price REAL DEFAULT 0.0,
		image_url TEXT,
		category TEXT,
		tags TEXT,
		scan_count INTEGER DEFAULT 0,
		last_scanned TEXT DEFAULT '',
		created_at TEXT DEFAULT (datetime('now'))
	)`,
	`CREATE TABLE IF NOT EXISTS shopping_list (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		quantity INTEGER DEFAULT 1,
		category TEXT,
		checked INTEGER DEFAULT 0,
		notes TEXT,
		created_at TEXT DEFAULT (datetime('now'))
	)`,
	`CREATE TABLE IF NOT EXISTS barcode_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ean TEXT NOT NULL,
		name TEXT,
		category TEXT,
		weight_volume TEXT,
		tags TEXT,
		is_vegetarian INTEGER DEFAULT 0,
		is_vegan INTEGER DEFAULT 0,
		scan_count INTEGER DEFAULT 1,
		last_scanned TEXT DEFAULT (datetime('now'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_ean ON products(ean)`,
	`CREATE INDEX IF NOT EXISTS idx_products_expiry ON products(expiry_date)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_barcode_history_ean ON barcode_history(ean)`,
}

// Migrate creates missing tables and indexes.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}
