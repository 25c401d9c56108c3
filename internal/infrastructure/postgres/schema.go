package postgres

import (
	"context"
	"fmt"
)

// Sentencias de bootstrap del esquema. Idempotentes (IF NOT EXISTS), se
// ejecutan en el arranque igual que hacía la versión original con SQLite.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL UNIQUE,
		quantity         INTEGER NOT NULL CHECK (quantity >= 0),
		minimum_quantity INTEGER NOT NULL CHECK (minimum_quantity >= 0),
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS movements (
		id         TEXT PRIMARY KEY,
		product_id TEXT NOT NULL REFERENCES products(id),
		type       TEXT NOT NULL,
		quantity   INTEGER NOT NULL CHECK (quantity > 0),
		date       TIMESTAMPTZ NOT NULL,
		username   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_product ON movements (product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_date ON movements (date DESC)`,
}

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap esquema: %w", mapError(err))
		}
	}
	return nil
}
