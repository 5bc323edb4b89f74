package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// A migration is one schema version: all statements run in one transaction
// and the version is recorded alongside them.
type migration struct {
	version int
	name    string
	stmts   []string
}

// migrations is the full, ordered schema history. Runs once at startup;
// request handlers assume the schema is already correct.
var migrations = []migration{
	{
		version: 1,
		name:    "reference masters",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS locations (
				id   TEXT PRIMARY KEY,
				code TEXT NOT NULL UNIQUE,
				name TEXT NOT NULL,
				kind TEXT NOT NULL CHECK (kind IN ('head_office','distributor','outlet'))
			)`,
			`CREATE TABLE IF NOT EXISTS items (
				id           TEXT PRIMARY KEY,
				code         TEXT NOT NULL UNIQUE,
				stock_number TEXT NOT NULL DEFAULT '',
				name         TEXT NOT NULL,
				unit_price   NUMERIC(14,2) NOT NULL DEFAULT 0
			)`,
			`CREATE INDEX IF NOT EXISTS idx_items_stock_number ON items (stock_number)`,
		},
	},
	{
		version: 2,
		name:    "transfer transactions and lines",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS transfer_transactions (
				id                 TEXT PRIMARY KEY,
				code               TEXT NOT NULL UNIQUE,
				source_location_id TEXT REFERENCES locations(id),
				dest_location_id   TEXT NOT NULL REFERENCES locations(id),
				priority           TEXT NOT NULL DEFAULT 'Normal',
				note               TEXT NOT NULL DEFAULT '',
				status             TEXT NOT NULL DEFAULT 'Pending',
				created_by         TEXT NOT NULL DEFAULT 'Unknown',
				created_by_name    TEXT NOT NULL DEFAULT 'Unknown',
				created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
				dispatched_at      TIMESTAMPTZ,
				accepted_at        TIMESTAMPTZ,
				discrepancy_note   TEXT NOT NULL DEFAULT '',
				CHECK (source_location_id IS NULL OR source_location_id <> dest_location_id)
			)`,
			`CREATE TABLE IF NOT EXISTS transfer_lines (
				id          TEXT PRIMARY KEY,
				transfer_id TEXT NOT NULL REFERENCES transfer_transactions(id) ON DELETE CASCADE,
				item_id     TEXT NOT NULL REFERENCES items(id),
				quantity    BIGINT NOT NULL CHECK (quantity > 0)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_transfer_lines_transfer ON transfer_lines (transfer_id)`,
		},
	},
	{
		version: 3,
		name:    "stock and quarantine ledgers",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS stock_ledger (
				location_id TEXT NOT NULL REFERENCES locations(id),
				item_id     TEXT NOT NULL REFERENCES items(id),
				quantity    BIGINT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
				updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
				PRIMARY KEY (location_id, item_id)
			)`,
			`CREATE TABLE IF NOT EXISTS quarantine_ledger (
				location_id TEXT NOT NULL REFERENCES locations(id),
				item_id     TEXT NOT NULL REFERENCES items(id),
				quantity    BIGINT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
				updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
				PRIMARY KEY (location_id, item_id)
			)`,
		},
	},
	{
		version: 4,
		name:    "exchanges and sale links",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS exchange_records (
				id               TEXT PRIMARY KEY,
				occurred_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
				location_id      TEXT NOT NULL DEFAULT '',
				customer_name    TEXT NOT NULL DEFAULT '',
				customer_phone   TEXT NOT NULL DEFAULT '',
				reason           TEXT NOT NULL DEFAULT '',
				original_sale_id TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS exchange_lines (
				id          TEXT PRIMARY KEY,
				exchange_id TEXT NOT NULL REFERENCES exchange_records(id) ON DELETE CASCADE,
				direction   TEXT NOT NULL CHECK (direction IN ('return','issue')),
				item_id     TEXT NOT NULL REFERENCES items(id),
				quantity    BIGINT NOT NULL CHECK (quantity > 0),
				unit_price  NUMERIC(14,2) NOT NULL DEFAULT 0
			)`,
			`CREATE TABLE IF NOT EXISTS exchange_sale_links (
				id               TEXT PRIMARY KEY,
				original_sale_id TEXT NOT NULL,
				exchange_id      TEXT REFERENCES exchange_records(id),
				new_sale_id      TEXT,
				note             TEXT NOT NULL DEFAULT '',
				created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
			`CREATE INDEX IF NOT EXISTS idx_exchange_links_sale ON exchange_sale_links (original_sale_id)`,
		},
	},
	{
		version: 5,
		name:    "held bills and audit trail",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS held_bills (
				id            TEXT PRIMARY KEY,
				created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
				customer_name TEXT NOT NULL DEFAULT '',
				settings      JSONB NOT NULL DEFAULT '{}',
				lines         JSONB NOT NULL DEFAULT '[]',
				held_by       TEXT NOT NULL DEFAULT 'Unknown'
			)`,
			`CREATE TABLE IF NOT EXISTS held_bill_audit (
				id         TEXT PRIMARY KEY,
				action     TEXT NOT NULL CHECK (action IN ('hold','resume','delete')),
				bill_token TEXT NOT NULL,
				actor_id   TEXT NOT NULL DEFAULT 'Unknown',
				at         TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
		},
	},
	{
		version: 6,
		name:    "legacy mirror table",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS legacy_transfer_rows (
				transfer_id       TEXT NOT NULL,
				line_no           INT NOT NULL,
				code              TEXT NOT NULL,
				status            TEXT NOT NULL,
				source_name       TEXT NOT NULL DEFAULT '',
				dest_name         TEXT NOT NULL DEFAULT '',
				item_stock_number TEXT NOT NULL DEFAULT '',
				item_name         TEXT NOT NULL DEFAULT '',
				quantity          BIGINT NOT NULL,
				unit_price        NUMERIC(14,2) NOT NULL DEFAULT 0,
				updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
				PRIMARY KEY (transfer_id, line_no)
			)`,
		},
	},
}

// Migrate applies all pending migrations. Idempotent: applied versions are
// recorded in schema_migrations and skipped on the next start.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INT PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var exists bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, m.version,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.version, err)
		}
		if exists {
			continue
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.version, err)
		}
		applied := func() error {
			for _, stmt := range m.stmts {
				if _, err := tx.Exec(ctx, stmt); err != nil {
					return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
				}
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.version, m.name,
			); err != nil {
				return fmt.Errorf("record migration %d: %w", m.version, err)
			}
			return tx.Commit(ctx)
		}()
		if applied != nil {
			_ = tx.Rollback(ctx)
			return applied
		}
	}
	return nil
}
