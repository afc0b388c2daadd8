package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store owns the connection pool shared by the catalog and selection
// stores. Migrations are idempotent and run once at startup.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS banks (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			rssd_id VARCHAR(20) UNIQUE NOT NULL,
			fdic_certificate_number VARCHAR(20) UNIQUE NOT NULL,
			bank_name VARCHAR(255) NOT NULL,
			city VARCHAR(100) NOT NULL,
			state VARCHAR(2) NOT NULL,
			total_assets DECIMAL(20,2) NOT NULL,
			charter_type VARCHAR(50) NOT NULL,
			regulator VARCHAR(50) NOT NULL,
			is_active BOOLEAN DEFAULT true,
			last_filing_date DATE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_banks_name ON banks(bank_name);`,
		`CREATE INDEX IF NOT EXISTS idx_banks_state ON banks(state);`,
		`CREATE INDEX IF NOT EXISTS idx_banks_assets ON banks(total_assets);`,
		`CREATE INDEX IF NOT EXISTS idx_banks_active ON banks(is_active);`,
		`CREATE TABLE IF NOT EXISTS bank_selections (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id TEXT UNIQUE NOT NULL,
			selected_banks UUID[] NOT NULL DEFAULT '{}',
			max_banks INTEGER NOT NULL DEFAULT 30,
			version BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`ALTER TABLE bank_selections ADD COLUMN IF NOT EXISTS version BIGINT NOT NULL DEFAULT 0;`,
		`CREATE INDEX IF NOT EXISTS idx_bank_selections_user_id ON bank_selections(user_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}
