// Package postgres implements the trader record store over PostgreSQL.
//
// This is the production backend: the affiliate platform, the admin grant,
// and verification all converge on one shared table, and the schema
// bootstrap carries the public-read policy the hosted deployment relies on.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	apperrors "github.com/aitrade/gate/internal/platform/errors"
	"github.com/aitrade/gate/internal/services/gate/storage"
)

// Store implements storage.TraderStore over PostgreSQL.
type Store struct {
	db *sqlx.DB
}

// Open connects to PostgreSQL using a lib/pq DSN or URL.
func Open(dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("database url is required")
	}

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres db: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres db: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ensureStatements provision the traders table and its public-read policy.
// Each statement is idempotent so the bootstrap can run at deploy time and
// again from the grant handler's self-heal path.
var ensureStatements = []string{
	`CREATE TABLE IF NOT EXISTS traders (
        trader_id TEXT PRIMARY KEY,
        registered BOOLEAN,
        ftd BOOLEAN,
        sumdep NUMERIC,
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    );`,
	`ALTER TABLE traders ENABLE ROW LEVEL SECURITY;`,
	`DO $$
    BEGIN
        IF NOT EXISTS (
            SELECT 1
            FROM pg_policies
            WHERE schemaname = current_schema()
              AND tablename = 'traders'
              AND policyname = 'traders_public_read'
        ) THEN
            CREATE POLICY "traders_public_read"
            ON traders
            FOR SELECT
            USING (true);
        END IF;
    END
    $$;`,
}

// EnsureSchema creates the traders table and read policy when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range ensureStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure traders schema: %w", err)
		}
	}
	return nil
}

const upsertTraderQuery = `
INSERT INTO traders (trader_id, registered, ftd, sumdep, updated_at)
VALUES ($1, $2, $3, $4, NOW())
ON CONFLICT (trader_id) DO UPDATE SET
    registered = COALESCE(EXCLUDED.registered, traders.registered),
    ftd        = COALESCE(EXCLUDED.ftd, traders.ftd),
    sumdep     = CASE WHEN $5 THEN EXCLUDED.sumdep
                      ELSE COALESCE(EXCLUDED.sumdep, traders.sumdep) END,
    updated_at = EXCLUDED.updated_at;
`

// UpsertTrader merges the patch into the row keyed by trader ID.
func (s *Store) UpsertTrader(ctx context.Context, patch storage.Patch) error {
	traderID := strings.TrimSpace(patch.TraderID)
	if traderID == "" {
		return storage.ErrMissingTraderID
	}

	_, err := s.db.ExecContext(ctx, upsertTraderQuery,
		traderID,
		patch.Registered,
		patch.FTD,
		patch.Sumdep,
		patch.SetSumdep,
	)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeUnavailable, fmt.Sprintf("upsert trader: %v", err), err)
	}
	return nil
}

const getTraderQuery = `
SELECT trader_id, registered, ftd, sumdep, updated_at
FROM traders
WHERE trader_id = $1;
`

// GetTrader returns the record exactly matching the trader ID.
func (s *Store) GetTrader(ctx context.Context, traderID string) (storage.TraderRecord, error) {
	var row struct {
		TraderID   string          `db:"trader_id"`
		Registered sql.NullBool    `db:"registered"`
		FTD        sql.NullBool    `db:"ftd"`
		Sumdep     sql.NullFloat64 `db:"sumdep"`
		UpdatedAt  time.Time       `db:"updated_at"`
	}

	err := s.db.GetContext(ctx, &row, getTraderQuery, strings.TrimSpace(traderID))
	if err != nil {
		if err == sql.ErrNoRows {
			return storage.TraderRecord{}, storage.ErrTraderNotFound
		}
		return storage.TraderRecord{}, apperrors.Wrap(apperrors.CodeUnavailable, fmt.Sprintf("get trader: %v", err), err)
	}

	rec := storage.TraderRecord{
		TraderID:  row.TraderID,
		UpdatedAt: row.UpdatedAt.UTC(),
	}
	if row.Registered.Valid {
		rec.Registered = &row.Registered.Bool
	}
	if row.FTD.Valid {
		rec.FTD = &row.FTD.Bool
	}
	if row.Sumdep.Valid {
		rec.Sumdep = &row.Sumdep.Float64
	}
	return rec, nil
}
