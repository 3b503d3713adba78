// Package sqlite implements the trader record store over a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/aitrade/gate/internal/platform/errors"
	sqlitemigrate "github.com/aitrade/gate/internal/platform/storage/sqlitemigrate"
	"github.com/aitrade/gate/internal/services/gate/storage"
	"github.com/aitrade/gate/internal/services/gate/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store implements storage.TraderStore over SQLite. It is the default
// backend for local and single-node deployments.
type Store struct {
	sqlDB *sql.DB
}

// toMillis normalizes timestamps into millisecond precision for storage.
func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis restores millisecond precision and keeps UTC normalization.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the trader SQLite store and applies bundled migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := store.EnsureSchema(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return store, nil
}

// Close releases the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// EnsureSchema applies embedded migrations. Safe to call repeatedly.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return sqlitemigrate.Apply(s.sqlDB, migrations.FS)
}

const upsertTraderQuery = `
INSERT INTO traders (trader_id, registered, ftd, sumdep, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (trader_id) DO UPDATE SET
    registered = COALESCE(excluded.registered, traders.registered),
    ftd        = COALESCE(excluded.ftd, traders.ftd),
    sumdep     = CASE WHEN ? THEN excluded.sumdep
                      ELSE COALESCE(excluded.sumdep, traders.sumdep) END,
    updated_at = excluded.updated_at;
`

// UpsertTrader merges the patch into the row keyed by trader ID. Nil patch
// fields leave existing values untouched; SetSumdep overwrites the deposit
// amount unconditionally.
func (s *Store) UpsertTrader(ctx context.Context, patch storage.Patch) error {
	traderID := strings.TrimSpace(patch.TraderID)
	if traderID == "" {
		return storage.ErrMissingTraderID
	}

	_, err := s.sqlDB.ExecContext(ctx, upsertTraderQuery,
		traderID,
		nullBool(patch.Registered),
		nullBool(patch.FTD),
		nullFloat(patch.Sumdep),
		toMillis(time.Now()),
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
WHERE trader_id = ?;
`

// GetTrader returns the record exactly matching the trader ID.
func (s *Store) GetTrader(ctx context.Context, traderID string) (storage.TraderRecord, error) {
	var (
		rec        storage.TraderRecord
		registered sql.NullBool
		ftd        sql.NullBool
		sumdep     sql.NullFloat64
		updatedAt  int64
	)

	row := s.sqlDB.QueryRowContext(ctx, getTraderQuery, strings.TrimSpace(traderID))
	err := row.Scan(&rec.TraderID, &registered, &ftd, &sumdep, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return storage.TraderRecord{}, storage.ErrTraderNotFound
		}
		return storage.TraderRecord{}, apperrors.Wrap(apperrors.CodeUnavailable, fmt.Sprintf("get trader: %v", err), err)
	}

	if registered.Valid {
		rec.Registered = &registered.Bool
	}
	if ftd.Valid {
		rec.FTD = &ftd.Bool
	}
	if sumdep.Valid {
		rec.Sumdep = &sumdep.Float64
	}
	rec.UpdatedAt = fromMillis(updatedAt)
	return rec, nil
}

func nullBool(v *bool) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
