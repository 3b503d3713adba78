// Package storage defines the trader record model and store contract.
package storage

import (
	"context"
	"time"

	apperrors "github.com/aitrade/gate/internal/platform/errors"
)

var (
	// ErrTraderNotFound reports a lookup for a trader ID with no record.
	ErrTraderNotFound = apperrors.New(apperrors.CodeNotFound, "trader not found")
	// ErrMissingTraderID reports a write or lookup with a blank trader ID.
	ErrMissingTraderID = apperrors.New(apperrors.CodeInvalidArgument, "trader id is required")
)

// TraderRecord is the persisted authorization row keyed by trader ID.
//
// Registered and FTD are tri-state: a nil pointer means the flag was never
// asserted by any event, which is distinct from an explicit false.
type TraderRecord struct {
	TraderID   string
	Registered *bool
	FTD        *bool
	Sumdep     *float64
	UpdatedAt  time.Time
}

// Patch carries the fields a single write wants to assert. Nil fields are
// left untouched on existing rows. SetSumdep forces the Sumdep column to be
// written even when the value is nil; the admin grant uses it to overwrite
// unconditionally, while webhook patches only set it alongside a parsed
// amount.
type Patch struct {
	TraderID   string
	Registered *bool
	FTD        *bool
	Sumdep     *float64
	SetSumdep  bool
}

// Qualifies reports whether the record unlocks the signals view: a
// confirmed first-time deposit or any positive deposit amount.
func Qualifies(rec TraderRecord) bool {
	if rec.FTD != nil && *rec.FTD {
		return true
	}
	return rec.Sumdep != nil && *rec.Sumdep > 0
}

// TraderStore is the record store shared by the webhook, the admin grant,
// and verification. The first upsert for a trader ID creates the row.
type TraderStore interface {
	// UpsertTrader merges the patch into the record keyed by its trader ID.
	UpsertTrader(ctx context.Context, patch Patch) error
	// GetTrader returns the record exactly matching the trader ID, or
	// ErrTraderNotFound.
	GetTrader(ctx context.Context, traderID string) (TraderRecord, error)
	// EnsureSchema provisions the backing table and read policy. Idempotent.
	EnsureSchema(ctx context.Context) error
	Close() error
}
