package repositories

import (
	"context"

	"github.com/fidura/compta_recon_app/internal/core/domain"
)

// SnapshotTier is one storage layer in the balance cache hierarchy
// (memory, session store, database). The tiered cache manager coordinates
// several of these behind a single read/write contract.
//
// Contract: Get returns found=false on a clean miss. When a tier's backing
// store is structurally unavailable (missing table, unreachable server) every
// method returns an error wrapping apperrors.ErrTierUnavailable; fallback
// decisions are made on returned data, never on panics.
type SnapshotTier interface {
	// Name identifies the tier in logs.
	Name() string

	// Get retrieves the snapshot stored under key.
	Get(ctx context.Context, key string) (*domain.BalanceSnapshot, bool, error)

	// Set stores snapshot under key, overwriting any previous value.
	Set(ctx context.Context, key string, snapshot domain.BalanceSnapshot) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys enumerates every snapshot key held by this tier.
	Keys(ctx context.Context) ([]string, error)
}

// LastPeriodWriter records each client's most recent written period. Only the
// database tier implements this.
type LastPeriodWriter interface {
	// UpsertLastPeriod remembers period as clientID's most recent.
	UpsertLastPeriod(ctx context.Context, clientID, period string) error

	// GetLastPeriod returns the most recent period written for clientID.
	GetLastPeriod(ctx context.Context, clientID string) (string, error)
}

// BalanceRepositoryFacade is the database-backed tier: a SnapshotTier over the
// balance_cache table plus last-period bookkeeping.
type BalanceRepositoryFacade interface {
	SnapshotTier
	LastPeriodWriter
}
