package services

import (
	"context"

	"github.com/fidura/compta_recon_app/internal/core/domain"
)

// MigrationReport counts per-key outcomes of a one-shot tier migration.
// Per-key failures are logged and skipped; the migration itself still succeeds.
type MigrationReport struct {
	Scanned  int
	Migrated int
	Skipped  int // keys that do not parse as "{clientId}::{period}"
	Failed   int
}

// BalanceSvcFacade is the tiered cache manager for balance snapshots. Reads
// fall through memory, session store and database in order and back-fill
// faster tiers; writes are fail-soft: a slower tier being unavailable degrades
// durability, never the call.
type BalanceSvcFacade interface {
	// GetBalance reads the snapshot for (clientID, period), or ErrNotFound.
	GetBalance(ctx context.Context, clientID, period string) (*domain.BalanceSnapshot, error)

	// SaveBalance writes the snapshot through every reachable tier and records
	// the client's last written period in the database tier.
	SaveBalance(ctx context.Context, snapshot domain.BalanceSnapshot) error

	// ClearBalance removes (clientID, period) from every reachable tier,
	// best-effort. An empty period clears the full-ledger snapshot only.
	ClearBalance(ctx context.Context, clientID, period string) error

	// Migrate copies every valid session-tier snapshot into the database tier.
	// Not safe to run concurrently with writers to the same keys.
	Migrate(ctx context.Context) (*MigrationReport, error)
}
