package repositories

import (
	"context"
	"time"

	"github.com/fidura/compta_recon_app/internal/core/domain"
)

// LedgerReader defines read operations over persisted ledger entries.
type LedgerReader interface {
	// ListEntries retrieves every entry for one (client, ledger type) scope,
	// ordered by entry date then creation time. Analysis runs over this batch.
	ListEntries(ctx context.Context, clientID string, ledgerType domain.LedgerType) ([]domain.LedgerEntry, error)

	// ListEntriesPage retrieves one keyset page of entries. afterDate/afterCreated
	// come from the previous page's pagination token; zero values start from the top.
	ListEntriesPage(ctx context.Context, clientID string, ledgerType domain.LedgerType, afterDate, afterCreated time.Time, limit int) ([]domain.LedgerEntry, error)

	// ListSignatures retrieves the signature set for a client's full ledger.
	// Dedup of a new import batch runs against this set.
	ListSignatures(ctx context.Context, clientID string) (map[string]struct{}, error)
}

// LedgerWriter defines write operations for ledger entries.
type LedgerWriter interface {
	// SaveEntries persists a batch of unique entries in one transaction.
	SaveEntries(ctx context.Context, entries []domain.LedgerEntry) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities.
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
