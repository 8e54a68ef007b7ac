package services

import (
	"context"

	"github.com/fidura/compta_recon_app/internal/core/domain"
)

// RowNormalizer maps loosely-typed spreadsheet rows to canonical ledger entries.
type RowNormalizer interface {
	// NormalizeRows resolves column aliases, sanitizes values and rejects
	// structurally invalid rows. Rejected rows come back in the second return;
	// only a missing clientID aborts (apperrors.ErrMissingClientID).
	NormalizeRows(ctx context.Context, clientID string, ledgerType domain.LedgerType, rows []domain.RawRow) ([]domain.LedgerEntry, []domain.RowError, error)
}

// ImportSvcFacade ingests an import batch end to end: normalize, dedup against
// the client's existing signatures, persist the survivors.
type ImportSvcFacade interface {
	RowNormalizer

	// ImportRows runs the full pipeline over pre-parsed rows.
	ImportRows(ctx context.Context, clientID string, ledgerType domain.LedgerType, rows []domain.RawRow) (*domain.ImportSummary, error)
}
