package services

import (
	"context"

	"github.com/fidura/compta_recon_app/internal/core/domain"
)

// ReconSvcFacade runs the three anomaly-classification passes over a client's
// ledger. Analyze is pure over its input batch: recomputing against the same
// batch yields identical membership, so results are never persisted.
type ReconSvcFacade interface {
	// Analyze classifies an in-memory batch of one ledger type.
	Analyze(entries []domain.LedgerEntry) domain.AnalysisResult

	// AnalyzeStored loads the (client, ledger type) batch from the ledger
	// repository, runs Analyze and attaches display-only AIMeta annotations.
	AnalyzeStored(ctx context.Context, clientID string, ledgerType domain.LedgerType) ([]domain.LedgerEntry, domain.AnalysisResult, error)

	// ListEntriesPage returns one keyset page of stored entries plus the token
	// for the next page, empty on the last page. An empty token starts from
	// the top.
	ListEntriesPage(ctx context.Context, clientID string, ledgerType domain.LedgerType, token string, limit int) ([]domain.LedgerEntry, string, error)
}
