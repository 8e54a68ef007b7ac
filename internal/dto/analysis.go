package dto

import (
	"github.com/fidura/compta_recon_app/internal/core/domain"
)

// AnalysisResponse exposes the three classification sets plus the single badge
// the UI shows per flagged entry.
type AnalysisResponse struct {
	LedgerType                   domain.LedgerType              `json:"ledgerType"`
	EntryCount                   int                            `json:"entryCount"`
	UnsolvedInvoices             []string                       `json:"unsolvedInvoices"`
	PaymentsWithoutJustification []string                       `json:"paymentsWithoutJustification"`
	SuspiciousEntries            []string                       `json:"suspiciousEntries"`
	Badges                       map[string]domain.AnomalyBadge `json:"badges"`
	Entries                      []domain.LedgerEntry           `json:"entries,omitempty"`
}

// ToAnalysisResponse converts an analyzer result into the API shape. Entries
// carry their display-only AIMeta annotations when the analyzer attached them.
func ToAnalysisResponse(ledgerType domain.LedgerType, entries []domain.LedgerEntry, result domain.AnalysisResult) AnalysisResponse {
	emptyIfNil := func(s []string) []string {
		if s == nil {
			return []string{}
		}
		return s
	}
	return AnalysisResponse{
		LedgerType:                   ledgerType,
		EntryCount:                   len(entries),
		UnsolvedInvoices:             emptyIfNil(result.UnsolvedInvoices),
		PaymentsWithoutJustification: emptyIfNil(result.PaymentsWithoutJustification),
		SuspiciousEntries:            emptyIfNil(result.SuspiciousEntries),
		Badges:                       result.Badges(),
		Entries:                      entries,
	}
}
