package dto

import (
	"github.com/fidura/compta_recon_app/internal/core/domain"
)

// ListEntriesResponse is one keyset page of ledger entries. NextToken is empty
// on the last page.
type ListEntriesResponse struct {
	Entries   []domain.LedgerEntry `json:"entries"`
	NextToken string               `json:"nextToken,omitempty"`
}
