package services

import (
	"context"
	"time"

	"github.com/fidura/compta_recon_app/internal/core/domain"
)

// JustificationContext is the sanitized projection of a ledger entry handed to
// the text-generation provider. Fields are length-capped and pattern-filtered
// before leaving the reconciliation boundary.
type JustificationContext struct {
	ClientName  string
	Amount      string
	Date        *time.Time
	Description string
	Reference   string
	LedgerType  domain.LedgerType
}

// TextGenerator is the external LLM collaborator, consumed as a black-box text
// generator. Implementations live outside this module.
type TextGenerator interface {
	// GenerateJustification drafts a justification message for a payment entry.
	GenerateJustification(ctx context.Context, jc JustificationContext) (string, error)

	// GenerateSuggestions drafts remediation hints for a set of flagged entries.
	GenerateSuggestions(ctx context.Context, entries []domain.LedgerEntry) ([]string, error)
}

// JustificationSvcFacade wraps TextGenerator behind the mandatory prompt
// sanitization step.
type JustificationSvcFacade interface {
	// DraftJustification sanitizes the entry's fields and requests a draft.
	DraftJustification(ctx context.Context, entry domain.LedgerEntry, clientName string) (string, error)

	// DraftSuggestions sanitizes flagged entries and requests remediation hints.
	DraftSuggestions(ctx context.Context, entries []domain.LedgerEntry) ([]string, error)
}
