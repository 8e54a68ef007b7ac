package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DraftJustificationRequest asks for an AI-drafted justification of one
// payment entry. The entry fields travel in the request because drafts are
// also requested for rows still being reviewed client-side; everything is
// sanitized before reaching the provider.
type DraftJustificationRequest struct {
	ClientName  string          `json:"clientName" binding:"required,max=200"`
	LedgerType  string          `json:"ledgerType" binding:"required,ledgertype"`
	Amount      decimal.Decimal `json:"amount"`
	Date        *time.Time      `json:"date"`
	Description string          `json:"description" binding:"max=4000"`
	Reference   string          `json:"reference" binding:"max=200"`
}

// JustificationResponse carries the AI-drafted justification text for a
// payment entry. Draft only; a collaborator reviews it before anything is sent.
type JustificationResponse struct {
	EntryID string `json:"entryID"`
	Draft   string `json:"draft"`
}

// SuggestionsResponse carries AI-drafted remediation hints for flagged entries.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}
