package dto

import (
	"time"

	"github.com/fidura/compta_recon_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveBalanceRequest writes a balance snapshot through the tiered cache.
type SaveBalanceRequest struct {
	Period      string          `json:"period" binding:"omitempty,len=7"` // "YYYY-MM"
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	EntryCount  int             `json:"entryCount" binding:"gte=0"`
}

// BalanceResponse is the cached snapshot as served to clients.
type BalanceResponse struct {
	ClientID    string          `json:"clientID"`
	Period      string          `json:"period"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"`
	EntryCount  int             `json:"entryCount"`
	ComputedAt  time.Time       `json:"computedAt"`
}

// ToBalanceResponse converts a domain snapshot into the API shape.
func ToBalanceResponse(s *domain.BalanceSnapshot) BalanceResponse {
	return BalanceResponse{
		ClientID:    s.ClientID,
		Period:      s.Period,
		TotalDebit:  s.TotalDebit,
		TotalCredit: s.TotalCredit,
		Balance:     s.Balance,
		EntryCount:  s.EntryCount,
		ComputedAt:  s.ComputedAt,
	}
}

// MigrationResponse summarizes a one-shot tier migration. Per-key failures are
// logged and skipped; the operation itself still reports success.
type MigrationResponse struct {
	Scanned  int `json:"scanned"`
	Migrated int `json:"migrated"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}
