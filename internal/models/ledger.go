package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the persistence shape for one imported accounting movement.
// Maps to the ledger_entries table.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"`
	ClientID      string          `json:"clientID"`
	LedgerType    string          `json:"ledgerType"` // CLIENT | SUPPLIER | MISC
	EntryDate     *time.Time      `json:"entryDate"`  // nullable
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	Description   string          `json:"description"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Balance       decimal.Decimal `json:"balance"`
	Reference     string          `json:"reference"`
	InvoiceNumber string          `json:"invoiceNumber"`
	BillNumber    string          `json:"billNumber"`
	Category      string          `json:"category"`
	Signature     string          `json:"signature"` // unique per client
	IsImported    bool            `json:"isImported"`
	CreatedAt     time.Time       `json:"createdAt"`
}
