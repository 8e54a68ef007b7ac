package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerType discriminates the three ledger variants handled by the engine.
type LedgerType string

const (
	ClientLedger   LedgerType = "CLIENT"
	SupplierLedger LedgerType = "SUPPLIER"
	MiscLedger     LedgerType = "MISC"
)

// Valid reports whether t is one of the known ledger types.
func (t LedgerType) Valid() bool {
	switch t {
	case ClientLedger, SupplierLedger, MiscLedger:
		return true
	}
	return false
}

// SuspiciousLevel grades how many anomaly conditions an entry tripped.
type SuspiciousLevel string

const (
	SuspiciousLow    SuspiciousLevel = "LOW"
	SuspiciousMedium SuspiciousLevel = "MEDIUM"
	SuspiciousHigh   SuspiciousLevel = "HIGH"
)

// AIMeta carries analyzer annotations attached to an entry for display only.
// It is never persisted as ground truth.
type AIMeta struct {
	SuspiciousLevel SuspiciousLevel `json:"suspiciousLevel"`
	Reasons         []string        `json:"reasons"`
	Suggestions     []string        `json:"suggestions,omitempty"`
}

// LedgerEntry is one imported accounting movement against an account, tied to a client.
// Exactly one of InvoiceNumber, BillNumber or Category is meaningful, selected by LedgerType.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"`
	ClientID      string          `json:"clientID"` // owning tenant, mandatory
	LedgerType    LedgerType      `json:"ledgerType"`
	Date          *time.Time      `json:"date"` // nullable calendar date
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	Description   string          `json:"description"`
	Debit         decimal.Decimal `json:"debit"`  // >= 0
	Credit        decimal.Decimal `json:"credit"` // >= 0
	Balance       decimal.Decimal `json:"balance"` // debit - credit by convention
	Reference     string          `json:"reference"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty"` // CLIENT
	BillNumber    string          `json:"billNumber,omitempty"`    // SUPPLIER
	Category      string          `json:"category,omitempty"`      // MISC
	Signature     string          `json:"signature"`
	IsImported    bool            `json:"isImported"`
	CreatedAt     time.Time       `json:"createdAt"`
	AIMeta        *AIMeta         `json:"aiMeta,omitempty"`
}

// Discriminant returns the type-specific identity field for the entry's ledger type.
func (e LedgerEntry) Discriminant() string {
	switch e.LedgerType {
	case ClientLedger:
		return e.InvoiceNumber
	case SupplierLedger:
		return e.BillNumber
	case MiscLedger:
		return e.Category
	}
	return ""
}

// TotalAmount is the movement's magnitude. One of debit/credit is zero by
// convention, so the sum is the moved amount.
func (e LedgerEntry) TotalAmount() decimal.Decimal {
	return e.Debit.Add(e.Credit)
}

// IsNoOp reports whether the entry moves no money at all. No-op entries are
// excluded from every classification set.
func (e LedgerEntry) IsNoOp() bool {
	return e.Debit.IsZero() && e.Credit.IsZero()
}

// Counterparty is the name totals are accumulated under during reconciliation.
func (e LedgerEntry) Counterparty() string {
	if e.AccountName != "" {
		return e.AccountName
	}
	return e.AccountNumber
}
