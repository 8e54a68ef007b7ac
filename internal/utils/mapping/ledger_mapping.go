package mapping

import (
	"github.com/fidura/compta_recon_app/internal/core/domain"
	"github.com/fidura/compta_recon_app/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to its persistence model.
// AIMeta is deliberately not mapped: analyzer annotations are display-only.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:       d.EntryID,
		ClientID:      d.ClientID,
		LedgerType:    string(d.LedgerType),
		EntryDate:     d.Date,
		AccountNumber: d.AccountNumber,
		AccountName:   d.AccountName,
		Description:   d.Description,
		Debit:         d.Debit,
		Credit:        d.Credit,
		Balance:       d.Balance,
		Reference:     d.Reference,
		InvoiceNumber: d.InvoiceNumber,
		BillNumber:    d.BillNumber,
		Category:      d.Category,
		Signature:     d.Signature,
		IsImported:    d.IsImported,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry back to the domain shape.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:       m.EntryID,
		ClientID:      m.ClientID,
		LedgerType:    domain.LedgerType(m.LedgerType),
		Date:          m.EntryDate,
		AccountNumber: m.AccountNumber,
		AccountName:   m.AccountName,
		Description:   m.Description,
		Debit:         m.Debit,
		Credit:        m.Credit,
		Balance:       m.Balance,
		Reference:     m.Reference,
		InvoiceNumber: m.InvoiceNumber,
		BillNumber:    m.BillNumber,
		Category:      m.Category,
		Signature:     m.Signature,
		IsImported:    m.IsImported,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainLedgerEntrySlice converts a slice of model entries to domain entries.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
