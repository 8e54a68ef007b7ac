package services

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fidura/compta_recon_app/internal/apperrors"
	"github.com/fidura/compta_recon_app/internal/core/domain"
	portsrepo "github.com/fidura/compta_recon_app/internal/core/ports/repositories"
	portssvc "github.com/fidura/compta_recon_app/internal/core/ports/services"
	"github.com/fidura/compta_recon_app/internal/middleware"
	"github.com/fidura/compta_recon_app/internal/utils/textnorm"
)

// canonicalField names one normalized column of a ledger row.
type canonicalField string

const (
	fieldDate          canonicalField = "date"
	fieldAccountNumber canonicalField = "accountNumber"
	fieldAccountName   canonicalField = "accountName"
	fieldDescription   canonicalField = "description"
	fieldDebit         canonicalField = "debit"
	fieldCredit        canonicalField = "credit"
	fieldReference     canonicalField = "reference"
	fieldInvoiceNumber canonicalField = "invoiceNumber"
	fieldBillNumber    canonicalField = "billNumber"
	fieldCategory      canonicalField = "category"
)

// columnAliases maps each canonical field to the accepted header names, in
// priority order: the first alias present in a row wins. Header comparison is
// case- and accent-insensitive, so "Débit" and "debit" hit the same alias.
var columnAliases = map[canonicalField][]string{
	fieldDate:          {"date", "date ecriture", "date piece", "jour", "transaction date"},
	fieldAccountNumber: {"compte", "numero compte", "n compte", "code compte", "account", "account number"},
	fieldAccountName:   {"intitule", "intitule compte", "nom compte", "account name", "client", "fournisseur", "supplier", "customer"},
	fieldDescription:   {"libelle", "libelle ecriture", "description", "designation", "memo"},
	fieldDebit:         {"debit", "montant debit", "debit amount"},
	fieldCredit:        {"credit", "montant credit", "credit amount"},
	fieldReference:     {"reference", "ref", "piece", "numero piece", "n piece", "justificatif"},
	fieldInvoiceNumber: {"numero facture", "n facture", "facture", "invoice number", "invoice"},
	fieldBillNumber:    {"numero facture fournisseur", "facture fournisseur", "piece fournisseur", "bill number", "bill"},
	fieldCategory:      {"categorie", "rubrique", "category", "type"},
}

// dateLayouts are tried in order when parsing a date cell.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	"02/01/06",
	"2006-01-02T15:04:05Z07:00",
}

// importService normalizes raw rows and runs the full import pipeline.
type importService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewImportService creates a new import service.
func NewImportService(ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.ImportSvcFacade {
	return &importService{ledgerRepo: ledgerRepo}
}

var _ portssvc.ImportSvcFacade = (*importService)(nil)

// NormalizeRows maps heterogeneous spreadsheet rows to canonical ledger entries.
// Rows failing shape checks are returned as RowErrors, never silently dropped;
// a missing clientID is the sole fatal condition.
func (s *importService) NormalizeRows(ctx context.Context, clientID string, ledgerType domain.LedgerType, rows []domain.RawRow) ([]domain.LedgerEntry, []domain.RowError, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, nil, apperrors.ErrMissingClientID
	}

	entries := make([]domain.LedgerEntry, 0, len(rows))
	var rejected []domain.RowError

	for i, raw := range rows {
		entry, badFields := s.normalizeRow(clientID, ledgerType, raw)
		if len(badFields) > 0 {
			rejected = append(rejected, domain.RowError{
				Row:    i + 1,
				Fields: badFields,
				Reason: "row failed shape checks",
			})
			continue
		}
		entries = append(entries, entry)
	}
	return entries, rejected, nil
}

// normalizeRow resolves aliases and sanitizes one row. The returned field list
// is empty when the row is acceptable.
func (s *importService) normalizeRow(clientID string, ledgerType domain.LedgerType, raw domain.RawRow) (domain.LedgerEntry, []string) {
	byHeader := make(map[string]string, len(raw))
	for header, value := range raw {
		byHeader[textnorm.Canonical(header)] = value
	}

	resolve := func(field canonicalField) string {
		for _, alias := range columnAliases[field] {
			if v, ok := byHeader[alias]; ok && strings.TrimSpace(v) != "" {
				return v
			}
		}
		return ""
	}

	debit := parseAmount(resolve(fieldDebit))
	credit := parseAmount(resolve(fieldCredit))

	entry := domain.LedgerEntry{
		ClientID:      clientID,
		LedgerType:    ledgerType,
		Date:          parseDate(resolve(fieldDate)),
		AccountNumber: sanitizeString(resolve(fieldAccountNumber)),
		AccountName:   sanitizeString(resolve(fieldAccountName)),
		Description:   sanitizeString(resolve(fieldDescription)),
		Debit:         debit,
		Credit:        credit,
		Balance:       debit.Sub(credit),
		Reference:     sanitizeString(resolve(fieldReference)),
	}
	switch ledgerType {
	case domain.ClientLedger:
		entry.InvoiceNumber = sanitizeString(resolve(fieldInvoiceNumber))
	case domain.SupplierLedger:
		entry.BillNumber = sanitizeString(resolve(fieldBillNumber))
	case domain.MiscLedger:
		entry.Category = sanitizeString(resolve(fieldCategory))
	}

	var bad []string
	if entry.AccountNumber == "" && entry.AccountName == "" {
		bad = append(bad, string(fieldAccountNumber))
	}
	if debit.IsNegative() {
		bad = append(bad, string(fieldDebit))
	}
	if credit.IsNegative() {
		bad = append(bad, string(fieldCredit))
	}
	return entry, bad
}

// ImportRows runs the full pipeline: normalize, dedup against the client's
// existing signatures, persist the survivors.
func (s *importService) ImportRows(ctx context.Context, clientID string, ledgerType domain.LedgerType, rows []domain.RawRow) (*domain.ImportSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, rejected, err := s.NormalizeRows(ctx, clientID, ledgerType, rows)
	if err != nil {
		return nil, err
	}

	existing, err := s.ledgerRepo.ListSignatures(ctx, clientID)
	if err != nil {
		return nil, err
	}

	unique, _ := Dedup(entries, existing)
	now := time.Now().UTC()
	for i := range unique {
		unique[i].EntryID = uuid.NewString()
		unique[i].IsImported = true
		unique[i].CreatedAt = now
	}

	if len(unique) > 0 {
		if err := s.ledgerRepo.SaveEntries(ctx, unique); err != nil {
			return nil, err
		}
	}

	summary := &domain.ImportSummary{
		Received:   len(rows),
		Inserted:   len(unique),
		Duplicates: len(entries) - len(unique),
		Rejected:   rejected,
	}
	logger.Info("Import batch processed",
		slog.String("client_id", clientID),
		slog.String("ledger_type", string(ledgerType)),
		slog.Int("received", summary.Received),
		slog.Int("inserted", summary.Inserted),
		slog.Int("duplicates", summary.Duplicates),
		slog.Int("rejected", len(summary.Rejected)),
	)
	return summary, nil
}

// sanitizeString trims, collapses whitespace and strips control characters.
func sanitizeString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	return textnorm.CollapseWhitespace(b.String())
}

// parseAmount coerces a numeric cell to a decimal, stripping currency symbols
// and thousands separators. Unparseable input defaults to zero.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '€', '$', '£', ' ', ' ', ' ':
			return -1
		}
		return r
	}, s)
	cleaned = strings.TrimSuffix(strings.TrimSuffix(cleaned, "EUR"), "eur")

	// "1.234,56" and "1,234.56" both appear in exports; the last separator is
	// the decimal mark.
	lastComma := strings.LastIndexByte(cleaned, ',')
	lastDot := strings.LastIndexByte(cleaned, '.')
	if lastComma > lastDot {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", -1)
	} else if lastDot > lastComma {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseDate parses a date cell, returning nil on unparseable input rather than
// an error. Excel serial dates (days since 1899-12-30) are supported since
// xlsx exports frequently surface them as plain numbers.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 59 && serial < 200000 {
		epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
		t := epoch.AddDate(0, 0, int(serial))
		return &t
	}
	return nil
}
