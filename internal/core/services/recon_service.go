package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fidura/compta_recon_app/internal/apperrors"
	"github.com/fidura/compta_recon_app/internal/core/domain"
	portsrepo "github.com/fidura/compta_recon_app/internal/core/ports/repositories"
	portssvc "github.com/fidura/compta_recon_app/internal/core/ports/services"
	"github.com/fidura/compta_recon_app/internal/middleware"
	"github.com/fidura/compta_recon_app/internal/utils/pagination"
	"github.com/fidura/compta_recon_app/internal/utils/textnorm"
)

var (
	// settlementTolerance absorbs rounding drift when matching invoiced
	// against paid totals.
	settlementTolerance = decimal.NewFromInt(1)

	// roundAmountBase: amounts that are an exact multiple of this are one of
	// the two suspicious conditions.
	roundAmountBase = decimal.NewFromInt(100)

	// supplierHighValue: supplier ledgers only treat a round amount as
	// suspicious on its own above this threshold.
	supplierHighValue = decimal.NewFromInt(10000)
)

const (
	// vagueDescriptionLen: descriptions shorter than this count as vague.
	vagueDescriptionLen = 10

	// minReferenceLen: a justification reference must be at least this long.
	minReferenceLen = 5

	defaultPageSize = 100
	maxPageSize     = 500
)

// justificationPrefixes are the accepted reference prefixes per ledger type.
// Misc ledgers use the client set.
var (
	clientRefPrefixes   = []string{"FAC", "REG", "CHQ", "VIR"}
	supplierRefPrefixes = []string{"FACT", "REG", "CHQ", "VIR", "BON", "PAY"}
)

// reconService classifies ledger batches against the three anomaly rules.
type reconService struct {
	ledgerRepo portsrepo.LedgerReader
}

// NewReconService creates a new reconciliation service.
func NewReconService(ledgerRepo portsrepo.LedgerReader) portssvc.ReconSvcFacade {
	return &reconService{ledgerRepo: ledgerRepo}
}

var _ portssvc.ReconSvcFacade = (*reconService)(nil)

// Analyze runs the three classification passes over one immutable batch of a
// single ledger type and client scope. Pure: no state, no I/O, deterministic
// over its input, therefore safely re-entrant.
func (s *reconService) Analyze(entries []domain.LedgerEntry) domain.AnalysisResult {
	if len(entries) == 0 {
		return domain.AnalysisResult{}
	}
	ledgerType := entries[0].LedgerType
	return domain.AnalysisResult{
		UnsolvedInvoices:             unsolvedPass(ledgerType, entries),
		PaymentsWithoutJustification: justificationPass(ledgerType, entries),
		SuspiciousEntries:            suspiciousPass(ledgerType, entries),
	}
}

// AnalyzeStored loads the stored batch for (client, ledger type), analyzes it
// and attaches display-only AIMeta annotations to flagged entries.
func (s *reconService) AnalyzeStored(ctx context.Context, clientID string, ledgerType domain.LedgerType) ([]domain.LedgerEntry, domain.AnalysisResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, err := s.ledgerRepo.ListEntries(ctx, clientID, ledgerType)
	if err != nil {
		return nil, domain.AnalysisResult{}, err
	}

	result := s.Analyze(entries)
	annotate(entries, result)

	logger.Info("Ledger analyzed",
		slog.String("client_id", clientID),
		slog.String("ledger_type", string(ledgerType)),
		slog.Int("entries", len(entries)),
		slog.Int("unsolved", len(result.UnsolvedInvoices)),
		slog.Int("missing_justification", len(result.PaymentsWithoutJustification)),
		slog.Int("suspicious", len(result.SuspiciousEntries)),
	)
	return entries, result, nil
}

// ListEntriesPage returns one keyset page plus the next-page token. The token
// encodes the last row's (entry date, creation time) pair.
func (s *reconService) ListEntriesPage(ctx context.Context, clientID string, ledgerType domain.LedgerType, token string, limit int) ([]domain.LedgerEntry, string, error) {
	var afterDate, afterCreated time.Time
	if token != "" {
		var err error
		afterDate, afterCreated, err = pagination.DecodeToken(token)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
	}
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}

	entries, err := s.ledgerRepo.ListEntriesPage(ctx, clientID, ledgerType, afterDate, afterCreated, limit)
	if err != nil {
		return nil, "", err
	}

	nextToken := ""
	if len(entries) == limit {
		last := entries[len(entries)-1]
		lastDate := pagination.UndatedSentinel
		if last.Date != nil {
			lastDate = *last.Date
		}
		nextToken = pagination.EncodeToken(lastDate, last.CreatedAt)
	}
	return entries, nextToken, nil
}

// unsolvedPass tracks cumulative invoiced (debit) and paid (credit) totals per
// counterparty in one pass, then flags invoice/bill entries whose counterparty
// remains short by more than the rounding tolerance. Supplier bills lacking a
// bill number participate through counterparty totals like any other entry.
// Misc ledgers carry no invoices, so the pass is empty for them.
func unsolvedPass(ledgerType domain.LedgerType, entries []domain.LedgerEntry) []string {
	if ledgerType == domain.MiscLedger {
		return nil
	}

	invoiced := make(map[string]decimal.Decimal)
	paid := make(map[string]decimal.Decimal)
	for _, e := range entries {
		if e.IsNoOp() {
			continue
		}
		cp := textnorm.Canonical(e.Counterparty())
		invoiced[cp] = invoiced[cp].Add(e.Debit)
		paid[cp] = paid[cp].Add(e.Credit)
	}

	var flagged []string
	for _, e := range entries {
		if e.IsNoOp() || !e.Debit.IsPositive() {
			continue
		}
		if ledgerType == domain.ClientLedger && e.InvoiceNumber == "" {
			continue // not an invoice line
		}
		cp := textnorm.Canonical(e.Counterparty())
		if invoiced[cp].Sub(paid[cp]).GreaterThan(settlementTolerance) {
			flagged = append(flagged, e.EntryID)
		}
	}
	return flagged
}

// justificationPass flags credit (payment) entries lacking an acceptable
// reference: at least minReferenceLen characters starting with a known prefix.
// Supplier payments are additionally excused by a present bill number.
func justificationPass(ledgerType domain.LedgerType, entries []domain.LedgerEntry) []string {
	prefixes := clientRefPrefixes
	if ledgerType == domain.SupplierLedger {
		prefixes = supplierRefPrefixes
	}

	var flagged []string
	for _, e := range entries {
		if e.IsNoOp() || !e.Credit.IsPositive() {
			continue
		}
		if hasJustifiedReference(e.Reference, prefixes) {
			continue
		}
		if ledgerType == domain.SupplierLedger && e.BillNumber != "" {
			continue
		}
		flagged = append(flagged, e.EntryID)
	}
	return flagged
}

func hasJustifiedReference(reference string, prefixes []string) bool {
	ref := strings.ToUpper(strings.TrimSpace(reference))
	if len(ref) < minReferenceLen {
		return false
	}
	for _, p := range prefixes {
		if strings.HasPrefix(ref, p) {
			return true
		}
	}
	return false
}

// suspiciousPass flags entries by heuristics. Client and misc ledgers: a round
// multiple of 100 paired with a weekend date or a vague description. Supplier
// ledgers: round-and-high-value, or weekend-and-vague, as two independent
// conditions joined by OR. Entries without a date never satisfy the weekend
// condition.
func suspiciousPass(ledgerType domain.LedgerType, entries []domain.LedgerEntry) []string {
	var flagged []string
	for _, e := range entries {
		if e.IsNoOp() {
			continue
		}
		if isSuspicious(ledgerType, e) {
			flagged = append(flagged, e.EntryID)
		}
	}
	return flagged
}

func isSuspicious(ledgerType domain.LedgerType, e domain.LedgerEntry) bool {
	amount := e.TotalAmount()
	round := amount.IsPositive() && amount.Mod(roundAmountBase).IsZero()
	weekend := isWeekend(e.Date)
	vague := len([]rune(strings.TrimSpace(e.Description))) < vagueDescriptionLen

	if ledgerType == domain.SupplierLedger {
		return (round && amount.GreaterThan(supplierHighValue)) || (weekend && vague)
	}
	return round && (weekend || vague)
}

func isWeekend(date *time.Time) bool {
	if date == nil {
		return false
	}
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// annotate attaches display-only AIMeta to every flagged entry: the reasons it
// was flagged and a level graded by how many sets contain it.
func annotate(entries []domain.LedgerEntry, result domain.AnalysisResult) {
	reasons := make(map[string][]string)
	for _, id := range result.UnsolvedInvoices {
		reasons[id] = append(reasons[id], "invoiced total exceeds paid total")
	}
	for _, id := range result.PaymentsWithoutJustification {
		reasons[id] = append(reasons[id], "payment lacks a justification reference")
	}
	for _, id := range result.SuspiciousEntries {
		reasons[id] = append(reasons[id], "amount or date pattern looks irregular")
	}

	for i := range entries {
		rs := reasons[entries[i].EntryID]
		if len(rs) == 0 {
			continue
		}
		level := domain.SuspiciousLow
		switch {
		case len(rs) >= 3:
			level = domain.SuspiciousHigh
		case len(rs) == 2:
			level = domain.SuspiciousMedium
		}
		entries[i].AIMeta = &domain.AIMeta{SuspiciousLevel: level, Reasons: rs}
	}
}
