package domain

// AnomalyBadge is the single badge the UI shows per entry. An entry may belong
// to several classification sets; the badge follows the display priority
// unsolved > missing-justification > suspicious > compliant.
type AnomalyBadge string

const (
	BadgeUnsolved             AnomalyBadge = "UNSOLVED"
	BadgeMissingJustification AnomalyBadge = "MISSING_JUSTIFICATION"
	BadgeSuspicious           AnomalyBadge = "SUSPICIOUS"
	BadgeCompliant            AnomalyBadge = "COMPLIANT"
)

// AnalysisResult holds the three classification sets for one (client, ledger type)
// batch. Always derived, never stored; recomputing over the same batch yields
// identical membership. Sets reference entries by EntryID in batch order.
type AnalysisResult struct {
	UnsolvedInvoices             []string `json:"unsolvedInvoices"`
	PaymentsWithoutJustification []string `json:"paymentsWithoutJustification"`
	SuspiciousEntries            []string `json:"suspiciousEntries"`
}

// Badges projects the three sets onto one badge per flagged entry, applying the
// display priority order.
func (r AnalysisResult) Badges() map[string]AnomalyBadge {
	badges := make(map[string]AnomalyBadge)
	for _, id := range r.SuspiciousEntries {
		badges[id] = BadgeSuspicious
	}
	for _, id := range r.PaymentsWithoutJustification {
		badges[id] = BadgeMissingJustification
	}
	for _, id := range r.UnsolvedInvoices {
		badges[id] = BadgeUnsolved
	}
	return badges
}

// BadgeFor returns the display badge for a single entry.
func (r AnalysisResult) BadgeFor(entryID string) AnomalyBadge {
	if badge, ok := r.Badges()[entryID]; ok {
		return badge
	}
	return BadgeCompliant
}
