package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/fidura/compta_recon_app/internal/core/domain"
	portssvc "github.com/fidura/compta_recon_app/internal/core/ports/services"
	"github.com/fidura/compta_recon_app/internal/utils/textnorm"
)

// Field length caps applied before anything leaves the reconciliation boundary.
const (
	maxClientNameLen  = 100
	maxDescriptionLen = 200
	maxReferenceLen   = 50
	maxBatchEntries   = 25
)

// injectionPatterns match prompt-injection attempts embedded in imported text.
// Matched spans are removed, not escaped: imported ledger text has no
// legitimate reason to contain them.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?(previous|prior|above)\s+(instructions|prompts?)`),
	regexp.MustCompile(`(?i)(system|assistant|user)\s*:`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s`),
	regexp.MustCompile(`(?i)disregard\s+(the\s+)?(rules|instructions)`),
	regexp.MustCompile("[{}<>`]"),
}

// SanitizeForPrompt length-caps and pattern-filters a free-text field before it
// is handed to the text-generation collaborator. Hard precondition of every
// outbound call, not an optional cleanup.
func SanitizeForPrompt(s string, maxLen int) string {
	s = textnorm.CollapseWhitespace(s)
	for _, re := range injectionPatterns {
		s = re.ReplaceAllString(s, " ")
	}
	s = textnorm.CollapseWhitespace(s)
	if runes := []rune(s); len(runes) > maxLen {
		s = string(runes[:maxLen])
	}
	return s
}

// justificationService wraps the external text generator behind the mandatory
// sanitization step.
type justificationService struct {
	generator portssvc.TextGenerator
}

// NewJustificationService creates a new justification drafting service.
func NewJustificationService(generator portssvc.TextGenerator) portssvc.JustificationSvcFacade {
	return &justificationService{generator: generator}
}

var _ portssvc.JustificationSvcFacade = (*justificationService)(nil)

// DraftJustification sanitizes the entry's fields and requests a draft message.
func (s *justificationService) DraftJustification(ctx context.Context, entry domain.LedgerEntry, clientName string) (string, error) {
	jc := portssvc.JustificationContext{
		ClientName:  SanitizeForPrompt(clientName, maxClientNameLen),
		Amount:      entry.TotalAmount().StringFixed(2),
		Date:        entry.Date,
		Description: SanitizeForPrompt(entry.Description, maxDescriptionLen),
		Reference:   SanitizeForPrompt(entry.Reference, maxReferenceLen),
		LedgerType:  entry.LedgerType,
	}
	return s.generator.GenerateJustification(ctx, jc)
}

// DraftSuggestions sanitizes a capped batch of flagged entries and requests
// remediation hints.
func (s *justificationService) DraftSuggestions(ctx context.Context, entries []domain.LedgerEntry) ([]string, error) {
	if len(entries) > maxBatchEntries {
		entries = entries[:maxBatchEntries]
	}
	sanitized := make([]domain.LedgerEntry, len(entries))
	for i, e := range entries {
		e.Description = SanitizeForPrompt(e.Description, maxDescriptionLen)
		e.Reference = SanitizeForPrompt(e.Reference, maxReferenceLen)
		e.AccountName = SanitizeForPrompt(e.AccountName, maxClientNameLen)
		sanitized[i] = e
	}
	return s.generator.GenerateSuggestions(ctx, sanitized)
}

// NoopTextGenerator is the default collaborator when no provider is configured:
// it drafts a plain template so the endpoint stays functional in degraded mode.
type NoopTextGenerator struct{}

var _ portssvc.TextGenerator = (*NoopTextGenerator)(nil)

func (NoopTextGenerator) GenerateJustification(_ context.Context, jc portssvc.JustificationContext) (string, error) {
	var b strings.Builder
	b.WriteString("Bonjour,\n\nPourriez-vous nous transmettre le justificatif du mouvement")
	if jc.Reference != "" {
		b.WriteString(" (réf. " + jc.Reference + ")")
	}
	b.WriteString(" d'un montant de " + jc.Amount + " € ?")
	if jc.Date != nil {
		b.WriteString(" Mouvement daté du " + jc.Date.Format("02/01/2006") + ".")
	}
	b.WriteString("\n\nCordialement")
	return b.String(), nil
}

func (NoopTextGenerator) GenerateSuggestions(_ context.Context, entries []domain.LedgerEntry) ([]string, error) {
	suggestions := make([]string, 0, len(entries))
	for _, e := range entries {
		suggestions = append(suggestions, "Demander le justificatif pour l'écriture "+e.EntryID)
	}
	return suggestions, nil
}
