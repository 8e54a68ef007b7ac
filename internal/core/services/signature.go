package services

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/fidura/compta_recon_app/internal/core/domain"
	"github.com/fidura/compta_recon_app/internal/utils/textnorm"
)

// SignatureOf derives the canonical, order-independent identity key of a ledger
// entry from its semantic content. Two entries that are semantically identical
// collapse to the same signature even across different import files, casing or
// accent encodings. Amounts are rounded to two decimals before hashing so
// floating-point noise at the import boundary cannot split signatures.
func SignatureOf(e domain.LedgerEntry) string {
	date := ""
	if e.Date != nil {
		date = e.Date.Format("2006-01-02")
	}

	parts := []string{
		date,
		textnorm.Canonical(e.AccountNumber),
		textnorm.Canonical(e.Description),
		textnorm.Canonical(e.Reference),
		e.Debit.Round(2).StringFixed(2),
		e.Credit.Round(2).StringFixed(2),
		e.ClientID,
		string(e.LedgerType),
		textnorm.Canonical(e.Discriminant()),
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// Dedup iterates the candidate batch once in first-seen order, excluding any
// entry whose signature is already in existing or has appeared earlier in the
// same batch. It returns the surviving entries (with Signature filled in) and
// the updated signature set. The caller owns the set's lifetime, typically
// scoped to a client's full ledger.
func Dedup(batch []domain.LedgerEntry, existing map[string]struct{}) ([]domain.LedgerEntry, map[string]struct{}) {
	signatures := make(map[string]struct{}, len(existing)+len(batch))
	for sig := range existing {
		signatures[sig] = struct{}{}
	}

	unique := make([]domain.LedgerEntry, 0, len(batch))
	for _, entry := range batch {
		sig := SignatureOf(entry)
		if _, seen := signatures[sig]; seen {
			continue // DuplicateSkip: excluded from the inserted count, not an error
		}
		signatures[sig] = struct{}{}
		entry.Signature = sig
		unique = append(unique, entry)
	}
	return unique, signatures
}
