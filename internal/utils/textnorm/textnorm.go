// Package textnorm normalizes free-text ledger fields so that case, accent and
// whitespace variants of the same value compare equal.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases s and strips combining diacritical marks ("Règlement" -> "reglement").
func Fold(s string) string {
	// Transformers carry state, so build the chain per call.
	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(chain, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// CollapseWhitespace trims s and collapses internal whitespace runs to single spaces.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Canonical applies Fold then CollapseWhitespace. This is the projection used
// for signature generation and header-alias matching.
func Canonical(s string) string {
	return CollapseWhitespace(Fold(s))
}
