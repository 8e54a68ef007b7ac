package textnorm_test

import (
	"testing"

	"github.com/fidura/compta_recon_app/internal/utils/textnorm"
	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"accents stripped", "Règlement Facture", "reglement facture"},
		{"uppercase folded", "DUPONT", "dupont"},
		{"mixed diacritics", "Éléonore Çédille", "eleonore cedille"},
		{"plain ascii untouched", "simple text", "simple text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textnorm.Fold(tt.in))
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", textnorm.CollapseWhitespace("  a \t b\n c  "))
	assert.Equal(t, "", textnorm.CollapseWhitespace("   "))
}

func TestCanonicalEquivalence(t *testing.T) {
	variants := []string{
		"Règlement  Fournisseur",
		"règlement fournisseur",
		" REGLEMENT\tFOURNISSEUR ",
	}
	want := textnorm.Canonical(variants[0])
	for _, v := range variants {
		assert.Equal(t, want, textnorm.Canonical(v), "variant %q should collapse to the same form", v)
	}
}
