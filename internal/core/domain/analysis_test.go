package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBadges_PriorityOrder(t *testing.T) {
	result := AnalysisResult{
		UnsolvedInvoices:             []string{"e-1", "e-2"},
		PaymentsWithoutJustification: []string{"e-2", "e-3"},
		SuspiciousEntries:            []string{"e-3", "e-4"},
	}

	badges := result.Badges()

	assert.Equal(t, BadgeUnsolved, badges["e-1"])
	assert.Equal(t, BadgeUnsolved, badges["e-2"], "unsolved outranks missing justification")
	assert.Equal(t, BadgeMissingJustification, badges["e-3"], "missing justification outranks suspicious")
	assert.Equal(t, BadgeSuspicious, badges["e-4"])
}

func TestBadgeFor_CompliantByDefault(t *testing.T) {
	result := AnalysisResult{SuspiciousEntries: []string{"e-1"}}

	assert.Equal(t, BadgeSuspicious, result.BadgeFor("e-1"))
	assert.Equal(t, BadgeCompliant, result.BadgeFor("e-99"))
}

func TestSnapshotCacheKey_RoundTrip(t *testing.T) {
	key := SnapshotCacheKey("client-1", "2024-03")
	assert.Equal(t, "client-1::2024-03", key)

	clientID, period, ok := ParseSnapshotCacheKey(key)
	assert.True(t, ok)
	assert.Equal(t, "client-1", clientID)
	assert.Equal(t, "2024-03", period)

	clientID, period, ok = ParseSnapshotCacheKey(SnapshotCacheKey("client-1", ""))
	assert.True(t, ok)
	assert.Equal(t, "client-1", clientID)
	assert.Empty(t, period)
}

func TestParseSnapshotCacheKey_RejectsMalformedKeys(t *testing.T) {
	for _, key := range []string{"", "no-separator", "::missing-client"} {
		_, _, ok := ParseSnapshotCacheKey(key)
		assert.False(t, ok, "key %q must be rejected", key)
	}
}

func TestLedgerEntry_Discriminant(t *testing.T) {
	e := LedgerEntry{InvoiceNumber: "FV-1", BillNumber: "FF-1", Category: "frais"}

	e.LedgerType = ClientLedger
	assert.Equal(t, "FV-1", e.Discriminant())
	e.LedgerType = SupplierLedger
	assert.Equal(t, "FF-1", e.Discriminant())
	e.LedgerType = MiscLedger
	assert.Equal(t, "frais", e.Discriminant())
}
