package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSnapshot is the computed balance view cached per (client, period).
// Period is a "YYYY-MM" month or empty for the full ledger.
type BalanceSnapshot struct {
	ClientID    string          `json:"clientID"`
	Period      string          `json:"period"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"`
	EntryCount  int             `json:"entryCount"`
	ComputedAt  time.Time       `json:"computedAt"`
}

const snapshotKeySep = "::"

// SnapshotCacheKey builds the tier key for a balance snapshot: "{clientId}::{period|''}".
func SnapshotCacheKey(clientID, period string) string {
	return clientID + snapshotKeySep + period
}

// ParseSnapshotCacheKey splits a tier key back into (clientID, period).
// Keys without the separator or with an empty client part are rejected.
func ParseSnapshotCacheKey(key string) (clientID, period string, ok bool) {
	idx := strings.Index(key, snapshotKeySep)
	if idx <= 0 {
		return "", "", false
	}
	return key[:idx], key[idx+len(snapshotKeySep):], true
}

// CommentCacheKey builds the in-memory key for a comment thread lookup:
// "{clientId}|{entryId}". Not a wire format.
func CommentCacheKey(clientID, entryID string) string {
	return clientID + "|" + entryID
}
