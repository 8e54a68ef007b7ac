package models

import "time"

// BalanceCache maps to the balance_cache table: one serialized snapshot per
// (client, period), addressed by its composite cache key.
type BalanceCache struct {
	CacheKey  string    `json:"cacheKey"` // "{clientId}::{period|''}", unique
	ClientID  string    `json:"clientID"`
	Period    string    `json:"period"`
	Data      []byte    `json:"data"` // jsonb snapshot payload
	UpdatedAt time.Time `json:"updatedAt"`
}

// BalanceLastPeriod maps to the balance_last_period table: the most recent
// period written for each client. One row per client.
type BalanceLastPeriod struct {
	ClientID  string    `json:"clientID"`
	Period    string    `json:"period"`
	UpdatedAt time.Time `json:"updatedAt"`
}
