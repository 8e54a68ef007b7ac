package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fidura/compta_recon_app/internal/apperrors"
	"github.com/fidura/compta_recon_app/internal/core/domain"
	portsrepo "github.com/fidura/compta_recon_app/internal/core/ports/repositories"
	goredis "github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "recon:balance:"
	keySetKey = "recon:balance:keys"
)

// Tier is the session-store snapshot tier backed by Redis. Snapshots are kept
// as JSON values under prefixed keys; a companion set tracks the keys so
// migration can enumerate them without SCAN.
//
// Any Redis transport error is reported as ErrTierUnavailable: an unreachable
// server degrades this tier, it never fails a request on its own.
type Tier struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewTier creates a Redis-backed tier. ttl bounds snapshot lifetime; zero
// keeps entries until explicitly deleted or evicted.
func NewTier(client *goredis.Client, ttl time.Duration) *Tier {
	return &Tier{client: client, ttl: ttl}
}

// Ensure implementation matches interface
var _ portsrepo.SnapshotTier = (*Tier)(nil)

// Name identifies the tier in logs.
func (t *Tier) Name() string { return "session" }

// Get retrieves the snapshot stored under key.
func (t *Tier) Get(ctx context.Context, key string) (*domain.BalanceSnapshot, bool, error) {
	data, err := t.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, t.tierError("failed to read session tier", err)
	}

	var snapshot domain.BalanceSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, false, fmt.Errorf("failed to decode session snapshot %s: %w", key, err)
	}
	return &snapshot, true, nil
}

// Set stores snapshot under key, overwriting any previous value.
func (t *Tier) Set(ctx context.Context, key string, snapshot domain.BalanceSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", key, err)
	}

	pipe := t.client.TxPipeline()
	pipe.Set(ctx, keyPrefix+key, data, t.ttl)
	pipe.SAdd(ctx, keySetKey, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return t.tierError("failed to write session tier", err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (t *Tier) Delete(ctx context.Context, key string) error {
	pipe := t.client.TxPipeline()
	pipe.Del(ctx, keyPrefix+key)
	pipe.SRem(ctx, keySetKey, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return t.tierError("failed to delete from session tier", err)
	}
	return nil
}

// Keys enumerates every snapshot key held by this tier. Entries that expired
// via TTL may still be listed until the next Delete touches them; Get on such
// a key reports a clean miss.
func (t *Tier) Keys(ctx context.Context) ([]string, error) {
	keys, err := t.client.SMembers(ctx, keySetKey).Result()
	if err != nil {
		return nil, t.tierError("failed to list session tier keys", err)
	}
	return keys, nil
}

func (t *Tier) tierError(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, apperrors.ErrTierUnavailable, err)
}
