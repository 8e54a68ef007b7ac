package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fidura/compta_recon_app/internal/core/domain"
	portsrepo "github.com/fidura/compta_recon_app/internal/core/ports/repositories"
)

// Tier is the in-process snapshot tier. It never reports unavailability: as
// long as the process runs, writes here succeed, which makes it the floor the
// cache manager can always count on.
type Tier struct {
	mu        sync.RWMutex
	snapshots map[string]domain.BalanceSnapshot
}

// NewTier creates an empty in-memory tier.
func NewTier() *Tier {
	return &Tier{
		snapshots: make(map[string]domain.BalanceSnapshot),
	}
}

// Ensure implementation matches interface
var _ portsrepo.SnapshotTier = (*Tier)(nil)

// Name identifies the tier in logs.
func (t *Tier) Name() string { return "memory" }

// Get retrieves the snapshot stored under key.
func (t *Tier) Get(_ context.Context, key string) (*domain.BalanceSnapshot, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snapshot, ok := t.snapshots[key]
	if !ok {
		return nil, false, nil
	}
	// Copy out so callers cannot mutate the stored value.
	out := snapshot
	return &out, true, nil
}

// Set stores snapshot under key, overwriting any previous value.
func (t *Tier) Set(_ context.Context, key string, snapshot domain.BalanceSnapshot) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.snapshots[key] = snapshot
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (t *Tier) Delete(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.snapshots, key)
	return nil
}

// Keys enumerates every snapshot key held by this tier, sorted for stable
// iteration.
func (t *Tier) Keys(_ context.Context) ([]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := make([]string, 0, len(t.snapshots))
	for key := range t.snapshots {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
