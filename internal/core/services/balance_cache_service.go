package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fidura/compta_recon_app/internal/apperrors"
	"github.com/fidura/compta_recon_app/internal/core/domain"
	portsrepo "github.com/fidura/compta_recon_app/internal/core/ports/repositories"
	portssvc "github.com/fidura/compta_recon_app/internal/core/ports/services"
	"github.com/fidura/compta_recon_app/internal/middleware"
)

// balanceCacheService coordinates the three snapshot tiers behind one
// read/write contract. Instances are constructed per server and passed by
// reference; there is deliberately no package-level cache state.
type balanceCacheService struct {
	memory  portsrepo.SnapshotTier
	session portsrepo.SnapshotTier // may be nil when no session store is configured
	db      portsrepo.BalanceRepositoryFacade
}

// NewBalanceCacheService creates the tiered cache manager. memory is the
// always-available floor; session and db degrade gracefully when unreachable.
func NewBalanceCacheService(memory portsrepo.SnapshotTier, session portsrepo.SnapshotTier, db portsrepo.BalanceRepositoryFacade) portssvc.BalanceSvcFacade {
	return &balanceCacheService{memory: memory, session: session, db: db}
}

var _ portssvc.BalanceSvcFacade = (*balanceCacheService)(nil)

// tiers returns the configured tiers in lookup order, fastest first.
func (s *balanceCacheService) tiers() []portsrepo.SnapshotTier {
	out := []portsrepo.SnapshotTier{s.memory}
	if s.session != nil {
		out = append(out, s.session)
	}
	if s.db != nil {
		out = append(out, s.db)
	}
	return out
}

// GetBalance reads through the tiers in order. The first hit back-fills every
// faster tier before returning. Tier failures are logged and skipped; only a
// miss across all tiers surfaces, as ErrNotFound.
func (s *balanceCacheService) GetBalance(ctx context.Context, clientID, period string) (*domain.BalanceSnapshot, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, apperrors.ErrMissingClientID
	}
	logger := middleware.GetLoggerFromCtx(ctx)
	key := domain.SnapshotCacheKey(clientID, period)

	tiers := s.tiers()
	for i, tier := range tiers {
		snapshot, found, err := tier.Get(ctx, key)
		if err != nil {
			logger.Warn("Cache tier read failed, falling back",
				slog.String("tier", tier.Name()), slog.String("key", key), slog.String("error", err.Error()))
			continue
		}
		if !found {
			continue
		}
		// Read-through: populate the faster tiers that missed.
		for j := 0; j < i; j++ {
			if err := tiers[j].Set(ctx, key, *snapshot); err != nil {
				logger.Warn("Cache tier back-fill failed",
					slog.String("tier", tiers[j].Name()), slog.String("key", key), slog.String("error", err.Error()))
			}
		}
		return snapshot, nil
	}
	return nil, apperrors.ErrNotFound
}

// SaveBalance writes the snapshot to every tier. Memory is written
// synchronously and is the success floor; slower tiers failing is logged as a
// warning and never surfaces (fail-soft policy).
func (s *balanceCacheService) SaveBalance(ctx context.Context, snapshot domain.BalanceSnapshot) error {
	if strings.TrimSpace(snapshot.ClientID) == "" {
		return apperrors.ErrMissingClientID
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	snapshot.Balance = snapshot.TotalDebit.Sub(snapshot.TotalCredit)
	if snapshot.ComputedAt.IsZero() {
		snapshot.ComputedAt = time.Now().UTC()
	}
	key := domain.SnapshotCacheKey(snapshot.ClientID, snapshot.Period)

	if err := s.memory.Set(ctx, key, snapshot); err != nil {
		// The memory tier is the floor; if even that fails the write failed.
		return err
	}
	for _, tier := range s.tiers()[1:] {
		if err := tier.Set(ctx, key, snapshot); err != nil {
			logger.Warn("Cache tier write failed, continuing",
				slog.String("tier", tier.Name()), slog.String("key", key), slog.String("error", err.Error()))
		}
	}

	if s.db != nil && snapshot.Period != "" {
		if err := s.db.UpsertLastPeriod(ctx, snapshot.ClientID, snapshot.Period); err != nil {
			logger.Warn("Last-period upsert failed, continuing",
				slog.String("client_id", snapshot.ClientID), slog.String("error", err.Error()))
		}
	}
	return nil
}

// ClearBalance removes the snapshot from every tier it can reach. Tier-level
// failures during clear are swallowed, best-effort.
func (s *balanceCacheService) ClearBalance(ctx context.Context, clientID, period string) error {
	if strings.TrimSpace(clientID) == "" {
		return apperrors.ErrMissingClientID
	}
	logger := middleware.GetLoggerFromCtx(ctx)
	key := domain.SnapshotCacheKey(clientID, period)

	for _, tier := range s.tiers() {
		if err := tier.Delete(ctx, key); err != nil {
			logger.Warn("Cache tier clear failed, continuing",
				slog.String("tier", tier.Name()), slog.String("key", key), slog.String("error", err.Error()))
		}
	}
	return nil
}

// Migrate enumerates every session-tier key matching the snapshot pattern and
// upserts the corresponding record into the database tier. Per-key failures
// are logged and skipped; the operation runs to completion and reports
// per-key outcome counts. There is no concurrency guard: callers must not run
// it alongside writers to the same keys.
func (s *balanceCacheService) Migrate(ctx context.Context) (*portssvc.MigrationReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	report := &portssvc.MigrationReport{}

	if s.session == nil || s.db == nil {
		logger.Warn("Migration skipped: session or database tier not configured")
		return report, nil
	}

	keys, err := s.session.Keys(ctx)
	if err != nil {
		return nil, err
	}

	for _, key := range keys {
		report.Scanned++
		clientID, period, ok := domain.ParseSnapshotCacheKey(key)
		if !ok {
			report.Skipped++
			continue
		}

		snapshot, found, err := s.session.Get(ctx, key)
		if err != nil || !found {
			report.Failed++
			logger.Warn("Migration could not read session key, skipping",
				slog.String("key", key))
			continue
		}
		if err := s.db.Set(ctx, key, *snapshot); err != nil {
			report.Failed++
			logger.Warn("Migration upsert failed, skipping",
				slog.String("key", key), slog.String("error", err.Error()))
			continue
		}
		if period != "" {
			if err := s.db.UpsertLastPeriod(ctx, clientID, period); err != nil {
				logger.Warn("Migration last-period upsert failed, continuing",
					slog.String("client_id", clientID), slog.String("error", err.Error()))
			}
		}
		report.Migrated++
	}

	logger.Info("Cache migration completed",
		slog.Int("scanned", report.Scanned),
		slog.Int("migrated", report.Migrated),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}
