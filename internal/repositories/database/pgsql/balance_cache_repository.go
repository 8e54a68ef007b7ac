package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fidura/compta_recon_app/internal/apperrors"
	"github.com/fidura/compta_recon_app/internal/core/domain"
	portsrepo "github.com/fidura/compta_recon_app/internal/core/ports/repositories"
	"github.com/fidura/compta_recon_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxBalanceRepository is the database-persisted cache tier over the
// balance_cache and balance_last_period tables. Structural failures (table
// missing, privileges revoked) surface as ErrTierUnavailable so the cache
// manager can fall back instead of erroring.
type PgxBalanceRepository struct {
	BaseRepository
}

// newPgxBalanceRepository creates the database tier for balance snapshots.
func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepositoryFacade {
	return &PgxBalanceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.BalanceRepositoryFacade = (*PgxBalanceRepository)(nil)

// Name identifies the tier in logs.
func (r *PgxBalanceRepository) Name() string { return "database" }

// Get retrieves the snapshot stored under key.
func (r *PgxBalanceRepository) Get(ctx context.Context, key string) (*domain.BalanceSnapshot, bool, error) {
	query := `SELECT cache_key, client_id, period, data, updated_at FROM balance_cache WHERE cache_key = $1;`
	var row models.BalanceCache
	err := r.Pool.QueryRow(ctx, query, key).Scan(&row.CacheKey, &row.ClientID, &row.Period, &row.Data, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, r.tierError("failed to read balance_cache", err)
	}

	var snapshot domain.BalanceSnapshot
	if err := json.Unmarshal(row.Data, &snapshot); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached snapshot %s: %w", key, err)
	}
	return &snapshot, true, nil
}

// Set upserts the snapshot under key. No versioning: the previous payload is
// overwritten.
func (r *PgxBalanceRepository) Set(ctx context.Context, key string, snapshot domain.BalanceSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", key, err)
	}

	query := `
		INSERT INTO balance_cache (cache_key, client_id, period, data, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (cache_key) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at;
	`
	_, err = r.Pool.Exec(ctx, query, key, snapshot.ClientID, snapshot.Period, data, time.Now().UTC())
	if err != nil {
		return r.tierError("failed to upsert balance_cache", err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (r *PgxBalanceRepository) Delete(ctx context.Context, key string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM balance_cache WHERE cache_key = $1;`, key)
	if err != nil {
		return r.tierError("failed to delete from balance_cache", err)
	}
	return nil
}

// Keys enumerates every snapshot key held by this tier.
func (r *PgxBalanceRepository) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT cache_key FROM balance_cache ORDER BY cache_key;`)
	if err != nil {
		return nil, r.tierError("failed to list balance_cache keys", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan balance_cache key", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating balance_cache keys", err)
	}
	return keys, nil
}

// UpsertLastPeriod remembers period as clientID's most recent written period.
func (r *PgxBalanceRepository) UpsertLastPeriod(ctx context.Context, clientID, period string) error {
	query := `
		INSERT INTO balance_last_period (client_id, period, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (client_id) DO UPDATE SET
			period = EXCLUDED.period,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := r.Pool.Exec(ctx, query, clientID, period, time.Now().UTC())
	if err != nil {
		return r.tierError("failed to upsert balance_last_period", err)
	}
	return nil
}

// GetLastPeriod returns the most recent period written for clientID.
func (r *PgxBalanceRepository) GetLastPeriod(ctx context.Context, clientID string) (string, error) {
	query := `SELECT client_id, period, updated_at FROM balance_last_period WHERE client_id = $1;`
	var row models.BalanceLastPeriod
	err := r.Pool.QueryRow(ctx, query, clientID).Scan(&row.ClientID, &row.Period, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", r.tierError("failed to read balance_last_period", err)
	}
	return row.Period, nil
}

func (r *PgxBalanceRepository) tierError(msg string, err error) error {
	if isStructuralError(err) {
		return fmt.Errorf("%s: %w: %w", msg, apperrors.ErrTierUnavailable, err)
	}
	return apperrors.NewAppError(500, msg, err)
}
