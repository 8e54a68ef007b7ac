package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/fidura/compta_recon_app/internal/apperrors"
	"github.com/fidura/compta_recon_app/internal/core/domain"
	portsrepo "github.com/fidura/compta_recon_app/internal/core/ports/repositories"
	"github.com/fidura/compta_recon_app/internal/models"
	"github.com/fidura/compta_recon_app/internal/utils/mapping"
	"github.com/fidura/compta_recon_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ledgerEntryColumns = `entry_id, client_id, ledger_type, entry_date, account_number, account_name,
		description, debit, credit, balance, reference, invoice_number, bill_number, category,
		signature, is_imported, created_at`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entry data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

// SaveEntries persists a batch of unique entries in a single transaction.
// The signature column carries a per-client unique index; a conflict here means
// dedup was bypassed, so the row is skipped rather than duplicated.
func (r *PgxLedgerRepository) SaveEntries(ctx context.Context, entries []domain.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO ledger_entries (` + ledgerEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (client_id, signature) DO NOTHING;
	`
	for _, entry := range entries {
		m := mapping.ToModelLedgerEntry(entry)
		_, err := tx.Exec(ctx, query,
			m.EntryID, m.ClientID, m.LedgerType, m.EntryDate, m.AccountNumber, m.AccountName,
			m.Description, m.Debit, m.Credit, m.Balance, m.Reference, m.InvoiceNumber,
			m.BillNumber, m.Category, m.Signature, m.IsImported, m.CreatedAt,
		)
		if err != nil {
			// Signature conflicts are absorbed by ON CONFLICT; a unique
			// violation here is a reused entry id.
			if isUniqueViolation(err) {
				return fmt.Errorf("ledger entry %s: %w", m.EntryID, apperrors.ErrDuplicate)
			}
			return fmt.Errorf("failed to save ledger entry %s: %w", m.EntryID, err)
		}
	}
	return r.Commit(ctx, tx)
}

// ListEntries retrieves the full batch for one (client, ledger type) scope,
// entry date then creation time order. Analysis runs over this result.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, clientID string, ledgerType domain.LedgerType) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE client_id = $1 AND ledger_type = $2
		ORDER BY entry_date NULLS LAST, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, clientID, string(ledgerType))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries", err)
	}
	defer rows.Close()

	modelEntries, err := collectLedgerRows(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan ledger entries", err)
	}
	return mapping.ToDomainLedgerEntrySlice(modelEntries), nil
}

// ListEntriesPage retrieves one keyset page ordered by (entry_date, created_at).
func (r *PgxLedgerRepository) ListEntriesPage(ctx context.Context, clientID string, ledgerType domain.LedgerType, afterDate, afterCreated time.Time, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	// NULL entry dates are compared through the same sentinel the service
	// encodes into tokens, so undated rows page like any other row.
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE client_id = $1 AND ledger_type = $2
		  AND (COALESCE(entry_date, $6::timestamptz), created_at) > ($3, $4)
		ORDER BY COALESCE(entry_date, $6::timestamptz), created_at
		LIMIT $5;
	`
	rows, err := r.Pool.Query(ctx, query, clientID, string(ledgerType), afterDate, afterCreated, limit, pagination.UndatedSentinel)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entry page", err)
	}
	defer rows.Close()

	modelEntries, err := collectLedgerRows(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan ledger entry page", err)
	}
	return mapping.ToDomainLedgerEntrySlice(modelEntries), nil
}

// ListSignatures retrieves the signature set over a client's full ledger.
func (r *PgxLedgerRepository) ListSignatures(ctx context.Context, clientID string) (map[string]struct{}, error) {
	query := `SELECT signature FROM ledger_entries WHERE client_id = $1;`
	rows, err := r.Pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger signatures", err)
	}
	defer rows.Close()

	signatures := make(map[string]struct{})
	for rows.Next() {
		var sig string
		if err := rows.Scan(&sig); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger signature", err)
		}
		signatures[sig] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger signatures", err)
	}
	return signatures, nil
}

func collectLedgerRows(rows pgx.Rows) ([]models.LedgerEntry, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.LedgerEntry, error) {
		var m models.LedgerEntry
		err := row.Scan(
			&m.EntryID, &m.ClientID, &m.LedgerType, &m.EntryDate, &m.AccountNumber, &m.AccountName,
			&m.Description, &m.Debit, &m.Credit, &m.Balance, &m.Reference, &m.InvoiceNumber,
			&m.BillNumber, &m.Category, &m.Signature, &m.IsImported, &m.CreatedAt,
		)
		return m, err
	})
}
