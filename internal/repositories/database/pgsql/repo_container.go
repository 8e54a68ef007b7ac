package pgsql

import (
	portsrepo "github.com/fidura/compta_recon_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx-backed repository over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:  newPgxLedgerRepository(pool),
		BalanceRepo: newPgxBalanceRepository(pool),
		CommentRepo: newPgxCommentRepository(pool),
	}
}
