package pgsql

import (
	"context"

	"github.com/fidura/compta_recon_app/internal/apperrors"
	"github.com/fidura/compta_recon_app/internal/core/domain"
	portsrepo "github.com/fidura/compta_recon_app/internal/core/ports/repositories"
	"github.com/fidura/compta_recon_app/internal/models"
	"github.com/fidura/compta_recon_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const commentColumns = `comment_id, entry_id, client_id, ledger_type, author, author_type, content, priority, is_internal, created_at`

// PgxCommentRepository persists ledger comment threads.
type PgxCommentRepository struct {
	BaseRepository
}

// newPgxCommentRepository creates a comment repository backed by pgx.
func newPgxCommentRepository(pool *pgxpool.Pool) portsrepo.CommentRepositoryFacade {
	return &PgxCommentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CommentRepositoryFacade = (*PgxCommentRepository)(nil)

// SaveComment persists a new comment.
func (r *PgxCommentRepository) SaveComment(ctx context.Context, comment domain.LedgerComment) error {
	m := mapping.ToModelLedgerComment(comment)
	query := `
		INSERT INTO ledger_comments (` + commentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CommentID, m.EntryID, m.ClientID, m.LedgerType, m.Author,
		m.AuthorType, m.Content, m.Priority, m.IsInternal, m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save comment", err)
	}
	return nil
}

// ListComments retrieves one entry's thread, oldest first.
func (r *PgxCommentRepository) ListComments(ctx context.Context, clientID, entryID string) ([]domain.LedgerComment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM ledger_comments
		WHERE client_id = $1 AND entry_id = $2
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, clientID, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query comments", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.LedgerComment, error) {
		var m models.LedgerComment
		err := row.Scan(
			&m.CommentID, &m.EntryID, &m.ClientID, &m.LedgerType, &m.Author,
			&m.AuthorType, &m.Content, &m.Priority, &m.IsInternal, &m.CreatedAt,
		)
		return m, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect comment rows", err)
	}
	return mapping.ToDomainLedgerCommentSlice(ms), nil
}

// DeleteComment removes one comment within a client scope.
func (r *PgxCommentRepository) DeleteComment(ctx context.Context, clientID, commentID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM ledger_comments WHERE client_id = $1 AND comment_id = $2;`, clientID, commentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete comment", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
