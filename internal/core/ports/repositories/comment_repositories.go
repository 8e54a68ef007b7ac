package repositories

import (
	"context"

	"github.com/fidura/compta_recon_app/internal/core/domain"
)

// CommentReader defines read operations for ledger comment threads.
type CommentReader interface {
	// ListComments retrieves the thread for one entry, oldest first.
	ListComments(ctx context.Context, clientID, entryID string) ([]domain.LedgerComment, error)
}

// CommentWriter defines write operations for ledger comment threads.
type CommentWriter interface {
	// SaveComment persists a new comment.
	SaveComment(ctx context.Context, comment domain.LedgerComment) error

	// DeleteComment removes a comment by ID within a client scope.
	DeleteComment(ctx context.Context, clientID, commentID string) error
}

// CommentRepositoryFacade combines all comment repository interfaces.
type CommentRepositoryFacade interface {
	CommentReader
	CommentWriter
}
