package services

import (
	"context"

	"github.com/fidura/compta_recon_app/internal/core/domain"
	"github.com/fidura/compta_recon_app/internal/dto"
)

// CommentSvcFacade manages entry-scoped comment threads with an in-memory
// read cache keyed "{clientId}|{entryId}".
type CommentSvcFacade interface {
	// CreateComment appends a comment to an entry's thread and invalidates the
	// thread's cached read.
	CreateComment(ctx context.Context, clientID, entryID string, req dto.CreateCommentRequest) (*domain.LedgerComment, error)

	// ListComments returns the thread for one entry, oldest first.
	ListComments(ctx context.Context, clientID, entryID string) ([]domain.LedgerComment, error)

	// DeleteComment removes one comment within a client scope.
	DeleteComment(ctx context.Context, clientID, entryID, commentID string) error
}
