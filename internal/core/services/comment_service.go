package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fidura/compta_recon_app/internal/core/domain"
	portsrepo "github.com/fidura/compta_recon_app/internal/core/ports/repositories"
	portssvc "github.com/fidura/compta_recon_app/internal/core/ports/services"
	"github.com/fidura/compta_recon_app/internal/dto"
	"github.com/fidura/compta_recon_app/internal/middleware"
)

// commentService manages entry-scoped comment threads with a per-instance
// in-memory read cache keyed "{clientId}|{entryId}".
type commentService struct {
	commentRepo portsrepo.CommentRepositoryFacade

	mu      sync.RWMutex
	threads map[string][]domain.LedgerComment
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo portsrepo.CommentRepositoryFacade) portssvc.CommentSvcFacade {
	return &commentService{
		commentRepo: commentRepo,
		threads:     make(map[string][]domain.LedgerComment),
	}
}

var _ portssvc.CommentSvcFacade = (*commentService)(nil)

// CreateComment appends a comment and invalidates the thread's cached read.
func (s *commentService) CreateComment(ctx context.Context, clientID, entryID string, req dto.CreateCommentRequest) (*domain.LedgerComment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	priority := domain.CommentPriority(req.Priority)
	if priority == "" {
		priority = domain.PriorityNormal
	}
	comment := domain.LedgerComment{
		CommentID:  uuid.NewString(),
		EntryID:    entryID,
		ClientID:   clientID,
		LedgerType: domain.LedgerType(req.LedgerType),
		Author:     req.Author,
		AuthorType: domain.CommentAuthorType(req.AuthorType),
		Content:    req.Content,
		Priority:   priority,
		IsInternal: req.IsInternal,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.commentRepo.SaveComment(ctx, comment); err != nil {
		return nil, err
	}
	s.invalidate(clientID, entryID)

	logger.Info("Comment created",
		slog.String("client_id", clientID),
		slog.String("entry_id", entryID),
		slog.String("comment_id", comment.CommentID),
	)
	return &comment, nil
}

// ListComments returns the thread for one entry, serving repeated reads from
// the in-memory cache until a write invalidates it.
func (s *commentService) ListComments(ctx context.Context, clientID, entryID string) ([]domain.LedgerComment, error) {
	key := domain.CommentCacheKey(clientID, entryID)

	s.mu.RLock()
	cached, ok := s.threads[key]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	comments, err := s.commentRepo.ListComments(ctx, clientID, entryID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.threads[key] = comments
	s.mu.Unlock()
	return comments, nil
}

// DeleteComment removes one comment and invalidates the thread's cached read.
func (s *commentService) DeleteComment(ctx context.Context, clientID, entryID, commentID string) error {
	if err := s.commentRepo.DeleteComment(ctx, clientID, commentID); err != nil {
		return err
	}
	s.invalidate(clientID, entryID)
	return nil
}

func (s *commentService) invalidate(clientID, entryID string) {
	s.mu.Lock()
	delete(s.threads, domain.CommentCacheKey(clientID, entryID))
	s.mu.Unlock()
}
