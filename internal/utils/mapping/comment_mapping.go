package mapping

import (
	"github.com/fidura/compta_recon_app/internal/core/domain"
	"github.com/fidura/compta_recon_app/internal/models"
)

// ToModelLedgerComment converts a domain LedgerComment to its persistence model.
func ToModelLedgerComment(d domain.LedgerComment) models.LedgerComment {
	return models.LedgerComment{
		CommentID:  d.CommentID,
		EntryID:    d.EntryID,
		ClientID:   d.ClientID,
		LedgerType: string(d.LedgerType),
		Author:     d.Author,
		AuthorType: string(d.AuthorType),
		Content:    d.Content,
		Priority:   string(d.Priority),
		IsInternal: d.IsInternal,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainLedgerComment converts a model LedgerComment back to the domain shape.
func ToDomainLedgerComment(m models.LedgerComment) domain.LedgerComment {
	return domain.LedgerComment{
		CommentID:  m.CommentID,
		EntryID:    m.EntryID,
		ClientID:   m.ClientID,
		LedgerType: domain.LedgerType(m.LedgerType),
		Author:     m.Author,
		AuthorType: domain.CommentAuthorType(m.AuthorType),
		Content:    m.Content,
		Priority:   domain.CommentPriority(m.Priority),
		IsInternal: m.IsInternal,
		CreatedAt:  m.CreatedAt,
	}
}

// ToDomainLedgerCommentSlice converts a slice of model comments to domain comments.
func ToDomainLedgerCommentSlice(ms []models.LedgerComment) []domain.LedgerComment {
	ds := make([]domain.LedgerComment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerComment(m)
	}
	return ds
}
