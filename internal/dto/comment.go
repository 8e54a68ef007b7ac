package dto

import (
	"time"

	"github.com/fidura/compta_recon_app/internal/core/domain"
)

// CreateCommentRequest adds one message to an entry's comment thread.
type CreateCommentRequest struct {
	LedgerType string `json:"ledgerType" binding:"required,ledgertype"`
	Author     string `json:"author" binding:"omitempty,max=200"` // defaults to the authenticated collaborator
	AuthorType string `json:"authorType" binding:"required,oneof=COLLABORATOR CLIENT SYSTEM"`
	Content    string `json:"content" binding:"required,max=4000"`
	Priority   string `json:"priority" binding:"omitempty,oneof=LOW NORMAL HIGH"`
	IsInternal bool   `json:"isInternal"`
}

// CommentResponse is one comment as served to clients.
type CommentResponse struct {
	CommentID  string    `json:"commentID"`
	EntryID    string    `json:"entryID"`
	ClientID   string    `json:"clientID"`
	LedgerType string    `json:"ledgerType"`
	Author     string    `json:"author"`
	AuthorType string    `json:"authorType"`
	Content    string    `json:"content"`
	Priority   string    `json:"priority"`
	IsInternal bool      `json:"isInternal"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToCommentResponse converts a domain comment into the API shape.
func ToCommentResponse(c *domain.LedgerComment) CommentResponse {
	return CommentResponse{
		CommentID:  c.CommentID,
		EntryID:    c.EntryID,
		ClientID:   c.ClientID,
		LedgerType: string(c.LedgerType),
		Author:     c.Author,
		AuthorType: string(c.AuthorType),
		Content:    c.Content,
		Priority:   string(c.Priority),
		IsInternal: c.IsInternal,
		CreatedAt:  c.CreatedAt,
	}
}

// ToListCommentResponse converts a slice of domain comments to the API shape.
func ToListCommentResponse(comments []domain.LedgerComment) []CommentResponse {
	res := make([]CommentResponse, len(comments))
	for i := range comments {
		res[i] = ToCommentResponse(&comments[i])
	}
	return res
}
