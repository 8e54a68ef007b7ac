package domain

import "time"

// CommentAuthorType distinguishes who wrote a ledger comment.
type CommentAuthorType string

const (
	AuthorCollaborator CommentAuthorType = "COLLABORATOR"
	AuthorClient       CommentAuthorType = "CLIENT"
	AuthorSystem       CommentAuthorType = "SYSTEM"
)

// CommentPriority orders comment threads for review.
type CommentPriority string

const (
	PriorityLow    CommentPriority = "LOW"
	PriorityNormal CommentPriority = "NORMAL"
	PriorityHigh   CommentPriority = "HIGH"
)

// LedgerComment is one message in an entry-scoped comment thread.
type LedgerComment struct {
	CommentID  string            `json:"commentID"`
	EntryID    string            `json:"entryID"`
	ClientID   string            `json:"clientID"`
	LedgerType LedgerType        `json:"ledgerType"`
	Author     string            `json:"author"`
	AuthorType CommentAuthorType `json:"authorType"`
	Content    string            `json:"content"`
	Priority   CommentPriority   `json:"priority"`
	IsInternal bool              `json:"isInternal"`
	CreatedAt  time.Time         `json:"createdAt"`
}
