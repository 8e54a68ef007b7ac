package models

import "time"

// LedgerComment maps to the ledger_comments table.
type LedgerComment struct {
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
