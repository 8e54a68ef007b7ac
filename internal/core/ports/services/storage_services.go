package services

import (
	"context"
	"time"
)

// StoredDocument is the handle returned by the document storage collaborator.
type StoredDocument struct {
	Path string
	URL  string
}

// DocumentInfo describes one stored document when listing a path.
type DocumentInfo struct {
	Name      string
	Size      int64
	CreatedAt time.Time
	URL       string
}

// DocumentStore is the external document/storage collaborator. The
// reconciliation engine only reads and writes ledger and comment records;
// files never flow through it directly.
type DocumentStore interface {
	Store(ctx context.Context, path string, data []byte, contentType string) (*StoredDocument, error)
	List(ctx context.Context, path string) ([]DocumentInfo, error)
}
