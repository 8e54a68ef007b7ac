package dto

import (
	"github.com/fidura/compta_recon_app/internal/core/domain"
)

// ImportRowsRequest carries pre-parsed rows for the JSON import path. The
// multipart path (xlsx/csv upload) bypasses this DTO and goes straight to the
// spreadsheet reader.
type ImportRowsRequest struct {
	Rows []map[string]string `json:"rows" binding:"required,min=1"`
}

// ImportResponse reports the outcome of one import batch.
type ImportResponse struct {
	Received   int               `json:"received"`
	Inserted   int               `json:"inserted"`
	Duplicates int               `json:"duplicates"`
	Rejected   []domain.RowError `json:"rejected"`
}

// ToImportResponse converts a domain ImportSummary into the API shape.
func ToImportResponse(s domain.ImportSummary) ImportResponse {
	rejected := s.Rejected
	if rejected == nil {
		rejected = []domain.RowError{}
	}
	return ImportResponse{
		Received:   s.Received,
		Inserted:   s.Inserted,
		Duplicates: s.Duplicates,
		Rejected:   rejected,
	}
}
