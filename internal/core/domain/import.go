package domain

// RawRow is one loosely-typed spreadsheet row, keyed by source header name.
// Values are the cell text exactly as read.
type RawRow map[string]string

// RowError describes one rejected import row. Rejected rows are surfaced to the
// caller alongside the surviving entries, never silently dropped.
type RowError struct {
	Row    int      `json:"row"` // 1-based position in the source, header excluded
	Fields []string `json:"fields"`
	Reason string   `json:"reason"`
}

// ImportSummary reports what happened to one import batch.
type ImportSummary struct {
	Received   int        `json:"received"`
	Inserted   int        `json:"inserted"`
	Duplicates int        `json:"duplicates"` // skipped by signature, not errors
	Rejected   []RowError `json:"rejected"`
}
