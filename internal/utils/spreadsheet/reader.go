// Package spreadsheet turns uploaded ledger workbooks into loosely-typed rows
// for the import normalizer. It understands xlsx (via excelize) and csv.
package spreadsheet

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/fidura/compta_recon_app/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

// Read dispatches on the uploaded filename extension.
func Read(filename string, r io.Reader) ([]domain.RawRow, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".xlsx"):
		return ReadXLSX(r)
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		return ReadCSV(r)
	}
	return nil, fmt.Errorf("unsupported file type: %s", filename)
}

// ReadXLSX reads the first sheet of an xlsx workbook. The first row is taken as
// the header row; short data rows are padded so every header has a value.
func ReadXLSX(r io.Reader) ([]domain.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rowsToRaw(rows), nil
}

// ReadCSV reads a csv export. The delimiter is sniffed from the header line
// since French exports commonly use ';'.
func ReadCSV(r io.Reader) ([]domain.RawRow, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	cr := csv.NewReader(br)
	cr.Comma = sniffDelimiter(string(head))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return rowsToRaw(records), nil
}

func sniffDelimiter(head string) rune {
	if idx := strings.IndexByte(head, '\n'); idx >= 0 {
		head = head[:idx]
	}
	if strings.Count(head, ";") > strings.Count(head, ",") {
		return ';'
	}
	return ','
}

func rowsToRaw(rows [][]string) []domain.RawRow {
	if len(rows) < 2 {
		return nil
	}
	headers := rows[0]
	out := make([]domain.RawRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		raw := make(domain.RawRow, len(headers))
		empty := true
		for i, h := range headers {
			h = strings.TrimSpace(h)
			if h == "" {
				continue
			}
			var v string
			if i < len(cells) {
				v = cells[i]
			}
			if strings.TrimSpace(v) != "" {
				empty = false
			}
			raw[h] = v
		}
		if empty {
			continue // blank filler rows are common at the end of exports
		}
		out = append(out, raw)
	}
	return out
}
