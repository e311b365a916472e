// Package ingest decodes GoCardless payout exports into payout tables.
//
// Exports arrive as CSV (the GoCardless default) or as XLSX when someone has
// opened and re-saved the file in a spreadsheet. The format is taken from the
// file name when it has a known extension, otherwise from the content.
package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gocardlessosm/internal/payout"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var (
	ErrEmptyFile         = errors.New("export file is empty")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// zipMagic starts every XLSX file.
var zipMagic = []byte("PK\x03\x04")

// DetectFormat picks the decoder for a file.
func DetectFormat(name string, data []byte) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	}
	if bytes.HasPrefix(data, zipMagic) {
		return FormatXLSX, nil
	}
	if looksLikeText(data) {
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// looksLikeText rejects content with NUL bytes in the first kilobyte.
func looksLikeText(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	return bytes.IndexByte(head, 0) < 0
}

// Decode turns raw export bytes into a table.
func Decode(name string, data []byte) (payout.Table, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return payout.Table{}, ErrEmptyFile
	}
	format, err := DetectFormat(name, data)
	if err != nil {
		return payout.Table{}, err
	}
	switch format {
	case FormatXLSX:
		return ReadXLSX(bytes.NewReader(data))
	default:
		return ReadCSV(bytes.NewReader(data))
	}
}

// ReadFile loads and decodes an export from a local path or a gs:// URI.
func ReadFile(ctx context.Context, path string) (payout.Table, error) {
	var (
		data []byte
		err  error
	)
	if IsGCSURI(path) {
		data, err = FetchGCS(ctx, path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return payout.Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	table, err := Decode(path, data)
	if err != nil {
		return payout.Table{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return table, nil
}

// newTable splits decoded rows into header and data, skipping blank rows.
func newTable(rows [][]string) (payout.Table, error) {
	var t payout.Table
	for _, row := range rows {
		if blank(row) {
			continue
		}
		if t.Header == nil {
			t.Header = row
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	if t.Header == nil {
		return payout.Table{}, ErrEmptyFile
	}
	return t, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
