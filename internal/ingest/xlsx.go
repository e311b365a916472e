package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gocardlessosm/internal/payout"
)

// ReadXLSX decodes the first sheet of a workbook.
func ReadXLSX(r io.Reader) (payout.Table, error) {
	xl, err := excelize.OpenReader(r)
	if err != nil {
		return payout.Table{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer xl.Close()

	sheet := xl.GetSheetName(0)
	if sheet == "" {
		return payout.Table{}, ErrEmptyFile
	}
	rows, err := xl.GetRows(sheet)
	if err != nil {
		return payout.Table{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return newTable(rows)
}
