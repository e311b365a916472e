package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"gocardlessosm/internal/payout"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV decodes a comma separated export. Input that is not valid UTF-8 is
// read as Windows-1252, which is what older spreadsheet tools write.
func ReadCSV(r io.Reader) (payout.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return payout.Table{}, fmt.Errorf("read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var src io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		src = transform.NewReader(src, charmap.Windows1252.NewDecoder())
	}

	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return payout.Table{}, fmt.Errorf("parse csv: %w", err)
	}
	return newTable(rows)
}
