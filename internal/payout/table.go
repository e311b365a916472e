// Package payout turns a GoCardless payout export into a Report.
//
// The pipeline has three pure stages: Extract classifies one transaction,
// Aggregate sums classified records per group and Assemble orders the groups
// into the report tables. Processor runs them over a decoded Table.
package payout

import (
	"errors"
	"fmt"
	"strings"

	"gocardlessosm/internal/core"
)

// Export column names.
const (
	ColDescription   = "resources.description"
	ColGrossAmount   = "gross_amount"
	ColGoCardlessFee = "gocardless_fees"
	ColAppFee        = "app_fees"
	ColNetAmount     = "net_amount"
	ColMember        = "payments.metadata.Member"
	ColArrivalDate   = "payouts.arrival_date"
)

// RequiredColumns must all be present in a Table header.
var RequiredColumns = []string{
	ColDescription,
	ColGrossAmount,
	ColGoCardlessFee,
	ColAppFee,
	ColNetAmount,
	ColMember,
	ColArrivalDate,
}

var (
	ErrMissingColumns = errors.New("missing required columns")
	ErrInvalidCell    = errors.New("invalid cell")
)

// Table is a decoded export: a header row and data rows of raw cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// columnIndex maps each required column to its position in the header.
type columnIndex map[string]int

// index locates the required columns. Every missing column is reported in a
// single ErrMissingColumns error.
func (t Table) index() (columnIndex, error) {
	pos := make(map[string]int, len(t.Header))
	for i, name := range t.Header {
		name = strings.TrimSpace(name)
		if _, seen := pos[name]; !seen {
			pos[name] = i
		}
	}

	idx := make(columnIndex, len(RequiredColumns))
	var missing []string
	for _, col := range RequiredColumns {
		i, ok := pos[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		idx[col] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return idx, nil
}

// cell returns the trimmed value of col in row, or "" for short rows.
func (idx columnIndex) cell(row []string, col string) string {
	i := idx[col]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Transactions decodes every data row. Row numbers in errors are 1-based and
// count the header, so they match what a spreadsheet shows.
func (t Table) Transactions() ([]core.Transaction, error) {
	idx, err := t.index()
	if err != nil {
		return nil, err
	}

	txs := make([]core.Transaction, 0, len(t.Rows))
	for i, row := range t.Rows {
		tx, err := idx.decode(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func (idx columnIndex) decode(row []string) (core.Transaction, error) {
	tx := core.Transaction{
		Description:    idx.cell(row, ColDescription),
		MemberMetadata: idx.cell(row, ColMember),
	}

	amounts := []struct {
		col string
		dst *core.Money
	}{
		{ColGrossAmount, &tx.GrossAmount},
		{ColGoCardlessFee, &tx.GoCardlessFee},
		{ColAppFee, &tx.AppFee},
		{ColNetAmount, &tx.NetAmount},
	}
	for _, a := range amounts {
		raw := idx.cell(row, a.col)
		m, err := core.ParseMoney(raw)
		if err != nil {
			return core.Transaction{}, fmt.Errorf("%w: column %s value %q: %w", ErrInvalidCell, a.col, raw, err)
		}
		*a.dst = m
	}

	raw := idx.cell(row, ColArrivalDate)
	date, err := core.ParseDate(raw)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("%w: column %s value %q: %w", ErrInvalidCell, ColArrivalDate, raw, err)
	}
	tx.ArrivalDate = date

	return tx, nil
}
