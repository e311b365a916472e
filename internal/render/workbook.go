package render

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gocardlessosm/internal/core"
)

// Workbook sheet names.
const (
	SheetSummary       = "Summary"
	SheetSubscriptions = "Subscriptions"
	SheetActivities    = "Activities"
	SheetSummer        = "Summer"
)

const poundsNumFmt = `"£"#,##0.00`

type workbookStyles struct {
	header int
	amount int
}

// Workbook builds a spreadsheet with a summary sheet and one sheet per table.
// Amount cells are numbers formatted as pounds so they can be summed.
func Workbook(r core.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		f.Close()
		return nil, err
	}

	styles, err := newWorkbookStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	steps := []func() error{
		func() error { return writeSummary(f, styles, r) },
		func() error { return writeSubscriptions(f, styles, r.Subscriptions) },
		func() error { return writeEventSheet(f, styles, SheetActivities, EmptyActivities, r.Activities) },
		func() error { return writeEventSheet(f, styles, SheetSummer, EmptySummer, r.Summer) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			f.Close()
			return nil, fmt.Errorf("build workbook: %w", err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// XLSX writes the workbook to w.
func XLSX(w io.Writer, r core.Report) error {
	f, err := Workbook(r)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return workbookStyles{}, err
	}
	numFmt := poundsNumFmt
	amount, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return workbookStyles{}, err
	}
	return workbookStyles{header: header, amount: amount}, nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// setAmount writes m as a number in the pounds format.
func setAmount(f *excelize.File, s workbookStyles, sheet string, col, row int, m core.Money) error {
	cell := cellName(col, row)
	if err := f.SetCellFloat(sheet, cell, m.Float64(), 2, 64); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, s.amount)
}

func writeHeader(f *excelize.File, s workbookStyles, sheet string, cols ...string) error {
	row := make([]any, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", cellName(len(cols), 1), s.header)
}

func writeSummary(f *excelize.File, s workbookStyles, r core.Report) error {
	const sheet = SheetSummary
	if err := f.SetCellValue(sheet, "A1", "Date"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "B1", Date(r.Date)); err != nil {
		return err
	}
	amounts := []struct {
		label string
		value core.Money
	}{
		{"Gross", r.GrossAmount},
		{"Net", r.NetAmount},
		{"Fees", r.Fees},
	}
	for i, a := range amounts {
		row := i + 2
		if err := f.SetCellValue(sheet, cellName(1, row), a.label); err != nil {
			return err
		}
		if err := setAmount(f, s, sheet, 2, row, a.value); err != nil {
			return err
		}
	}
	if err := f.SetCellValue(sheet, "A5", "Transactions"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "B5", r.Transactions); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "A6", "Unclassified"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "B6", r.Unclassified); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A6", s.header); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "B", 16)
}

func writeSubscriptions(f *excelize.File, s workbookStyles, rows []core.SubscriptionRow) error {
	const sheet = SheetSubscriptions
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if len(rows) == 0 {
		return f.SetCellValue(sheet, "A1", EmptySubscriptions)
	}
	if err := writeHeader(f, s, sheet, "Section", "Gross", "Net", "Fees"); err != nil {
		return err
	}
	for i, row := range rows {
		n := i + 2
		if err := f.SetCellValue(sheet, cellName(1, n), string(row.Section)); err != nil {
			return err
		}
		if err := writeTotals(f, s, sheet, 2, n, row.Totals); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "D", 14)
}

func writeEventSheet(f *excelize.File, s workbookStyles, sheet, empty string, rows []core.EventRow) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if len(rows) == 0 {
		return f.SetCellValue(sheet, "A1", empty)
	}
	if err := writeHeader(f, s, sheet, "Section", "Event", "Gross", "Net", "Fees"); err != nil {
		return err
	}
	for i, row := range rows {
		n := i + 2
		if err := f.SetCellValue(sheet, cellName(1, n), string(row.Section)); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cellName(2, n), row.Event); err != nil {
			return err
		}
		if err := writeTotals(f, s, sheet, 3, n, row.Totals); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "B", "B", 24); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "C", "E", 14)
}

func writeTotals(f *excelize.File, s workbookStyles, sheet string, col, row int, t core.Totals) error {
	for i, m := range []core.Money{t.GrossAmount, t.NetAmount, t.Fees} {
		if err := setAmount(f, s, sheet, col+i, row, m); err != nil {
			return err
		}
	}
	return nil
}
