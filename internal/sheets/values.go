package sheets

import (
	"fmt"

	"gocardlessosm/internal/core"
	"gocardlessosm/internal/render"
)

// UndatedTab names the tab of a report whose export had no arrival dates.
const UndatedTab = "Payout undated"

// TabName is the tab a report is written to.
func TabName(date core.Date) string {
	if date.IsEmpty() {
		return UndatedTab
	}
	return "Payout " + date.String()
}

// UniqueTabName returns base, or base with a numeric suffix when a tab of that
// name already exists. Reprocessing a payout never overwrites earlier output.
func UniqueTabName(existing []string, base string) string {
	taken := make(map[string]bool, len(existing))
	for _, name := range existing {
		taken[name] = true
	}
	if !taken[base] {
		return base
	}
	for n := 2; ; n++ {
		name := fmt.Sprintf("%s (%d)", base, n)
		if !taken[name] {
			return name
		}
	}
}

// ReportValues lays a report out as spreadsheet rows: the headline block
// followed by one block per table. Amounts are numbers so the sheet can sum
// them.
func ReportValues(filename string, r core.Report) [][]any {
	rows := [][]any{
		{"Payout", r.Date.String()},
		{"Source", filename},
		{"Gross", r.GrossAmount.Float64()},
		{"Net", r.NetAmount.Float64()},
		{"Fees", r.Fees.Float64()},
		{"Transactions", r.Transactions},
		{"Unclassified", r.Unclassified},
		{},
		{"Subscriptions"},
		{"Section", "Gross", "Net", "Fees"},
	}
	for _, row := range r.Subscriptions {
		rows = append(rows, []any{render.Label(row.Section), row.GrossAmount.Float64(), row.NetAmount.Float64(), row.Fees.Float64()})
	}

	for _, t := range []struct {
		title string
		rows  []core.EventRow
	}{
		{"Activities", r.Activities},
		{"Summer", r.Summer},
	} {
		rows = append(rows, []any{}, []any{t.title}, []any{"Section", "Event", "Gross", "Net", "Fees"})
		for _, row := range t.rows {
			rows = append(rows, []any{render.Label(row.Section), render.Label(row.Event), row.GrossAmount.Float64(), row.NetAmount.Float64(), row.Fees.Float64()})
		}
	}
	return rows
}
