package payout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gocardlessosm/internal/core"
)

// exportRow is one export line in test-friendly form.
type exportRow struct {
	description, gross, gcFee, appFee, net, member, date string
}

func exportTable(rows ...exportRow) Table {
	t := Table{Header: []string{
		"id",
		ColDescription,
		ColGrossAmount,
		ColGoCardlessFee,
		ColAppFee,
		ColNetAmount,
		ColMember,
		ColArrivalDate,
	}}
	for i, r := range rows {
		t.Rows = append(t.Rows, []string{
			string(rune('A' + i)),
			r.description, r.gross, r.gcFee, r.appFee, r.net, r.member, r.date,
		})
	}
	return t
}

func money(t *testing.T, s string) core.Money {
	t.Helper()
	m, err := core.ParseMoney(s)
	require.NoError(t, err)
	return m
}

func assertMoney(t *testing.T, want string, got core.Money, field string) {
	t.Helper()
	require.Equalf(t, want, got.String(), "%s", field)
}
