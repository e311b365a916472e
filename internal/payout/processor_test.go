package payout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocardlessosm/internal/core"
)

func scenarioTable() Table {
	return exportTable(
		exportRow{
			description: "Squirrels: Subscriptions",
			gross:       "10.00",
			gcFee:       "0.10",
			appFee:      "0.05",
			net:         "9.85",
			member:      "Jane (x)",
			date:        "2024-06-03",
		},
		exportRow{
			description: "Cubs: Activities(Hike)",
			gross:       "5.00",
			gcFee:       "0.05",
			appFee:      "0.02",
			net:         "4.93",
			member:      "Tom",
			date:        "2024-06-04",
		},
	)
}

func TestProcessEndToEnd(t *testing.T) {
	report, err := NewProcessor(nil).Process(scenarioTable())
	require.NoError(t, err)

	assertMoney(t, "15.00", report.GrossAmount, "gross")
	assertMoney(t, "0.22", report.Fees, "fees")
	assertMoney(t, "14.78", report.NetAmount, "net")
	assert.Equal(t, core.NewDate(2024, 6, 4), report.Date)

	require.Len(t, report.Subscriptions, 1)
	sub := report.Subscriptions[0]
	assert.Equal(t, core.Squirrels, sub.Section)
	assertMoney(t, "10.00", sub.GrossAmount, "subscription gross")
	assertMoney(t, "9.85", sub.NetAmount, "subscription net")
	assertMoney(t, "0.15", sub.Fees, "subscription fees")

	require.Len(t, report.Activities, 1)
	act := report.Activities[0]
	assert.Equal(t, core.Cubs, act.Section)
	assert.Equal(t, "Hike", act.Event)
	assertMoney(t, "5.00", act.GrossAmount, "activity gross")
	assertMoney(t, "4.93", act.NetAmount, "activity net")
	assertMoney(t, "0.07", act.Fees, "activity fees")

	assert.Empty(t, report.Summer)
	assert.Equal(t, 2, report.Transactions)
	assert.Equal(t, 0, report.Unclassified)
	require.Len(t, report.Records, 2)
	assert.Equal(t, "Jane", report.Records[0].Member)
}

func TestProcessIsIdempotent(t *testing.T) {
	p := NewProcessor(nil)
	table := scenarioTable()

	first, err := p.Process(table)
	require.NoError(t, err)
	second, err := p.Process(table)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestProcessKeepsUnclassifiedInTotals(t *testing.T) {
	table := exportTable(
		exportRow{description: "Cubs: Subscriptions", gross: "10.00", net: "9.80", gcFee: "0.20"},
		exportRow{description: "Donation", gross: "25.00", net: "24.50", gcFee: "0.50"},
		exportRow{description: "Beavers: Raffle", gross: "2.50", net: "2.45", gcFee: "0.05"},
	)

	report, err := NewProcessor(nil).Process(table)
	require.NoError(t, err)

	// gross is conserved across every input row
	assertMoney(t, "37.50", report.GrossAmount, "gross")
	assertMoney(t, "36.75", report.NetAmount, "net")
	assertMoney(t, "0.75", report.Fees, "fees")
	assert.Equal(t, 2, report.Unclassified)

	require.Len(t, report.Subscriptions, 1)
	assertMoney(t, "10.00", report.Subscriptions[0].GrossAmount, "table gross")
	assert.Empty(t, report.Activities)
	assert.Empty(t, report.Summer)

	for _, r := range report.Records[1:] {
		assert.False(t, r.Classified(), r.Description)
	}
}

func TestProcessDateIgnoresEmptyCells(t *testing.T) {
	table := exportTable(
		exportRow{description: "Cubs: Subscriptions", gross: "1", date: "2024-01-10"},
		exportRow{description: "Cubs: Subscriptions", gross: "1", date: ""},
		exportRow{description: "Cubs: Subscriptions", gross: "1", date: "2024-01-02T09:00:00Z"},
	)

	report, err := NewProcessor(nil).Process(table)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", report.Date.String())
}

func TestProcessSchemaErrorAborts(t *testing.T) {
	table := scenarioTable()
	table.Header[1] = "description"

	report, err := NewProcessor(nil).Process(table)

	require.ErrorIs(t, err, ErrMissingColumns)
	assert.Equal(t, core.Report{}, report)
}

func TestProcessEmptyExport(t *testing.T) {
	report, err := NewProcessor(nil).Process(exportTable())
	require.NoError(t, err)

	assert.True(t, report.Empty())
	assert.True(t, report.GrossAmount.IsZero())
	assert.True(t, report.Date.IsEmpty())
	assert.NotNil(t, report.Subscriptions)
}
