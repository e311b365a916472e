package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"gocardlessosm/internal/core"
)

func pence(p int64) core.Money { return core.MoneyFromPence(p) }

func sampleReport() core.Report {
	return core.Report{
		Date:        core.NewDate(2024, 6, 4),
		GrossAmount: pence(1500),
		NetAmount:   pence(1478),
		Fees:        pence(22),
		Subscriptions: []core.SubscriptionRow{
			{Section: core.Squirrels, Totals: core.Totals{GrossAmount: pence(1000), NetAmount: pence(985), Fees: pence(15)}},
		},
		Activities: []core.EventRow{
			{Section: core.Cubs, Event: "Hike", Totals: core.Totals{GrossAmount: pence(500), NetAmount: pence(493), Fees: pence(7)}},
		},
		Summer:       []core.EventRow{},
		Transactions: 2,
	}
}

func TestPounds(t *testing.T) {
	cases := []struct {
		in   core.Money
		want string
	}{
		{pence(0), "£0.00"},
		{pence(7), "£0.07"},
		{pence(123456), "£1,234.56"},
		{pence(100000000), "£1,000,000.00"},
		{pence(-250), "-£2.50"},
	}
	for _, tc := range cases {
		if got := Pounds(tc.in); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestDate(t *testing.T) {
	if got := Date(core.NewDate(2024, 3, 5)); got != "05 Mar 2024" {
		t.Fatalf("unexpected date %q", got)
	}
	if got := Date(core.Date{}); got != noValue {
		t.Fatalf("expected placeholder, got %q", got)
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "04 Jun 2024")
	assert.Contains(t, out, "£15.00")
	assert.Contains(t, out, "£14.78")
	assert.Contains(t, out, "£0.22")
	assert.Contains(t, out, "Squirrels")
	assert.Contains(t, out, "Hike")
	assert.Contains(t, out, EmptySummer)
	assert.NotContains(t, out, EmptyActivities)
	assert.NotContains(t, out, "Unclassified")
}

func TestTextShowsUnclassified(t *testing.T) {
	r := sampleReport()
	r.Unclassified = 1
	r.Activities = append(r.Activities, core.EventRow{Section: "", Event: ""})

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, r))

	assert.Contains(t, buf.String(), "1 of 2 transactions")
	assert.Contains(t, buf.String(), noValue)
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleReport()))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "2024-06-04", doc["date"])
	assert.Equal(t, 15.0, doc["gross_amount"])
	assert.Equal(t, []any{}, doc["summer"])
	activities := doc["activities"].([]any)
	require.Len(t, activities, 1)
	row := activities[0].(map[string]any)
	assert.Equal(t, "Cubs", row["section"])
	assert.Equal(t, "Hike", row["event"])
	assert.Equal(t, 0.07, row["fees"])
	assert.True(t, strings.Contains(buf.String(), `"net_amount": 14.78`))
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAML(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "gross_amount: 15.00")
	assert.Contains(t, out, "event: Hike")
	assert.Contains(t, out, "summer: []")

	var doc struct {
		Date          string `yaml:"date"`
		Subscriptions []struct {
			Section string  `yaml:"section"`
			Fees    float64 `yaml:"fees"`
		} `yaml:"subscriptions"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "2024-06-04", doc.Date)
	require.Len(t, doc.Subscriptions, 1)
	assert.Equal(t, 0.15, doc.Subscriptions[0].Fees)
}

func TestWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XLSX(&buf, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetSubscriptions, SheetActivities, SheetSummer}, f.GetSheetList())

	date, err := f.GetCellValue(SheetSummary, "B1")
	require.NoError(t, err)
	assert.Equal(t, "04 Jun 2024", date)

	rows, err := f.GetRows(SheetActivities)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Section", "Event", "Gross", "Net", "Fees"}, rows[0])
	assert.Equal(t, "Hike", rows[1][1])

	empty, err := f.GetCellValue(SheetSummer, "A1")
	require.NoError(t, err)
	assert.Equal(t, EmptySummer, empty)
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, ok := ParseFormat(string(f))
		if !ok || got != f {
			t.Fatalf("expected %s to parse", f)
		}
	}
	if _, ok := ParseFormat("pdf"); ok {
		t.Fatalf("pdf must not parse")
	}
	if got := FormatText.Filename(sampleReport()); got != "payout-2024-06-04.txt" {
		t.Fatalf("unexpected filename %q", got)
	}
}
