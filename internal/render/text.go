package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gocardlessosm/internal/core"
)

// Table titles and the messages shown when a table has no rows.
const (
	TitleSubscriptions = "Subscriptions"
	TitleActivities    = "Activities"
	TitleSummer        = "Summer Camp"

	EmptySubscriptions = "No subscriptions payments in this payout"
	EmptyActivities    = "No activities payments in this payout"
	EmptySummer        = "No summer camp payments in this payout"
)

// Text writes a plain-text summary: headline amounts, then the three tables.
func Text(w io.Writer, r core.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Date\t%s\n", Date(r.Date))
	fmt.Fprintf(tw, "Gross\t%s\n", Pounds(r.GrossAmount))
	fmt.Fprintf(tw, "Net\t%s\n", Pounds(r.NetAmount))
	fmt.Fprintf(tw, "Fees\t%s\n", Pounds(r.Fees))
	if r.Unclassified > 0 {
		fmt.Fprintf(tw, "Unclassified\t%d of %d transactions\n", r.Unclassified, r.Transactions)
	}

	fmt.Fprintf(tw, "\n%s\n", TitleSubscriptions)
	if len(r.Subscriptions) == 0 {
		fmt.Fprintln(tw, EmptySubscriptions)
	} else {
		fmt.Fprintln(tw, "Section\tGross\tNet\tFees")
		for _, row := range r.Subscriptions {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				Label(row.Section), Pounds(row.GrossAmount), Pounds(row.NetAmount), Pounds(row.Fees))
		}
	}

	writeEvents(tw, TitleActivities, EmptyActivities, r.Activities)
	writeEvents(tw, TitleSummer, EmptySummer, r.Summer)

	return tw.Flush()
}

func writeEvents(w io.Writer, title, empty string, rows []core.EventRow) {
	fmt.Fprintf(w, "\n%s\n", title)
	if len(rows) == 0 {
		fmt.Fprintln(w, empty)
		return
	}
	fmt.Fprintln(w, "Section\tEvent\tGross\tNet\tFees")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			Label(row.Section), Label(row.Event), Pounds(row.GrossAmount), Pounds(row.NetAmount), Pounds(row.Fees))
	}
}
