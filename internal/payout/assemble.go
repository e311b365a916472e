package payout

import (
	"sort"

	"gocardlessosm/internal/core"
)

// Assemble orders the groups into report tables.
//
// Tables are sorted by section rank with unclassified sections last, and
// event tables by event name within a section. Equal keys keep discovery
// order. Headline amounts come from totals, which covers every record,
// including those no table shows.
func Assemble(groups Groups, totals core.Totals, date core.Date) core.Report {
	return core.Report{
		Date:          date,
		GrossAmount:   totals.GrossAmount,
		NetAmount:     totals.NetAmount,
		Fees:          totals.Fees,
		Subscriptions: subscriptionTable(groups.Subscriptions),
		Activities:    eventTable(groups.Activities),
		Summer:        eventTable(groups.Summer),
	}
}

func subscriptionTable(groups []core.Group) []core.SubscriptionRow {
	sorted := sortedGroups(groups)
	rows := make([]core.SubscriptionRow, 0, len(sorted))
	for _, g := range sorted {
		rows = append(rows, core.SubscriptionRow{Section: g.Key.Section, Totals: g.Totals})
	}
	return rows
}

func eventTable(groups []core.Group) []core.EventRow {
	sorted := sortedGroups(groups)
	rows := make([]core.EventRow, 0, len(sorted))
	for _, g := range sorted {
		rows = append(rows, core.EventRow{Section: g.Key.Section, Event: g.Key.Event, Totals: g.Totals})
	}
	return rows
}

// sortedGroups returns a sorted copy; the input is left untouched.
func sortedGroups(groups []core.Group) []core.Group {
	out := append([]core.Group(nil), groups...)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Key.Section.Rank(), out[j].Key.Section.Rank()
		if ri != rj {
			return ri < rj
		}
		return out[i].Key.Event < out[j].Key.Event
	})
	return out
}
