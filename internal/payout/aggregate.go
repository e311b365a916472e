package payout

import "gocardlessosm/internal/core"

// Groups holds the per-schedule-type group sums in first-seen order.
type Groups struct {
	Subscriptions []core.Group
	Activities    []core.Group
	Summer        []core.Group
}

// grouper sums records per key while remembering discovery order.
type grouper struct {
	order []core.GroupKey
	sums  map[core.GroupKey]core.Group
}

func newGrouper() *grouper {
	return &grouper{sums: make(map[core.GroupKey]core.Group)}
}

func (g *grouper) add(key core.GroupKey, r core.Record) {
	grp, ok := g.sums[key]
	if !ok {
		g.order = append(g.order, key)
		grp.Key = key
	}
	grp.Count++
	grp.Totals = grp.Totals.Add(r.Totals())
	g.sums[key] = grp
}

func (g *grouper) groups() []core.Group {
	out := make([]core.Group, 0, len(g.order))
	for _, key := range g.order {
		out = append(out, g.sums[key])
	}
	return out
}

// Aggregate groups records by schedule type. Subscriptions are keyed by
// section alone; activities and summer by section and event. Records with an
// empty or unknown schedule type belong to no group. Empty sections and
// events form groups of their own.
func Aggregate(records []core.Record) Groups {
	subs, acts, summer := newGrouper(), newGrouper(), newGrouper()

	for _, r := range records {
		switch r.ScheduleType {
		case core.Subscriptions:
			subs.add(core.GroupKey{Section: r.Section, ScheduleType: r.ScheduleType}, r)
		case core.Activities:
			acts.add(core.GroupKey{Section: r.Section, ScheduleType: r.ScheduleType, Event: r.Event}, r)
		case core.Summer:
			summer.add(core.GroupKey{Section: r.Section, ScheduleType: r.ScheduleType, Event: r.Event}, r)
		}
	}

	return Groups{
		Subscriptions: subs.groups(),
		Activities:    acts.groups(),
		Summer:        summer.groups(),
	}
}
