package payout

import (
	"strings"

	"gocardlessosm/internal/core"
)

// rule pairs a category with the matcher that selects it.
type rule[T ~string] struct {
	category T
	matches  func(description string) bool
}

// containsFold matches descriptions mentioning name in any case.
func containsFold(name string) func(string) bool {
	needle := strings.ToLower(name)
	return func(description string) bool {
		return strings.Contains(strings.ToLower(description), needle)
	}
}

func sectionRules() []rule[core.Section] {
	rules := make([]rule[core.Section], 0, len(core.Sections))
	for _, s := range core.Sections {
		rules = append(rules, rule[core.Section]{category: s, matches: containsFold(string(s))})
	}
	return rules
}

func scheduleTypeRules() []rule[core.ScheduleType] {
	rules := make([]rule[core.ScheduleType], 0, len(core.ScheduleTypes))
	for _, st := range core.ScheduleTypes {
		rules = append(rules, rule[core.ScheduleType]{category: st, matches: containsFold(string(st))})
	}
	return rules
}

// Rule tables are evaluated in order; the first match wins.
var (
	sectionTable      = sectionRules()
	scheduleTypeTable = scheduleTypeRules()
)

// firstMatch returns the category of the first matching rule, or "".
func firstMatch[T ~string](rules []rule[T], description string) T {
	for _, r := range rules {
		if r.matches(description) {
			return r.category
		}
	}
	return ""
}

// Extract classifies one transaction. It never fails: descriptions that do
// not follow the expected shape leave the affected fields empty.
func Extract(tx core.Transaction) core.Record {
	return core.Record{
		Description:  tx.Description,
		Member:       memberName(tx.MemberMetadata),
		Section:      firstMatch(sectionTable, tx.Description),
		ScheduleType: firstMatch(scheduleTypeTable, tx.Description),
		Event:        eventName(tx.Description),
		GrossAmount:  tx.GrossAmount,
		NetAmount:    tx.NetAmount,
		Fees:         tx.GoCardlessFee.Add(tx.AppFee),
		ArrivalDate:  tx.ArrivalDate,
	}
}

// memberName drops the parenthesised detail after a member's name.
func memberName(metadata string) string {
	name, _, _ := strings.Cut(metadata, "(")
	return strings.TrimSpace(name)
}

// eventName reads the event from descriptions shaped like
// "<section>: <type>(<event>)". The event is the text between the first "("
// and the next ")" after the first ":".
func eventName(description string) string {
	parts := strings.Split(description, ":")
	if len(parts) < 2 {
		return ""
	}
	parts = strings.Split(parts[1], "(")
	if len(parts) < 2 {
		return ""
	}
	event, _, _ := strings.Cut(parts[1], ")")
	return strings.TrimSpace(event)
}
