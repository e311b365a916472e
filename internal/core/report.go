package core

// Totals holds summed amounts.
type Totals struct {
	GrossAmount Money `json:"gross_amount"`
	NetAmount   Money `json:"net_amount"`
	Fees        Money `json:"fees"`
}

// Add returns the field-wise sum of t and o.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		GrossAmount: t.GrossAmount.Add(o.GrossAmount),
		NetAmount:   t.NetAmount.Add(o.NetAmount),
		Fees:        t.Fees.Add(o.Fees),
	}
}

// GroupKey identifies a group. Event is empty for subscription groups.
type GroupKey struct {
	Section      Section
	ScheduleType ScheduleType
	Event        string
}

// Group is the summed amounts of every record sharing a key.
type Group struct {
	Key   GroupKey
	Count int
	Totals
}

// SubscriptionRow is one line of the subscriptions table.
type SubscriptionRow struct {
	Section Section `json:"section"`
	Totals
}

// EventRow is one line of the activities or summer table.
type EventRow struct {
	Section Section `json:"section"`
	Event   string  `json:"event"`
	Totals
}

// Report is the result of processing one payout export.
type Report struct {
	Date          Date              `json:"date"`
	GrossAmount   Money             `json:"gross_amount"`
	NetAmount     Money             `json:"net_amount"`
	Fees          Money             `json:"fees"`
	Subscriptions []SubscriptionRow `json:"subscriptions"`
	Activities    []EventRow        `json:"activities"`
	Summer        []EventRow        `json:"summer"`

	// Transactions is the number of rows processed.
	Transactions int `json:"transactions"`
	// Unclassified counts rows missing a section or schedule type.
	Unclassified int      `json:"unclassified"`
	Records      []Record `json:"records,omitempty"`
}

// Totals returns the headline amounts.
func (r Report) Totals() Totals {
	return Totals{GrossAmount: r.GrossAmount, NetAmount: r.NetAmount, Fees: r.Fees}
}

// Empty reports whether the payout had no transactions.
func (r Report) Empty() bool {
	return r.Transactions == 0
}
