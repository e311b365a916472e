package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Squirrels Section = "Squirrels"
	Beavers   Section = "Beavers"
	Cubs      Section = "Cubs"
	Scouts    Section = "Scouts"
)

const (
	Subscriptions ScheduleType = "Subscriptions"
	Activities    ScheduleType = "Activities"
	Summer        ScheduleType = "Summer"
)

// Sections lists the sections in rank order, youngest first.
var Sections = []Section{Squirrels, Beavers, Cubs, Scouts}

// ScheduleTypes lists the payment schedule types in match order.
var ScheduleTypes = []ScheduleType{Subscriptions, Activities, Summer}

type (
	// Section is an age-based youth group. The empty value means unclassified.
	Section string

	// ScheduleType is the kind of payment schedule. The empty value means unclassified.
	ScheduleType string

	Date struct {
		time.Time
	}

	// Transaction is one row of a payout export.
	Transaction struct {
		Description    string
		GrossAmount    Money
		GoCardlessFee  Money
		AppFee         Money
		NetAmount      Money
		MemberMetadata string
		ArrivalDate    Date // zero when the cell was empty
	}

	// Record is a classified transaction.
	Record struct {
		Description  string       `json:"description"`
		Member       string       `json:"member"`
		Section      Section      `json:"section"`
		ScheduleType ScheduleType `json:"schedule_type"`
		Event        string       `json:"event"`
		GrossAmount  Money        `json:"gross_amount"`
		NetAmount    Money        `json:"net_amount"`
		Fees         Money        `json:"fees"`
		ArrivalDate  Date         `json:"arrival_date"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
)

// Rank returns the section's position in Sections. Unknown and empty
// sections rank after every known one.
func (s Section) Rank() int {
	for i, known := range Sections {
		if s == known {
			return i
		}
	}
	return len(Sections)
}

// Known reports whether s is one of Sections.
func (s Section) Known() bool {
	return s.Rank() < len(Sections)
}

func (t ScheduleType) Known() bool {
	for _, known := range ScheduleTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Classified reports whether both the section and the schedule type matched.
func (r Record) Classified() bool {
	return r.Section != "" && r.ScheduleType != ""
}

// Totals returns the record's amounts.
func (r Record) Totals() Totals {
	return Totals{GrossAmount: r.GrossAmount, NetAmount: r.NetAmount, Fees: r.Fees}
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// dateLayouts are the arrival date formats seen in exports, most common first.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006",
}

// ParseDate parses an arrival date cell and drops any time of day.
// An empty cell yields the zero Date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), int(t.Month()), t.Day()), nil
		}
	}
	return Date{}, ErrInvalidDate
}

// IsEmpty returns true if the date is zero
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// String renders the date as YYYY-MM-DD, or "" when empty.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// After reports whether d is later than o.
func (d Date) After(o Date) bool {
	return d.Time.After(o.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		*d = Date{}
		return nil
	}
	v, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
