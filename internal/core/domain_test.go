package core

import (
	"errors"
	"testing"
)

func TestSectionRank(t *testing.T) {
	cases := []struct {
		s    Section
		rank int
	}{
		{Squirrels, 0},
		{Beavers, 1},
		{Cubs, 2},
		{Scouts, 3},
		{"", 4},
		{"Explorers", 4},
	}
	for _, tc := range cases {
		if got := tc.s.Rank(); got != tc.rank {
			t.Fatalf("%q expected rank %d, got %d", tc.s, tc.rank, got)
		}
	}
	if Section("").Known() {
		t.Fatalf("empty section must not be known")
	}
}

func TestScheduleTypeKnown(t *testing.T) {
	for _, st := range ScheduleTypes {
		if !st.Known() {
			t.Fatalf("%q expected known", st)
		}
	}
	if ScheduleType("Donations").Known() {
		t.Fatalf("unexpected known schedule type")
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-03-15", "2024-03-15", true},
		{"2024-03-15T10:30:00Z", "2024-03-15", true},
		{"2024-03-15 23:59:59", "2024-03-15", true},
		{"15/03/2024", "2024-03-15", true},
		{"", "", true},
		{"yesterday", "", false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.want {
				t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.want, got, err)
			}
		} else if !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%q expected ErrInvalidDate, got %v", tc.in, err)
		}
	}
}

func TestDateAfter(t *testing.T) {
	if !NewDate(2024, 3, 2).After(NewDate(2024, 3, 1)) {
		t.Fatalf("expected later date to be after")
	}
	if (Date{}).After(NewDate(2024, 3, 1)) {
		t.Fatalf("zero date must not be after a real date")
	}
}

func TestRecordClassified(t *testing.T) {
	if (Record{Section: Cubs}).Classified() {
		t.Fatalf("record without schedule type must not be classified")
	}
	if !(Record{Section: Cubs, ScheduleType: Activities}).Classified() {
		t.Fatalf("expected classified")
	}
}
