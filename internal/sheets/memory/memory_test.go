package memory

import (
	"context"
	"testing"

	"gocardlessosm/internal/core"
)

func TestMemoryStoreWriteReport(t *testing.T) {
	s := New()
	r := core.Report{Date: core.NewDate(2024, 3, 15), GrossAmount: core.MoneyFromPence(1500)}

	ref, err := s.WriteReport(context.Background(), "a.csv", r)
	if err != nil || ref != "Payout 2024-03-15" {
		t.Fatalf("unexpected write: ref=%q err=%v", ref, err)
	}

	ref, err = s.WriteReport(context.Background(), "a.csv", r)
	if err != nil || ref != "Payout 2024-03-15 (2)" {
		t.Fatalf("unexpected second write: ref=%q err=%v", ref, err)
	}

	tabs := s.Tabs()
	if len(tabs) != 2 {
		t.Fatalf("expected 2 tabs, got %d", len(tabs))
	}
	if got := tabs[0].Values[2][1]; got != 15.0 {
		t.Errorf("gross cell = %v, want 15", got)
	}
}

func TestMemoryStoreExportCancelled(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Export(ctx, "a.csv", core.Report{}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if len(s.Tabs()) != 0 {
		t.Error("cancelled export should store nothing")
	}
}
