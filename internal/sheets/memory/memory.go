// Package memory keeps exported reports in process. It backs the "memory"
// export sink used in development and tests.
package memory

import (
	"context"
	"sync"

	"gocardlessosm/internal/core"
	ports "gocardlessosm/internal/sheets"
)

// Tab is one written report.
type Tab struct {
	Name   string
	Values [][]any
	Report core.Report
}

type Store struct {
	mu   sync.Mutex
	tabs []Tab
}

var _ ports.ReportWriter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// Name identifies the store as an export sink.
func (s *Store) Name() string { return "memory" }

// Export stores the report.
func (s *Store) Export(ctx context.Context, filename string, report core.Report) error {
	_, err := s.WriteReport(ctx, filename, report)
	return err
}

// WriteReport stores the report under a tab name chosen the same way the
// spreadsheet adapter chooses it and returns that name.
func (s *Store) WriteReport(ctx context.Context, filename string, r core.Report) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.tabs))
	for _, t := range s.tabs {
		names = append(names, t.Name)
	}
	name := ports.UniqueTabName(names, ports.TabName(r.Date))
	s.tabs = append(s.tabs, Tab{Name: name, Values: ports.ReportValues(filename, r), Report: r})
	return name, nil
}

// Tabs returns a copy of everything written so far, oldest first.
func (s *Store) Tabs() []Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Tab(nil), s.tabs...)
}
