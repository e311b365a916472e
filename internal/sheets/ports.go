// Package sheets exports payout reports to spreadsheets.
package sheets

import (
	"context"

	"gocardlessosm/internal/core"
)

// Ports for outbound adapters.
type (
	// ReportWriter stores one report and returns a reference to where it landed.
	ReportWriter interface {
		WriteReport(ctx context.Context, filename string, r core.Report) (ref string, err error)
	}
)
