// Package backend builds the export sinks a payout service hands reports to.
package backend

import (
	"context"
	"time"

	"gocardlessosm/internal/services"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result contains the sinks and a cleanup function releasing their clients.
type Result struct {
	Sinks   []services.Sink
	Cleanup CleanupFunc
}

// Factory creates sinks based on configuration
type Factory interface {
	CreateSinks(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for sink creation
type Config struct {
	Sinks   []SinkType
	Timeout time.Duration

	// AMQP notification; disabled when URL is empty
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets specific
	GoogleSpreadsheetID      string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// Cloud Storage specific
	GCSBucket string
	GCSPrefix string
}

// SinkType names an export sink
type SinkType string

const (
	MemorySink SinkType = "memory"
	SheetsSink SinkType = "sheets"
	GCSSink    SinkType = "gcs"
)

// String implements fmt.Stringer
func (st SinkType) String() string {
	return string(st)
}

// IsValid returns true if the sink type is valid
func (st SinkType) IsValid() bool {
	switch st {
	case MemorySink, SheetsSink, GCSSink:
		return true
	default:
		return false
	}
}
