package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"gocardlessosm/internal/core"
	"gocardlessosm/internal/ingest"
	"gocardlessosm/internal/log"
	"gocardlessosm/internal/payout"
)

// Sink receives every successfully processed report.
type Sink interface {
	Name() string
	Export(ctx context.Context, filename string, report core.Report) error
}

// ExportStatus is the outcome of handing a report to one sink.
type ExportStatus struct {
	Sink string
	Err  error
}

// Result is a processed payout and what happened to its exports.
type Result struct {
	Report  core.Report
	Exports []ExportStatus
}

// ExportErrors returns the sinks that failed.
func (r Result) ExportErrors() []ExportStatus {
	var failed []ExportStatus
	for _, e := range r.Exports {
		if e.Err != nil {
			failed = append(failed, e)
		}
	}
	return failed
}

// PayoutService orchestrates decode, processing and export of payout files.
type PayoutService struct {
	processor   *payout.Processor
	sinks       []Sink
	sinkTimeout time.Duration
	logger      *log.Logger
}

func NewPayoutService(processor *payout.Processor, sinkTimeout time.Duration, logger *log.Logger, sinks ...Sink) *PayoutService {
	if logger == nil {
		logger = log.Discard()
	}
	if processor == nil {
		processor = payout.NewProcessor(logger)
	}
	return &PayoutService{
		processor:   processor,
		sinks:       sinks,
		sinkTimeout: sinkTimeout,
		logger:      logger.WithComponent(log.ComponentPayout),
	}
}

// Sinks lists the configured sink names.
func (s *PayoutService) Sinks() []string {
	names := make([]string, 0, len(s.sinks))
	for _, sink := range s.sinks {
		names = append(names, sink.Name())
	}
	return names
}

// Process decodes and processes one export, then fans the report out to the
// sinks. Input errors fail the call; sink errors are logged and reported in
// the result but never fail it.
func (s *PayoutService) Process(ctx context.Context, filename string, data []byte) (Result, error) {
	table, err := ingest.Decode(filename, data)
	if err != nil {
		return Result{}, fmt.Errorf("decode %s: %w", filename, err)
	}
	return s.ProcessTable(ctx, filename, table)
}

// ProcessTable is Process for an export that is already decoded.
func (s *PayoutService) ProcessTable(ctx context.Context, filename string, table payout.Table) (Result, error) {
	report, err := s.processor.Process(table)
	if err != nil {
		return Result{}, err
	}

	log.NewStructuredLogger(s.logger).LogPayoutProcessed(ctx, filename,
		report.Date.String(),
		report.GrossAmount.String(), report.NetAmount.String(), report.Fees.String(),
		report.Transactions)

	return Result{Report: report, Exports: s.export(ctx, filename, report)}, nil
}

// export runs every sink concurrently, each under its own timeout.
func (s *PayoutService) export(ctx context.Context, filename string, report core.Report) []ExportStatus {
	if len(s.sinks) == 0 {
		return nil
	}

	statuses := make([]ExportStatus, len(s.sinks))
	var g errgroup.Group
	for i, sink := range s.sinks {
		g.Go(func() error {
			sctx := ctx
			if s.sinkTimeout > 0 {
				var cancel context.CancelFunc
				sctx, cancel = context.WithTimeout(ctx, s.sinkTimeout)
				defer cancel()
			}
			err := sink.Export(sctx, filename, report)
			statuses[i] = ExportStatus{Sink: sink.Name(), Err: err}
			if err != nil {
				s.logger.ErrorContext(ctx, "Export failed",
					log.FieldSink, sink.Name(),
					log.FieldError, err,
					log.FieldOperation, log.OpExport)
			}
			return nil
		})
	}
	_ = g.Wait()
	return statuses
}

// Close releases sinks that hold connections.
func (s *PayoutService) Close() error {
	var errs []error
	for _, sink := range s.sinks {
		c, ok := sink.(interface{ Close() error })
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close payout service: %w", errors.Join(errs...))
	}
	return nil
}
