package payout

import (
	"fmt"

	"gocardlessosm/internal/core"
	"gocardlessosm/internal/log"
)

// Processor runs the payout pipeline over decoded exports.
// It holds no per-run state and is safe for concurrent use.
type Processor struct {
	logger *log.Logger
}

// NewProcessor creates a processor. A nil logger discards output.
func NewProcessor(logger *log.Logger) *Processor {
	if logger == nil {
		logger = log.Discard()
	}
	return &Processor{logger: logger.WithComponent(log.ComponentPayout)}
}

// Process decodes, classifies and aggregates one export.
// Schema and cell errors abort the run; nothing is returned alongside them.
func (p *Processor) Process(t Table) (core.Report, error) {
	txs, err := t.Transactions()
	if err != nil {
		p.logger.Error("Failed to process export",
			log.FieldOperation, log.OpProcess,
			log.FieldError, err)
		return core.Report{}, fmt.Errorf("process export: %w", err)
	}

	records := make([]core.Record, 0, len(txs))
	var (
		totals       core.Totals
		date         core.Date
		unclassified int
	)
	for _, tx := range txs {
		r := Extract(tx)
		records = append(records, r)
		totals = totals.Add(r.Totals())
		if r.ArrivalDate.After(date) {
			date = r.ArrivalDate
		}
		if !r.Classified() {
			unclassified++
		}
	}

	report := Assemble(Aggregate(records), totals, date)
	report.Transactions = len(records)
	report.Unclassified = unclassified
	report.Records = records

	p.logger.Info("Payout date", log.FieldPayoutDate, date.String())
	p.logger.Info("Financial summary",
		log.NewFields().
			WithPayout(date.String(), totals.GrossAmount.String(), totals.NetAmount.String(), totals.Fees.String()).
			WithOperation(log.OpProcess).
			ToSlice()...)
	if unclassified > 0 {
		p.logger.Warn("Transactions without a section or schedule type",
			log.FieldUnclassified, unclassified,
			log.FieldTransactions, len(records))
	}

	return report, nil
}
