package backend

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/storage"

	"gocardlessosm/internal/amqp"
	"gocardlessosm/internal/archive"
	"gocardlessosm/internal/log"
	"gocardlessosm/internal/services"
	gsheet "gocardlessosm/internal/sheets/google"
	"gocardlessosm/internal/sheets/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new sink factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateSinks implements Factory.CreateSinks. A broker that cannot be reached
// only disables notifications; any other sink failing to start is an error.
func (f *DefaultFactory) CreateSinks(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	res := &Result{}
	var closers []func() error
	res.Cleanup = func() error {
		var errs []error
		for _, c := range closers {
			if err := c(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	for _, st := range config.Sinks {
		switch st {
		case MemorySink:
			res.Sinks = append(res.Sinks, memory.New())
			f.logger.Info("Initialized memory sink")

		case SheetsSink:
			cli, err := gsheet.NewFromConfig(ctx, gsheet.Options{
				SpreadsheetID:      config.GoogleSpreadsheetID,
				ServiceAccountJSON: config.GoogleServiceAccountJSON,
				ServiceAccountFile: config.GoogleServiceAccountFile,
			}, f.logger)
			if err != nil {
				res.Cleanup()
				return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
			}
			res.Sinks = append(res.Sinks, cli)
			f.logger.Info("Initialized Google Sheets sink")

		case GCSSink:
			client, err := storage.NewClient(ctx)
			if err != nil {
				res.Cleanup()
				return nil, fmt.Errorf("failed to initialize Cloud Storage client: %w", err)
			}
			closers = append(closers, client.Close)
			res.Sinks = append(res.Sinks, archive.New(archive.NewGCSBucket(client, config.GCSBucket), config.GCSPrefix, f.logger))
			f.logger.Info("Initialized Cloud Storage sink", "bucket", config.GCSBucket, "prefix", config.GCSPrefix)
		}
	}

	if config.AMQPURL != "" {
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue, f.logger)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without notifications", log.FieldError, err)
		} else {
			closers = append(closers, client.Close)
			res.Sinks = append(res.Sinks, client)
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	return res, nil
}

// NewPayoutService wires a payout service to the sinks described by config.
func NewPayoutService(ctx context.Context, f Factory, config Config, logger *log.Logger) (*services.PayoutService, CleanupFunc, error) {
	res, err := f.CreateSinks(ctx, config)
	if err != nil {
		return nil, nil, err
	}
	return services.NewPayoutService(nil, config.Timeout, logger, res.Sinks...), res.Cleanup, nil
}
