package backend

import (
	"fmt"

	"gocardlessosm/internal/config"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	sinks := make([]SinkType, 0, len(appConfig.ExportSinks))
	for _, name := range appConfig.ExportSinks {
		st := SinkType(name)
		if !st.IsValid() {
			return Config{}, fmt.Errorf("invalid sink type in config: %s", name)
		}
		sinks = append(sinks, st)
	}

	return Config{
		Sinks:   sinks,
		Timeout: appConfig.SinkTimeout,

		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,

		GoogleSpreadsheetID:      appConfig.GoogleSpreadsheetID,
		GoogleServiceAccountJSON: appConfig.GoogleServiceAccountJSON,
		GoogleServiceAccountFile: appConfig.GoogleServiceAccountFile,

		GCSBucket: appConfig.GCSBucket,
		GCSPrefix: appConfig.GCSPrefix,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	for _, st := range c.Sinks {
		switch st {
		case SheetsSink:
			if c.GoogleSpreadsheetID == "" {
				return fmt.Errorf("Google Spreadsheet ID is required for sheets sink")
			}
		case GCSSink:
			if c.GCSBucket == "" {
				return fmt.Errorf("GCS bucket is required for gcs sink")
			}
		case MemorySink:
		default:
			return fmt.Errorf("invalid sink type: %s", st)
		}
	}
	return nil
}

// GetSinkTypes returns all valid sink types
func GetSinkTypes() []SinkType {
	return []SinkType{MemorySink, SheetsSink, GCSSink}
}
