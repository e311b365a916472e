// Package google writes payout reports to a Google Sheets spreadsheet.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"gocardlessosm/internal/core"
	"gocardlessosm/internal/log"
	ports "gocardlessosm/internal/sheets"
)

var ErrNotInitialized = errors.New("sheets service not initialized")

// valueInput stores cells as given. Filenames and event names come from
// uploaded files and must never be parsed as formulas.
const valueInput = "RAW"

// Options selects the spreadsheet and the service account used to reach it.
// ServiceAccountJSON wins over ServiceAccountFile; with neither set the
// GOOGLE_APPLICATION_CREDENTIALS file is used.
type Options struct {
	SpreadsheetID      string
	ServiceAccountJSON string
	ServiceAccountFile string
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	logger        *log.Logger
}

var _ ports.ReportWriter = (*Client)(nil)

// NewFromConfig creates a Sheets client authenticated as a service account.
func NewFromConfig(ctx context.Context, opts Options, logger *log.Logger) (*Client, error) {
	if logger == nil {
		logger = log.Discard()
	}
	spreadsheetID := strings.TrimSpace(opts.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	credentialsJSON, err := loadCredentials(opts)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	logger = logger.WithComponent(log.ComponentSheets)
	logger.InfoContext(ctx, "Google Sheets service created", "spreadsheet_id", spreadsheetID)

	return &Client{svc: svc, spreadsheetID: spreadsheetID, logger: logger}, nil
}

func loadCredentials(opts Options) ([]byte, error) {
	inline := strings.TrimSpace(opts.ServiceAccountJSON)
	file := strings.TrimSpace(opts.ServiceAccountFile)
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case inline != "":
		return []byte(inline), nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return b, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

// Name identifies the client as an export sink.
func (c *Client) Name() string { return "sheets" }

// Export writes report to a new tab and logs where it went.
func (c *Client) Export(ctx context.Context, filename string, report core.Report) error {
	ref, err := c.WriteReport(ctx, filename, report)
	if err != nil {
		return err
	}
	c.logger.InfoContext(ctx, "Report exported to Google Sheets",
		log.FieldSheetsRef, ref,
		log.FieldPayoutDate, report.Date.String(),
		log.FieldOperation, log.OpExport)
	return nil
}

// WriteReport adds a tab named after the payout date and fills it with the
// report. An existing tab of the same name is left alone and the new one gets
// a numeric suffix.
func (c *Client) WriteReport(ctx context.Context, filename string, r core.Report) (string, error) {
	if c.svc == nil {
		return "", ErrNotInitialized
	}

	existing, err := c.tabTitles(ctx)
	if err != nil {
		return "", err
	}
	tab := ports.UniqueTabName(existing, ports.TabName(r.Date))

	_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: tab},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("add sheet %q: %w", tab, err)
	}

	rng := fmt.Sprintf("'%s'!A1", tab)
	resp, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, &gsheet.ValueRange{
		Values: ports.ReportValues(filename, r),
	}).ValueInputOption(valueInput).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("write values to %q: %w", tab, err)
	}
	if resp.UpdatedRange != "" {
		return resp.UpdatedRange, nil
	}
	return rng, nil
}

func (c *Client) tabTitles(ctx context.Context) ([]string, error) {
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read spreadsheet: %w", err)
	}
	titles := make([]string, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			titles = append(titles, sh.Properties.Title)
		}
	}
	return titles, nil
}
