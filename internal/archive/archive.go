// Package archive stores processed payout reports in Cloud Storage.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"

	"gocardlessosm/internal/core"
	"gocardlessosm/internal/log"
	"gocardlessosm/internal/render"
)

// Bucket opens writers for objects in one bucket.
type Bucket interface {
	NewWriter(ctx context.Context, object, contentType string) io.WriteCloser
}

// Archiver writes each report as a JSON object under a fixed prefix.
type Archiver struct {
	bucket Bucket
	prefix string
	logger *log.Logger
}

func New(bucket Bucket, prefix string, logger *log.Logger) *Archiver {
	if logger == nil {
		logger = log.Discard()
	}
	return &Archiver{bucket: bucket, prefix: prefix, logger: logger.WithComponent(log.ComponentArchive)}
}

// ObjectName is where the report for a payout is archived. Reprocessing the
// same payout replaces the earlier object.
func ObjectName(prefix string, r core.Report) string {
	return path.Join(prefix, render.FormatJSON.Filename(r))
}

// Name identifies the archiver as an export sink.
func (a *Archiver) Name() string { return "gcs" }

// Export uploads the JSON rendering of report.
func (a *Archiver) Export(ctx context.Context, _ string, report core.Report) error {
	var buf bytes.Buffer
	if err := render.Write(&buf, render.FormatJSON, report); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	object := ObjectName(a.prefix, report)
	w := a.bucket.NewWriter(ctx, object, render.FormatJSON.ContentType())
	if _, err := io.Copy(w, &buf); err != nil {
		w.Close()
		return fmt.Errorf("write object %s: %w", object, err)
	}
	// The upload is only committed by Close.
	if err := w.Close(); err != nil {
		return fmt.Errorf("close object %s: %w", object, err)
	}

	a.logger.InfoContext(ctx, "Report archived",
		log.FieldObject, object,
		log.FieldPayoutDate, report.Date.String(),
		log.FieldOperation, log.OpExport)
	return nil
}

// GCSBucket adapts a Cloud Storage bucket handle to Bucket.
type GCSBucket struct {
	handle *storage.BucketHandle
}

func NewGCSBucket(client *storage.Client, name string) *GCSBucket {
	return &GCSBucket{handle: client.Bucket(name)}
}

func (b *GCSBucket) NewWriter(ctx context.Context, object, contentType string) io.WriteCloser {
	w := b.handle.Object(object).NewWriter(ctx)
	w.ContentType = contentType
	return w
}
