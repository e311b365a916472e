// Command payout splits a GoCardless payout export into per-section totals.
//
//	payout -file export.csv [-format text|json|yaml|xlsx] [-out path] [-export]
//
// The report goes to stdout unless -out is given; logs go to stderr. With
// -export the report is also sent to the sinks named in EXPORT_SINKS.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gocardlessosm/internal/backend"
	"gocardlessosm/internal/cli"
	"gocardlessosm/internal/config"
	"gocardlessosm/internal/core"
	"gocardlessosm/internal/ingest"
	"gocardlessosm/internal/log"
	"gocardlessosm/internal/render"
	"gocardlessosm/internal/services"
)

func main() {
	cli.LoadEnvFile()
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "payout: %v\n", err)
		}
		os.Exit(1)
	}
}

type options struct {
	file    string
	format  string
	out     string
	export  bool
	timeout time.Duration
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("payout", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.file, "file", "", "payout export to process (local path or gs://bucket/object)")
	fs.StringVar(&o.format, "format", "", "output format: "+formatNames()+" (default from -out extension, else text)")
	fs.StringVar(&o.out, "out", "", "write the report to this file instead of stdout")
	fs.BoolVar(&o.export, "export", false, "also send the report to the sinks in EXPORT_SINKS")
	fs.DurationVar(&o.timeout, "timeout", 2*time.Minute, "overall time limit")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.file == "" && fs.NArg() == 1 {
		o.file = fs.Arg(0)
	}
	if o.file == "" {
		fs.Usage()
		return o, errors.New("-file is required")
	}
	return o, nil
}

func formatNames() string {
	names := make([]string, 0, len(render.Formats))
	for _, f := range render.Formats {
		names = append(names, string(f))
	}
	return strings.Join(names, "|")
}

// outputFormat picks the explicit format, then the one matching the output
// file's extension, then text.
func outputFormat(o options) (render.Format, error) {
	if o.format != "" {
		f, ok := render.ParseFormat(strings.ToLower(o.format))
		if !ok {
			return "", fmt.Errorf("unknown format %q (want %s)", o.format, formatNames())
		}
		return f, nil
	}
	switch strings.ToLower(filepath.Ext(o.out)) {
	case ".json":
		return render.FormatJSON, nil
	case ".yaml", ".yml":
		return render.FormatYAML, nil
	case ".xlsx":
		return render.FormatXLSX, nil
	}
	return render.FormatText, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	format, err := outputFormat(o)
	if err != nil {
		return err
	}

	cfg := config.Load()
	logger := cli.SetupLogger(cfg.SlogLevel(), stderr)

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	svc, cleanup, err := newService(ctx, cfg, o.export, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Warn("Sink cleanup failed", log.FieldError, err)
		}
	}()

	table, err := ingest.ReadFile(ctx, o.file)
	if err != nil {
		return err
	}
	res, err := svc.ProcessTable(ctx, filepath.Base(o.file), table)
	if err != nil {
		return err
	}

	if o.out == "" {
		return render.Write(stdout, format, res.Report)
	}
	return writeFile(o.out, format, res.Report)
}

// newService builds a service without sinks unless exporting was asked for.
func newService(ctx context.Context, cfg *config.Config, export bool, logger *log.Logger) (*services.PayoutService, backend.CleanupFunc, error) {
	if !export {
		return services.NewPayoutService(nil, cfg.SinkTimeout, logger), func() error { return nil }, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	return backend.NewPayoutService(ctx, backend.NewFactory(logger), bcfg, logger)
}

func writeFile(path string, format render.Format, report core.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()
	return render.Write(f, format, report)
}
