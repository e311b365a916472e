// Package render presents a payout report as text, JSON, YAML or a workbook.
//
// Display formatting lives here only: pounds as £#,##0.00 and dates as
// DD Mon YYYY. Reports themselves carry exact amounts and ISO dates.
package render

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"gocardlessosm/internal/core"
)

const (
	dateLayout = "02 Jan 2006"
	noValue    = "(none)"
)

// Pounds formats an amount as £#,##0.00.
func Pounds(m core.Money) string {
	d := m.Decimal().Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + "£" + humanize.FormatFloat("#,###.##", d.InexactFloat64())
}

// Date formats a date as DD Mon YYYY.
func Date(d core.Date) string {
	if d.IsEmpty() {
		return noValue
	}
	return d.Format(dateLayout)
}

// Label shows empty classification values so they stand out.
func Label[T ~string](v T) string {
	if v == "" {
		return noValue
	}
	return string(v)
}

// Format is an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// Formats lists every supported output format.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatXLSX}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, bool) {
	for _, f := range Formats {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// ContentType returns the MIME type for a format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Filename names a download of the report in this format.
func (f Format) Filename(r core.Report) string {
	ext := string(f)
	if f == FormatText {
		ext = "txt"
	}
	if r.Date.IsEmpty() {
		return "payout." + ext
	}
	return "payout-" + r.Date.String() + "." + ext
}

// Write renders r to w in the given format.
func Write(w io.Writer, f Format, r core.Report) error {
	switch f {
	case FormatText:
		return Text(w, r)
	case FormatJSON:
		return JSON(w, r)
	case FormatYAML:
		return YAML(w, r)
	case FormatXLSX:
		return XLSX(w, r)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}
