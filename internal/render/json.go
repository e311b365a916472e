package render

import (
	"encoding/json"
	"io"

	"gocardlessosm/internal/core"
)

// JSON writes the report with two-space indentation.
func JSON(w io.Writer, r core.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
