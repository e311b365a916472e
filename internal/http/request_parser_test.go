package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"gocardlessosm/internal/core"
	"gocardlessosm/internal/ingest"
	"gocardlessosm/internal/payout"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"payout.csv", "payout.csv"},
		{"C:\\Users\\me\\payout.csv", "payout.csv"},
		{"../../etc/passwd", "passwd"},
		{"pay\x00out\n.csv", "payout.csv"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeFilename(tt.in))
		})
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"no file", errNoFile, http.StatusUnprocessableEntity},
		{"too large", errFileTooLarge, http.StatusRequestEntityTooLarge},
		{"empty", ingest.ErrEmptyFile, http.StatusUnprocessableEntity},
		{"format", ingest.ErrUnsupportedFormat, http.StatusUnprocessableEntity},
		{"columns", payout.ErrMissingColumns, http.StatusUnprocessableEntity},
		{"cell", payout.ErrInvalidCell, http.StatusUnprocessableEntity},
		{"amount", core.ErrInvalidAmount, http.StatusUnprocessableEntity},
		{"other", errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := classifyError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, msg)
		})
	}
}
