package http

import (
	"errors"
	"net/http"

	"gocardlessosm/internal/core"
	"gocardlessosm/internal/ingest"
	"gocardlessosm/internal/log"
	"gocardlessosm/internal/payout"
)

// inputError pairs an input failure with the message shown to the user.
type inputError struct {
	err     error
	message string
}

var inputErrors = []inputError{
	{errNoFile, "Choose a payout CSV exported from GoCardless."},
	{errFileTooLarge, "The file is too large."},
	{ingest.ErrEmptyFile, "The file is empty."},
	{ingest.ErrUnsupportedFormat, "The file is not a CSV or XLSX export."},
	{payout.ErrMissingColumns, "The file is not a GoCardless payout export."},
	{payout.ErrInvalidCell, "The file contains a value that could not be read."},
	{core.ErrInvalidAmount, "The file contains an amount that could not be read."},
	{core.ErrInvalidDate, "The file contains a date that could not be read."},
}

// classifyError maps an upload failure to a status and a user message.
// Input problems are 422 with the detail appended; anything else is 500.
func classifyError(err error) (int, string) {
	for _, ie := range inputErrors {
		if errors.Is(err, ie.err) {
			status := http.StatusUnprocessableEntity
			if errors.Is(err, errFileTooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			return status, ie.message
		}
	}
	return http.StatusInternalServerError, "Something went wrong processing the payout."
}

// errorView is the data for the error block of index.html.
type errorView struct {
	Message string
	Detail  string
}

// renderError shows the upload form with an error message.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.renderPage(w, r, status, "index.html", s.newIndexView(r, &errorView{Message: message}))
}

// renderPage executes a template with the given status.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if s.templates == nil {
		s.logger.WithComponent(log.ComponentTemplate).ErrorContext(r.Context(), "Templates not loaded",
			log.FieldPath, r.URL.Path,
			"error_type", log.ErrorTypeConfiguration)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution failed",
			log.FieldError, err,
			"template", name,
			log.FieldOperation, log.OpRender)
	}
}
