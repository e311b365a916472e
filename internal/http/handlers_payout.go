package http

import (
	"bytes"
	"mime"
	"net/http"
	"strings"
	"sync/atomic"

	"gocardlessosm/internal/core"
	"gocardlessosm/internal/log"
	"gocardlessosm/internal/render"
	"gocardlessosm/internal/services"
)

// handleUpload processes an uploaded export and redirects to its report.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.payouts == nil {
		s.renderError(w, r, http.StatusInternalServerError, "Payout processing is not configured.")
		return
	}

	filename, data, err := readUpload(w, r, s.maxUploadBytes)
	var res services.Result
	if err == nil {
		res, err = s.payouts.Process(ctx, filename, data)
	}
	if err != nil {
		s.uploadFailed(w, r, filename, err)
		return
	}

	id := ensureSession(w, r)
	s.sessions.Store(id, res.Report)
	atomic.AddInt64(&s.appMetrics.payouts, 1)
	atomic.AddInt64(&s.appMetrics.failedExports, int64(len(res.ExportErrors())))
	log.FromContext(ctx).InfoContext(ctx, "Report stored for session",
		log.FieldSessionID, id,
		log.FieldFilename, filename,
		log.FieldOperation, log.OpUpload)

	http.Redirect(w, r, "/report", http.StatusSeeOther)
}

// uploadFailed shows the form again. Input problems get their detail; other
// failures are logged and hidden behind a generic message.
func (s *Server) uploadFailed(w http.ResponseWriter, r *http.Request, filename string, err error) {
	ctx := r.Context()
	logger := log.FromContext(ctx)
	status, message := classifyError(err)

	if status == http.StatusInternalServerError {
		logger.ErrorContext(ctx, "Upload processing failed",
			log.FieldError, err,
			log.FieldFilename, filename,
			log.FieldOperation, log.OpUpload,
			"error_type", log.ErrorTypeInternal)
		s.renderError(w, r, status, message)
		return
	}

	atomic.AddInt64(&s.appMetrics.rejectedInputs, 1)
	logger.WarnContext(ctx, "Upload rejected",
		log.FieldError, err,
		log.FieldFilename, filename,
		log.FieldOperation, log.OpUpload,
		"error_type", log.ErrorTypeInput)
	s.renderPage(w, r, status, "index.html", s.newIndexView(r, &errorView{Message: message, Detail: err.Error()}))
}

// reportView is the data for report.html.
type reportView struct {
	core.Report
	SubscriptionsTitle string
	ActivitiesTitle    string
	SummerTitle        string
	EmptySubscriptions string
	EmptyActivities    string
	EmptySummer        string
	Downloads          []downloadLink
	// UntabledRecords have no schedule type, so no table holds them.
	UntabledRecords []core.Record
}

type downloadLink struct {
	Label string
	URL   string
}

func newReportView(report core.Report) reportView {
	v := reportView{
		Report:             report,
		SubscriptionsTitle: render.TitleSubscriptions,
		ActivitiesTitle:    render.TitleActivities,
		SummerTitle:        render.TitleSummer,
		EmptySubscriptions: render.EmptySubscriptions,
		EmptyActivities:    render.EmptyActivities,
		EmptySummer:        render.EmptySummer,
	}
	for _, f := range downloadFormats {
		v.Downloads = append(v.Downloads, downloadLink{
			Label: strings.ToUpper(string(f)),
			URL:   "/report/download/" + string(f),
		})
	}
	for _, rec := range report.Records {
		if !rec.ScheduleType.Known() {
			v.UntabledRecords = append(v.UntabledRecords, rec)
		}
	}
	return v
}

// handleReport shows the session's report, or sends the caller back to the
// upload form when there is none.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, ok := s.sessionReport(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderPage(w, r, http.StatusOK, "report.html", newReportView(report))
}

// handleDownload sends the session's report in the requested format.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	format, ok := render.ParseFormat(r.PathValue("format"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	report, ok := s.sessionReport(r)
	if !ok {
		http.Error(w, "no report in this session", http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := render.Write(&buf, format, report); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Report rendering failed",
			log.FieldError, err,
			log.FieldFormat, string(format),
			log.FieldOperation, log.OpDownload)
		http.Error(w, "could not render report", http.StatusInternalServerError)
		return
	}

	atomic.AddInt64(&s.appMetrics.downloads, 1)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": format.Filename(report)}))
	_, _ = buf.WriteTo(w)
}

// handleClear forgets the session's report.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if id := sessionID(r); id != "" {
		s.sessions.Forget(id)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) sessionReport(r *http.Request) (core.Report, bool) {
	id := sessionID(r)
	if id == "" {
		return core.Report{}, false
	}
	return s.sessions.Load(id)
}
