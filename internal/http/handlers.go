package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"

	"gocardlessosm/internal/render"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.appMetrics.uptime).String(),
	})
}

// handleReady reports whether the server can process uploads.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if s.payouts == nil {
		checks["payouts"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["payouts"] = map[string]any{"status": "ok", "sinks": s.payouts.Sinks()}
	}

	checks["sessions"] = map[string]any{"entries": s.sessions.Size(), "status": "ok"}
	checks["rate_limiter"] = map[string]any{"active_clients": s.rateLimiter.ActiveClients(), "status": "ok"}

	writeJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// handleMetrics provides application and security metrics in Prometheus text format
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	traceMetrics := s.traceMiddleware.GetMetrics()
	rateLimitMetrics := s.rateLimiter.GetMetrics()
	securityMetrics := s.securityDetector.GetMetrics()

	metric := func(name, kind, help string, value any) {
		fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n%s %v\n\n", name, help, name, kind, name, value)
	}

	metric("http_requests_total", "counter", "Total number of HTTP requests", traceMetrics.TotalRequests)
	metric("http_server_errors_total", "counter", "Total number of 5xx responses", traceMetrics.ServerErrors)
	metric("http_response_time_avg_microseconds", "gauge", "Average response time", traceMetrics.AverageResponseTime)
	metric("payouts_processed_total", "counter", "Total payouts processed", atomic.LoadInt64(&s.appMetrics.payouts))
	metric("payout_uploads_rejected_total", "counter", "Total uploads rejected as invalid input", atomic.LoadInt64(&s.appMetrics.rejectedInputs))
	metric("payout_exports_failed_total", "counter", "Total failed sink exports", atomic.LoadInt64(&s.appMetrics.failedExports))
	metric("report_downloads_total", "counter", "Total report downloads", atomic.LoadInt64(&s.appMetrics.downloads))
	metric("sessions_active", "gauge", "Sessions holding a report", s.sessions.Size())
	metric("rate_limit_hits_total", "counter", "Total rate limit hits", rateLimitMetrics.TotalHits)
	metric("active_rate_limit_clients", "gauge", "Currently tracked rate limit clients", rateLimitMetrics.ClientCount)
	metric("suspicious_requests_total", "counter", "Total suspicious requests detected", securityMetrics.SuspiciousRequests)
	metric("uptime_seconds", "gauge", "Application uptime in seconds", fmt.Sprintf("%.0f", time.Since(s.appMetrics.uptime).Seconds()))
}

// indexView is the data for index.html.
type indexView struct {
	Error     *errorView
	HasReport bool
	MaxSize   string
}

func (s *Server) newIndexView(r *http.Request, e *errorView) indexView {
	view := indexView{Error: e}
	if id := sessionID(r); id != "" {
		_, view.HasReport = s.sessions.Load(id)
	}
	if s.maxUploadBytes > 0 {
		view.MaxSize = humanize.IBytes(uint64(s.maxUploadBytes))
	}
	return view
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, "index.html", s.newIndexView(r, nil))
}

// downloadFormats are offered on the report page, in order.
var downloadFormats = []render.Format{render.FormatXLSX, render.FormatJSON, render.FormatYAML, render.FormatText}
