// Package http serves the payout upload form, the processed report and its
// downloads.
package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"gocardlessosm/internal/cache"
	"gocardlessosm/internal/log"
	"gocardlessosm/internal/middleware/ratelimit"
	"gocardlessosm/internal/middleware/security"
	"gocardlessosm/internal/middleware/trace"
	"gocardlessosm/internal/render"
	"gocardlessosm/internal/services"
	appweb "gocardlessosm/web"
)

// Options configures a Server.
type Options struct {
	Addr                 string
	MaxUploadBytes       int64
	RateLimitRPM         int
	SessionTTL           time.Duration
	SessionCacheSize     int
	CacheCleanupInterval time.Duration
}

// appMetrics tracks application counters exposed on /metrics.
type appMetrics struct {
	uptime         time.Time
	payouts        int64
	rejectedInputs int64
	failedExports  int64
	downloads      int64
}

type Server struct {
	http.Server
	templates      *template.Template
	payouts        *services.PayoutService
	sessions       *cache.Sessions
	caches         *cache.Manager
	maxUploadBytes int64
	logger         *log.Logger

	rateLimiter      *ratelimit.Limiter
	securityDetector *security.Detector
	traceMiddleware  *trace.Middleware

	appMetrics   appMetrics
	shutdownOnce sync.Once
}

// NewServer configures routes, templates and middleware, returning a
// ready-to-run server. Background cleanup starts immediately; Shutdown stops
// it.
func NewServer(opts Options, payouts *services.PayoutService, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Discard()
	}
	httpLogger := logger.WithComponent(log.ComponentHTTP)

	s := &Server{
		payouts:          payouts,
		sessions:         cache.NewSessions(opts.SessionCacheSize, opts.SessionTTL, logger),
		caches:           cache.NewManager(logger),
		maxUploadBytes:   opts.MaxUploadBytes,
		logger:           httpLogger,
		rateLimiter:      ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitRPM}),
		securityDetector: security.NewDetector(logger),
		appMetrics:       appMetrics{uptime: time.Now()},
	}
	s.traceMiddleware = trace.NewMiddleware(s.securityDetector.ExtractClientIP, logger)

	s.caches.Register("sessions", s.sessions)
	if opts.CacheCleanupInterval > 0 {
		s.caches.StartCleanup(opts.CacheCleanupInterval)
	}

	t, err := template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		httpLogger.WithComponent(log.ComponentTemplate).Error("Failed parsing templates",
			log.FieldError, err)
	} else {
		s.templates = t
	}

	mux := http.NewServeMux()

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		httpLogger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	private := func(h http.HandlerFunc) http.Handler { return security.NoStore(h) }
	mux.Handle("GET /{$}", private(s.handleIndex))
	mux.Handle("POST /upload", private(s.handleUpload))
	mux.Handle("GET /report", private(s.handleReport))
	mux.Handle("GET /report/download/{format}", private(s.handleDownload))
	mux.Handle("POST /report/clear", private(s.handleClear))

	limited := s.rateLimiter.Middleware(s.securityDetector.ExtractClientIP, s.onRateLimit, http.MethodPost)
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           s.traceMiddleware.Middleware(s.securityDetector.Middleware(headers.Middleware(limited(mux)))),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
	return s
}

var templateFuncs = template.FuncMap{
	"pounds": render.Pounds,
	"date":   render.Date,
	"label":  label,
}

// label shows empty section and event names the way every report format does.
func label(v any) string {
	return render.Label(fmt.Sprint(v))
}

func (s *Server) onRateLimit(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, s.securityDetector.ExtractClientIP(r),
		log.FieldPath, r.URL.Path)
	w.Header().Set("Retry-After", "60")
	s.renderError(w, r, http.StatusTooManyRequests, "Too many uploads. Please wait a minute and try again.")
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.caches.Stop()
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
