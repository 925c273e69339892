package http

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"filings/internal/loader"
	applog "filings/internal/log"
	"filings/internal/middleware/trace"
)

// StateSource reports the current load state of the dataset.
type StateSource interface {
	State() loader.State
}

// Options tunes the server. Zero values pick defaults.
type Options struct {
	Logger            *applog.Logger
	RequestsPerMinute int
}

type Server struct {
	http.Server
	states      StateSource
	logger      *applog.Logger
	rateLimiter *rateLimiter
	metrics     *securityMetrics
	tracer      *trace.Middleware

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, states StateSource, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = applog.Discard()
	}

	s := &Server{
		states:      states,
		logger:      logger.WithComponent(applog.ComponentHTTP),
		rateLimiter: newRateLimiter(opts.RequestsPerMinute),
		metrics:     &securityMetrics{},
	}
	s.tracer = trace.NewMiddleware(extractClientIP, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /api/overview", s.withEngine(s.handleOverview))
	mux.HandleFunc("GET /api/filters", s.withEngine(s.handleFilters))
	mux.HandleFunc("GET /api/records", s.withEngine(s.handleRecords))
	mux.HandleFunc("GET /api/contributors", s.withEngine(s.handleContributors))
	mux.HandleFunc("GET /api/contributors/{slug}", s.withEngine(s.handleContributor))
	mux.HandleFunc("GET /api/recipients", s.withEngine(s.handleRecipients))
	mux.HandleFunc("GET /api/recipients/{slug}", s.withEngine(s.handleRecipient))
	mux.HandleFunc("GET /api/dates", s.withEngine(s.handleDates))
	mux.HandleFunc("GET /api/stats", s.withEngine(s.handleStats))
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		NotFoundError("no such endpoint").RequestID(trace.GetRequestID(r.Context())).Write(w)
	})

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.tracer.Middleware(s.withSecurity(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withSecurity adds security headers, rate limiting and probe detection.
func (s *Server) withSecurity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := extractClientIP(r)

		if detectSuspiciousRequest(r, s.metrics) {
			applog.FromContext(r.Context()).WarnContext(r.Context(), "Suspicious request",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
		}

		if r.URL.Path != "/healthz" && !s.rateLimiter.allow(clientIP, s.metrics) {
			applog.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldPath, r.URL.Path)
			TooManyRequestsError().RequestID(trace.GetRequestID(r.Context())).Write(w)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

// SecurityStats is a snapshot of the security counters.
type SecurityStats struct {
	RateLimitHits      int64 `json:"rateLimitHits"`
	SuspiciousRequests int64 `json:"suspiciousRequests"`
}

func (s *Server) securityStats() SecurityStats {
	return SecurityStats{
		RateLimitHits:      atomic.LoadInt64(&s.metrics.rateLimitHits),
		SuspiciousRequests: atomic.LoadInt64(&s.metrics.suspiciousRequests),
	}
}
