// Package server provides the HTTP REST API for the resume structurer.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jonathan/resume-structurer/internal/db"
	"github.com/jonathan/resume-structurer/internal/logger"
	"github.com/jonathan/resume-structurer/internal/resumes"
	"github.com/jonathan/resume-structurer/internal/server/middleware"
	"github.com/jonathan/resume-structurer/internal/server/ratelimit"
	"github.com/jonathan/resume-structurer/internal/validation"
)

// DefaultMaxUploadBytes bounds multipart uploads when Config leaves it unset.
const DefaultMaxUploadBytes = 10 << 20

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	db             *db.DB // nil when running without storage
	resumes        *resumes.Service
	rateLimiter    *ratelimit.Limiter
	maxUploadBytes int64
	parseDefaults  resumes.ParseOptions
	validationOpts validation.Options
}

// Config holds server configuration
type Config struct {
	Port             int
	DatabaseURL      string // empty disables the storage routes
	MaxUploadBytes   int64
	BatchConcurrency int
	MaxBulletChars   int
	Clean            bool // clean every input, regardless of the request flag
	NormalizeSkills  bool // normalize skills on every input
	RateLimit        *ratelimit.Config // nil loads from the environment
}

// New creates a new server instance, connecting to the database when one is
// configured.
func New(ctx context.Context, cfg Config) (*Server, error) {
	var store resumes.Store
	var database *db.DB

	if cfg.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to prepare database schema: %w", err)
		}
		store = database
	} else {
		logger.Warn().Msg("no database configured, storage routes disabled")
	}

	s := newServer(resumes.NewService(store, cfg.BatchConcurrency), cfg)
	s.db = database
	return s, nil
}

// newServer wires routes and middleware around an existing service.
func newServer(svc *resumes.Service, cfg Config) *Server {
	rateConfig := cfg.RateLimit
	if rateConfig == nil {
		rateConfig = ratelimit.LoadConfig()
	}
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}

	s := &Server{
		resumes:        svc,
		rateLimiter:    ratelimit.NewLimiter(rateConfig),
		maxUploadBytes: maxUpload,
		parseDefaults:  resumes.ParseOptions{Clean: cfg.Clean, NormalizeSkills: cfg.NormalizeSkills},
		validationOpts: validation.Options{MaxBulletChars: cfg.MaxBulletChars},
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // document conversion can be slow
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Stateless parsing
	mux.HandleFunc("POST /parse", s.handleParse)
	mux.HandleFunc("POST /parse/upload", s.handleParseUpload)
	mux.HandleFunc("POST /parse/batch", s.handleParseBatch)

	// Stored resumes
	mux.HandleFunc("POST /resumes", s.handleCreateResume)
	mux.HandleFunc("GET /resumes", s.handleListResumes)
	mux.HandleFunc("GET /resumes/{id}", s.handleGetResume)
	mux.HandleFunc("DELETE /resumes/{id}", s.handleDeleteResume)

	return middleware.RequestID(
		middleware.CORS(
			middleware.Logging(logger.Logger)(
				s.withRateLimit(mux))))
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.close()
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.close()
	logger.Info().Msg("server stopped")
	return nil
}

func (s *Server) close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.db != nil {
		s.db.Close()
	}
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID uses the IP address from RemoteAddr. Forwarded headers are
// ignored because no trusted proxy list is configured.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	logger.Ctx(r.Context()).Warn().
		Str("client", s.extractClientID(r)).
		Int("limit", info.Limit).
		Msg("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Msg("error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail writes err with the status HTTPStatus assigns it. Internal errors are
// logged and hidden from the client.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logger.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, ErrorMessage(err))
}
