// Package server provides the HTTP REST API for the career guidance service.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/Meet-08/SIH2025-Prototype/internal/config"
	"github.com/Meet-08/SIH2025-Prototype/internal/logging"
	"github.com/Meet-08/SIH2025-Prototype/internal/metrics"
	"github.com/Meet-08/SIH2025-Prototype/internal/server/middleware"
	"github.com/Meet-08/SIH2025-Prototype/internal/server/ratelimit"
)

// APIPrefix is the mount point of every API route.
const APIPrefix = "/v1/api"

// maxBodyBytes bounds request bodies, bulk uploads included.
const maxBodyBytes = 4 << 20

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	router          chi.Router
	store           Store
	recommender     Recommender
	rateLimiter     *ratelimit.Limiter
	jwtService      *JWTService
	studentService  *StudentService
	authHandler     *AuthHandler
	shutdownTimeout time.Duration
}

// Config holds server configuration
type Config struct {
	Server    config.ServerConfig
	JWT       *config.JWTConfig
	Password  *config.PasswordConfig
	RateLimit *ratelimit.Config
}

// New creates a new server instance over an open store and a recommender.
func New(cfg Config, store Store, recommender Recommender) (*Server, error) {
	if store == nil {
		return nil, errors.New("server: store is required")
	}
	if recommender == nil {
		return nil, errors.New("server: recommender is required")
	}
	if cfg.JWT == nil || cfg.Password == nil {
		return nil, errors.New("server: JWT and password configuration are required")
	}

	s := &Server{
		store:           store,
		recommender:     recommender,
		rateLimiter:     ratelimit.NewLimiter(cfg.RateLimit),
		jwtService:      NewJWTService(cfg.JWT),
		shutdownTimeout: cfg.Server.ShutdownTimeout,
	}
	s.studentService = NewStudentService(store, cfg.Password)
	s.authHandler = NewAuthHandler(s.studentService, s.jwtService, s)

	s.router = s.routes(cfg.Server.CORSOrigins)
	s.httpServer = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

// routes builds the chi router with the global middleware stack.
func (s *Server) routes(corsOrigins []string) chi.Router {
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "Retry-After"},
		MaxAge:         300,
	}))
	r.Use(middleware.Metrics)
	r.Use(s.withRateLimit)
	r.Use(chimiddleware.StripSlashes)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route(APIPrefix, func(r chi.Router) {
		r.Route("/student", func(r chi.Router) {
			r.Post("/register", s.authHandler.Register)
			r.Post("/login", s.authHandler.Login)
			r.With(middleware.AuthMiddleware(s.jwtService.AsTokenValidator())).Get("/me", s.authHandler.Me)
		})

		r.Route("/course", func(r chi.Router) {
			r.Post("/", s.handleCreateCourse)
			r.Get("/", s.handleListCourses)
			r.Get("/{course_id}", s.handleGetCourse)
		})

		r.Route("/career", func(r chi.Router) {
			r.Post("/", s.handleCreateCareer)
			r.Get("/", s.handleListCareers)
			r.Get("/{career_id}", s.handleGetCareer)
		})

		r.Post("/course_career/map", s.handleMapCourseToCareer)

		r.Route("/recommendation", func(r chi.Router) {
			r.Post("/", s.handleRecommend)
			r.Get("/questions", s.handleListQuestions)
		})

		r.Route("/college", func(r chi.Router) {
			r.Post("/bulk", s.handleBulkCreateColleges)
			r.Post("/", s.handleCreateCollege)
			r.Get("/", s.handleListColleges)
			r.Get("/search", s.handleSearchColleges)
			r.Get("/filter", s.handleFilterColleges)
		})

		r.Route("/scholarship", func(r chi.Router) {
			r.Post("/bulk", s.handleBulkCreateScholarships)
			r.Post("/", s.handleCreateScholarship)
			r.Get("/", s.handleListScholarships)
			r.Get("/search", s.handleSearchScholarships)
			r.Get("/filter", s.handleFilterScholarships)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		s.errorResponse(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		s.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Info().Str("addr", ln.Addr().String()).Msg("server starting")
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logging.Info().Msg("shutting down server")

		timeout := s.shutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		s.rateLimiter.Stop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		logging.Info().Msg("server stopped")
		return nil
	})

	return g.Wait()
}

// withRateLimit rejects requests over the client's per-endpoint budget.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			metrics.RecordRateLimited(info.Tier)
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth reports liveness and database reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("health check: database unreachable")
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "unreachable"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok", "database": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Error().Err(err).Msg("error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps err to its status and writes it. Server faults are logged
// with the request ID and reported generically.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logging.Ctx(r.Context()).Error().Err(err).Int("status", status).Msg("request failed")
	}
	s.errorResponse(w, status, errorMessage(err, status))
}

// decodeJSON reads a size-limited JSON body into dst.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return &ErrValidation{Field: "body", Message: "request body too large"}
		case errors.Is(err, io.EOF):
			return &ErrValidation{Field: "body", Message: "request body is empty"}
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; proxies are not trusted.
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

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate limit exceeded, please try again later",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		secs := int(info.RetryAfter.Round(time.Second).Seconds())
		if secs < 1 {
			secs = 1
		}
		response["retry_after"] = secs
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}

	logging.Ctx(r.Context()).Warn().
		Str("path", r.URL.Path).
		Int("limit", info.Limit).
		Msg("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
