// Package server provides the HTTP REST API for the sizing assistant.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/sizing-assistant/internal/catalog"
	"github.com/jonathan/sizing-assistant/internal/chatbot"
	"github.com/jonathan/sizing-assistant/internal/config"
	"github.com/jonathan/sizing-assistant/internal/retrieval"
	"github.com/jonathan/sizing-assistant/internal/server/middleware"
	"github.com/jonathan/sizing-assistant/internal/server/ratelimit"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	bot         *chatbot.Bot
	catalog     *catalog.Store
	retriever   *retrieval.Retriever
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	logger      *slog.Logger
}

// Config holds server configuration
type Config struct {
	Port int
	JWT  *config.JWTConfig
	// RateLimit defaults to ratelimit.LoadConfig().
	RateLimit *ratelimit.Config
	// RateLimitStore defaults to an in-memory store.
	RateLimitStore ratelimit.Store
}

// New creates a new server instance
func New(cfg Config, bot *chatbot.Bot, store *catalog.Store, logger *slog.Logger) (*Server, error) {
	if bot == nil || store == nil {
		return nil, fmt.Errorf("server requires a chatbot and a catalog store")
	}
	if cfg.JWT == nil {
		return nil, fmt.Errorf("server requires a JWT configuration")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		bot:        bot,
		catalog:    store,
		retriever:  retrieval.New(store),
		jwtService: NewJWTService(cfg.JWT),
		logger:     logger,
	}

	limitConfig := cfg.RateLimit
	if limitConfig == nil {
		limitConfig = ratelimit.LoadConfig()
	}
	if cfg.RateLimitStore != nil {
		s.rateLimiter = ratelimit.NewLimiterWithStore(limitConfig, cfg.RateLimitStore)
	} else {
		s.rateLimiter = ratelimit.NewLimiter(limitConfig)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /stats", s.handleStats)

	// Conversations
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.Handle("POST /sessions/{id}/messages", s.withSession(s.handleSendMessage))
	mux.Handle("GET /sessions/{id}", s.withSession(s.handleGetSession))
	mux.Handle("GET /sessions/{id}/suggestions", s.withSession(s.handleGetSuggestions))
	mux.Handle("DELETE /sessions/{id}", s.withSession(s.handleDeleteSession))

	// Catalog
	mux.HandleFunc("GET /clients", s.handleListClients)
	mux.HandleFunc("GET /clients/{id}", s.handleGetClient)
	mux.HandleFunc("GET /clients/{id}/similar", s.handleSimilarClients)
	mux.HandleFunc("GET /products", s.handleListProducts)
	mux.HandleFunc("GET /products/{id}", s.handleGetProduct)

	// Engine
	mux.HandleFunc("POST /recommendations", s.handleRecommend)
	mux.HandleFunc("POST /parse", s.handleParse)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second, // covers the composer timeout
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves requests until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	s.logger.Info("server stopped")
	return nil
}

// withSession requires a Bearer token issued for the {id} session.
func (s *Server) withSession(h http.HandlerFunc) http.Handler {
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	return auth(middleware.RequireSession("id")(h))
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info, err := s.rateLimiter.Allow(r.Context(), clientID, r.URL.Path, r.Method)
		if err != nil {
			s.logger.Warn("rate limiter unavailable, allowing request", "error", err)
		}

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote_addr", r.RemoteAddr,
			"duration", time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"catalog_loaded":  s.bot.Initialized(),
		"active_sessions": s.bot.Sessions().Count(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps a typed error to its status code.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.errorResponse(w, status, err.Error())
}

// decodeJSON reads a JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON"}
	}
	return nil
}

// queryLimit reads the "limit" query parameter, falling back to def and capping at maxLimit.
func queryLimit(r *http.Request, def, maxLimit int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, &ErrValidation{Field: "limit", Message: "must be a positive integer"}
	}
	return min(limit, maxLimit), nil
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr.
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
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		retryAfter := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = retryAfter
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	}

	s.logger.Warn("rate limit exceeded",
		"client", s.extractClientID(r),
		"path", r.URL.Path,
		"limit", info.Limit,
		"reset_at", info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
