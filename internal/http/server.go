// Package http exposes the dashboard JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"galaxy/internal/cache"
	applog "galaxy/internal/log"
	"galaxy/internal/middleware/ratelimit"
	"galaxy/internal/services"
)

// Options tunes the server's caching and rate limiting.
type Options struct {
	// RateLimitRPM caps per-client calls to the endpoints that reach
	// the text-generation service.
	RateLimitRPM int
	// InsightCacheTTL bounds how long a generated insight is reused
	// for the same month.
	InsightCacheTTL time.Duration
}

type Server struct {
	http.Server
	tracker *services.Tracker
	logger  *applog.Logger

	rateLimiter *ratelimit.Limiter

	// Generated insights are cached per month so a dashboard reload
	// does not trigger a new generation.
	insightCache *cache.LRUCache[string]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and returns a ready-to-run server.
func NewServer(addr string, tracker *services.Tracker, logger *applog.Logger, opts Options) *Server {
	if opts.RateLimitRPM <= 0 {
		opts.RateLimitRPM = 10
	}
	if opts.InsightCacheTTL <= 0 {
		opts.InsightCacheTTL = 5 * time.Minute
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 5 * time.Second,
		},
		tracker:      tracker,
		logger:       logger.WithComponent(applog.ComponentHTTP),
		rateLimiter:  ratelimit.NewLimiter(opts.RateLimitRPM),
		insightCache: cache.NewLRUCache[string](12, opts.InsightCacheTTL),
		cacheManager: cache.NewManager(),
	}
	s.cacheManager.Register(s.insightCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)
	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	mux.HandleFunc("GET /api/budget", s.handleGetBudget)
	mux.HandleFunc("PUT /api/budget", s.handleSetBudget)

	limited := s.rateLimiter.Middleware(clientIP)
	mux.Handle("POST /api/insights", limited(http.HandlerFunc(s.handleInsights)))
	mux.Handle("POST /api/suggest-category", limited(http.HandlerFunc(s.handleSuggestCategory)))

	s.Handler = applog.Middleware(logger)(withSecurityHeaders(mux))
	return s
}

// Shutdown stops the HTTP server and the background cleanup
// goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		s.cacheManager.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
