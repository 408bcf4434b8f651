// Package http exposes the tracker's JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/VishardMehta/Smart-Expense-Management/internal/auth"
	"github.com/VishardMehta/Smart-Expense-Management/internal/cache"
	"github.com/VishardMehta/Smart-Expense-Management/internal/core"
	"github.com/VishardMehta/Smart-Expense-Management/internal/middleware/ratelimit"
	"github.com/VishardMehta/Smart-Expense-Management/internal/middleware/trace"
	"github.com/VishardMehta/Smart-Expense-Management/internal/services"
)

const dashboardCacheKey = "dashboard"

type Server struct {
	http.Server
	service *services.TransactionService
	gate    *auth.Gate
	limiter *ratelimit.Limiter

	// Dashboard summaries are cheap to compute but sit behind the
	// store's simulated latency, so they are cached with a short TTL.
	dashCache *cache.LRUCache[core.Summary]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// server.
func NewServer(addr string, service *services.TransactionService, gate *auth.Gate) *Server {
	mux := http.NewServeMux()

	s := &Server{
		service:          service,
		gate:             gate,
		limiter:          ratelimit.NewLimiter(60),
		dashCache:        cache.NewLRUCache[core.Summary](8, 5*time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}
	s.Server = http.Server{
		Addr:         addr,
		Handler:      trace.Middleware(securityHeaders(mux)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go s.cacheCleanupLoop()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)

	mux.HandleFunc("GET /api/transactions", s.requireAuth(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.requireAuth(s.limited(s.handleCreateTransaction)))
	mux.HandleFunc("PUT /api/transactions/{id}", s.requireAuth(s.limited(s.handleUpdateTransaction)))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.requireAuth(s.limited(s.handleDeleteTransaction)))
	mux.HandleFunc("GET /api/dashboard", s.requireAuth(s.handleDashboard))

	return s
}

// Shutdown stops the listener and the cache janitor. Safe to call more
// than once.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func (s *Server) cacheCleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := s.dashCache.CleanExpired(); n > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", n)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// limited applies per-IP rate limiting to mutating handlers.
func (s *Server) limited(next http.HandlerFunc) http.HandlerFunc {
	return s.limiter.Middleware(next).ServeHTTP
}
