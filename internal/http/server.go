// Package http exposes the ledger, statistics and settings over a local
// JSON API, the surface the presentation layer talks to.
package http

import (
	"net/http"
	"time"

	"kopilka/internal/cache"
	"kopilka/internal/ledger"
	"kopilka/internal/middleware/trace"
	"kopilka/internal/settings"
)

// Server bundles the handlers' dependencies.
type Server struct {
	ledger   *ledger.Store
	settings *settings.Store

	// statsCache memoizes statistics responses per period between ledger
	// mutations; nil when caching is disabled.
	statsCache *cache.LRUCache[statisticsResponse]
}

// NewServer wires the routes and middleware and returns a ready-to-run
// *http.Server listening on addr.
func NewServer(addr string, led *ledger.Store, set *settings.Store, statsCacheTTL time.Duration) *http.Server {
	s := &Server{ledger: led, settings: set}
	if statsCacheTTL > 0 {
		s.statsCache = cache.NewLRUCache[statisticsResponse](8, statsCacheTTL)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/transactions", s.handleTransactions)
	mux.HandleFunc("/api/transactions/", s.handleTransactionByID)
	mux.HandleFunc("/api/statistics", s.handleStatistics)
	mux.HandleFunc("/api/settings", s.handleSettings)
	mux.HandleFunc("/api/currencies", s.handleCurrencies)
	mux.HandleFunc("/api/export.csv", s.handleExport)

	tracer := trace.NewMiddleware()
	return &http.Server{
		Addr:    addr,
		Handler: tracer.Middleware(mux),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// invalidateStats drops memoized statistics after any ledger mutation.
func (s *Server) invalidateStats() {
	if s.statsCache != nil {
		s.statsCache.Purge()
	}
}
