package http

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"kopilka/internal/core"
	"kopilka/internal/settings"
	"kopilka/internal/stats"
)

type statisticsResponse struct {
	Period           stats.Period          `json:"period"`
	Currency         string                `json:"currency"`
	CurrencySymbol   string                `json:"currencySymbol"`
	TotalIncome      core.Money            `json:"totalIncome"`
	TotalExpense     core.Money            `json:"totalExpense"`
	Balance          core.Money            `json:"balance"`
	Income           []stats.CategoryShare `json:"income"`
	Expense          []stats.CategoryShare `json:"expense"`
	TransactionCount int                   `json:"transactionCount"`
}

// handleStatistics recomputes aggregates from a fresh ledger snapshot,
// optionally serving a short-lived cached copy between mutations. The 30-day
// month window is rolling, not calendar.
func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	periodParam := strings.TrimSpace(r.URL.Query().Get("period"))
	if periodParam == "" {
		periodParam = string(stats.PeriodMonth)
	}
	period, err := stats.ParsePeriod(periodParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "period must be week, month or all")
		return
	}

	if s.statsCache != nil {
		if cached, ok := s.statsCache.Get(string(period)); ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	// Ledger and settings live under independent keys; load them in parallel.
	var (
		txs   []core.Transaction
		prefs settings.Settings
	)
	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		txs = s.ledger.List(gctx)
		return nil
	})
	g.Go(func() error {
		prefs = s.settings.Load(gctx)
		return nil
	})
	_ = g.Wait() // both loads fail soft

	filtered := stats.FilterByPeriod(txs, period, time.Now())
	summary := stats.Summarize(filtered)
	breakdown := stats.BreakdownByCategory(filtered)

	currency, _ := settings.CurrencyInfo(prefs.Currency)
	resp := statisticsResponse{
		Period:           period,
		Currency:         currency.Code,
		CurrencySymbol:   currency.Symbol,
		TotalIncome:      summary.TotalIncome,
		TotalExpense:     summary.TotalExpense,
		Balance:          summary.Balance,
		Income:           breakdown.Income,
		Expense:          breakdown.Expense,
		TransactionCount: len(filtered),
	}

	if s.statsCache != nil {
		s.statsCache.Set(string(period), resp)
	}
	writeJSON(w, http.StatusOK, resp)
}
