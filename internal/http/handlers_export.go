package http

import (
	"log/slog"
	"net/http"

	"kopilka/internal/export"
	"kopilka/internal/log"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	txs := s.ledger.List(r.Context())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="kopilka.csv"`)
	if err := export.WriteCSV(w, txs); err != nil {
		// Headers are gone; all we can do is log.
		slog.ErrorContext(r.Context(), "CSV export failed",
			log.FieldError, err,
			log.FieldOperation, log.OpExport)
	}
}
