package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"kopilka/internal/core"
	"kopilka/internal/ledger"
	"kopilka/internal/log"
)

type createTransactionRequest struct {
	Type     string          `json:"type"`
	Amount   json.RawMessage `json:"amount"`
	Title    string          `json:"title"`
	Category string          `json:"category"`
}

type transactionListResponse struct {
	Transactions []core.Transaction `json:"transactions"`
	Count        int                `json:"count"`
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	case http.MethodDelete:
		s.clearTransactions(w, r)
	default:
		methodNotAllowed(w, "GET, POST, DELETE")
	}
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	txs := s.ledger.List(r.Context())
	writeJSON(w, http.StatusOK, transactionListResponse{Transactions: txs, Count: len(txs)})
}

// createTransaction validates the submitted fields and stores the new
// record; the ledger itself trusts its callers.
func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	typ, err := core.ParseType(req.Type)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "type must be income or expense")
		return
	}
	amount, err := core.ParseAmount(rawString(req.Amount))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "amount must be a positive number")
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		writeError(w, http.StatusUnprocessableEntity, "title must not be empty")
		return
	}
	if len([]rune(title)) > core.MaxTitleLength {
		writeError(w, http.StatusUnprocessableEntity, "title too long")
		return
	}
	category, err := core.ParseCategory(req.Category, typ)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "unknown category for this type")
		return
	}

	tx, err := s.ledger.Add(r.Context(), typ, amount, title, category)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to save transaction",
			log.FieldError, err,
			log.FieldType, typ,
			log.FieldAmountCents, amount.Cents,
			log.FieldCategory, category,
			log.FieldOperation, log.OpCreate)
		writeError(w, http.StatusInternalServerError, "could not save transaction")
		return
	}

	s.invalidateStats()
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) clearTransactions(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.Clear(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Failed to clear ledger",
			log.FieldError, err,
			log.FieldOperation, log.OpClear)
		writeError(w, http.StatusInternalServerError, "could not delete data")
		return
	}
	s.invalidateStats()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, "DELETE")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	if err := s.ledger.Remove(r.Context(), id); err != nil {
		var serr *ledger.StorageError
		logger := slog.Default()
		if errors.As(err, &serr) {
			logger = logger.With(log.FieldOperation, serr.Op)
		}
		logger.ErrorContext(r.Context(), "Failed to remove transaction",
			log.FieldError, err,
			log.FieldTransactionID, id)
		writeError(w, http.StatusInternalServerError, "could not delete transaction")
		return
	}

	s.invalidateStats()
	// Removing an absent id is a no-op and still returns 204.
	w.WriteHeader(http.StatusNoContent)
}
