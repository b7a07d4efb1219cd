package http

import (
	"log/slog"
	"net/http"

	"kopilka/internal/log"
	"kopilka/internal/settings"
)

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.settings.Load(r.Context()))
	case http.MethodPut:
		s.saveSettings(w, r)
	default:
		methodNotAllowed(w, "GET, PUT")
	}
}

func (s *Server) saveSettings(w http.ResponseWriter, r *http.Request) {
	// Start from the saved record so a partial update keeps the rest.
	prefs := s.settings.Load(r.Context())
	if err := decodeJSON(r, &prefs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := prefs.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.settings.Save(r.Context(), prefs); err != nil {
		slog.ErrorContext(r.Context(), "Failed to save settings",
			log.FieldError, err,
			log.FieldCurrency, prefs.Currency)
		writeError(w, http.StatusInternalServerError, "could not save settings")
		return
	}

	// Currency labels statistics responses; drop memoized copies.
	s.invalidateStats()
	writeJSON(w, http.StatusOK, prefs)
}

func (s *Server) handleCurrencies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	writeJSON(w, http.StatusOK, settings.Currencies())
}
