package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paymatch/paymatch/internal/adapter/http/dto"
	"github.com/paymatch/paymatch/internal/usecase"
)

// MatchHandler exposes the two match-run triggers.
type MatchHandler struct {
	matchUC *usecase.MatchUseCase
}

// NewMatchHandler creates a new MatchHandler.
func NewMatchHandler(matchUC *usecase.MatchUseCase) *MatchHandler {
	return &MatchHandler{matchUC: matchUC}
}

// FindMatches runs candidate generation for one transaction.
func (h *MatchHandler) FindMatches(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	result, err := h.matchUC.FindMatches(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to find matches", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.MatchRunFromUseCase(result))
}

// ProcessInvoice scores a freshly synced invoice against recent unmatched
// transactions.
func (h *MatchHandler) ProcessInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing invoice ID", "")
		return
	}

	result, err := h.matchUC.ProcessNewInvoice(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to process invoice", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.MatchRunFromUseCase(result))
}
