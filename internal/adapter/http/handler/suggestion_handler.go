package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paymatch/paymatch/internal/adapter/http/dto"
	"github.com/paymatch/paymatch/internal/domain"
	"github.com/paymatch/paymatch/internal/usecase"
)

// SuggestionHandler exposes the operator surface: inspect suggestions and
// decide on them.
type SuggestionHandler struct {
	reconcileUC *usecase.ReconcileUseCase
}

// NewSuggestionHandler creates a new SuggestionHandler.
func NewSuggestionHandler(reconcileUC *usecase.ReconcileUseCase) *SuggestionHandler {
	return &SuggestionHandler{reconcileUC: reconcileUC}
}

// List lists suggestions filtered by status.
func (h *SuggestionHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = string(domain.SuggestionPending)
	}

	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	suggestions, err := h.reconcileUC.ListSuggestions(r.Context(), usecase.ListSuggestionsInput{
		Status: domain.SuggestionStatus(status),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list suggestions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SuggestionsFromDomain(suggestions))
}

// Get retrieves a suggestion by ID.
func (h *SuggestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing suggestion ID", "")
		return
	}

	suggestion, err := h.reconcileUC.GetSuggestion(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get suggestion", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SuggestionFromDomain(suggestion))
}

// ListByTransaction lists every suggestion for a transaction.
func (h *SuggestionHandler) ListByTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "id")
	if transactionID == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	suggestions, err := h.reconcileUC.ListSuggestionsByTransaction(r.Context(), transactionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list suggestions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SuggestionsFromDomain(suggestions))
}

// Approve applies the suggested payment and commits the match.
func (h *SuggestionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing suggestion ID", "")
		return
	}

	suggestion, err := h.reconcileUC.Approve(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to approve suggestion", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SuggestionFromDomain(suggestion))
}

// Reject marks a pending suggestion rejected.
func (h *SuggestionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing suggestion ID", "")
		return
	}

	suggestion, err := h.reconcileUC.Reject(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to reject suggestion", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SuggestionFromDomain(suggestion))
}

// BulkDecide applies one decision to many suggestions, per-item outcomes.
func (h *SuggestionHandler) BulkDecide(w http.ResponseWriter, r *http.Request) {
	var req dto.BulkDecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	outcomes, err := h.reconcileUC.BulkDecide(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to decide suggestions", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BulkOutcomesFromUseCase(outcomes))
}
