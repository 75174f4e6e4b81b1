package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/transfermatch/internal/adapter/http/dto"
	"github.com/iho/transfermatch/internal/infrastructure/metrics"
	"github.com/iho/transfermatch/internal/usecase"
)

// DecisionHandler handles pairing-decision HTTP requests.
type DecisionHandler struct {
	decisionUC *usecase.DecisionUseCase
	metrics    *metrics.Metrics
}

// NewDecisionHandler creates a new DecisionHandler. m may be nil to disable
// instrumentation.
func NewDecisionHandler(decisionUC *usecase.DecisionUseCase, m *metrics.Metrics) *DecisionHandler {
	return &DecisionHandler{decisionUC: decisionUC, metrics: m}
}

// Apply applies a pairing decision for a user.
func (h *DecisionHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	var req dto.ApplyDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	pairID, err := h.decisionUC.ApplyDecision(r.Context(), req.ToAction(userID))
	if err != nil {
		if h.metrics != nil {
			h.metrics.DecisionErrors.WithLabelValues(req.Kind).Inc()
		}

		status := mapDomainError(err)
		writeError(w, status, "failed to apply decision", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.DecisionsApplied.WithLabelValues(req.Kind).Inc()
	}

	writeJSON(w, http.StatusOK, dto.DecisionResponse{PairID: pairID})
}
