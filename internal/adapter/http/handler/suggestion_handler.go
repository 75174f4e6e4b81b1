package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/transfermatch/internal/adapter/http/dto"
	"github.com/iho/transfermatch/internal/infrastructure/metrics"
	"github.com/iho/transfermatch/internal/usecase"
)

// SuggestionHandler handles transfer-suggestion HTTP requests.
type SuggestionHandler struct {
	suggestionUC *usecase.SuggestionUseCase
	metrics      *metrics.Metrics
}

// NewSuggestionHandler creates a new SuggestionHandler. m may be nil to
// disable instrumentation.
func NewSuggestionHandler(suggestionUC *usecase.SuggestionUseCase, m *metrics.Metrics) *SuggestionHandler {
	return &SuggestionHandler{suggestionUC: suggestionUC, metrics: m}
}

// Generate runs reconciliation for a user and returns the suggestion set.
func (h *SuggestionHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	from, err := parseDateQuery(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from date", err.Error())
		return
	}

	to, err := parseDateQuery(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to date", err.Error())
		return
	}

	start := time.Now()

	set, err := h.suggestionUC.GenerateSuggestions(r.Context(), usecase.GenerateSuggestionsInput{
		UserID: userID,
		From:   from,
		To:     to,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to generate suggestions", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.SuggestionRuns.Inc()
		h.metrics.SuggestionDuration.Observe(time.Since(start).Seconds())
		h.metrics.SuggestionsAccepted.Observe(float64(len(set.Accepted)))
		h.metrics.SuggestionsRejected.Observe(float64(len(set.Rejected)))
	}

	writeJSON(w, http.StatusOK, dto.SuggestionSetFromDomain(set))
}
