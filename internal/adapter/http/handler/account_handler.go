package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/transfermatch/internal/adapter/http/dto"
	"github.com/iho/transfermatch/internal/infrastructure/metrics"
	"github.com/iho/transfermatch/internal/usecase"
)

// AccountHandler handles account HTTP requests.
type AccountHandler struct {
	ledgerUC *usecase.LedgerUseCase
	metrics  *metrics.Metrics
}

// NewAccountHandler creates a new AccountHandler. m may be nil to disable
// instrumentation.
func NewAccountHandler(ledgerUC *usecase.LedgerUseCase, m *metrics.Metrics) *AccountHandler {
	return &AccountHandler{ledgerUC: ledgerUC, metrics: m}
}

// Create creates a new account for a user.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "missing account name", "")
		return
	}

	account, err := h.ledgerUC.CreateAccount(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create account", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.AccountsCreated.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// List lists a user's accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	accounts, err := h.ledgerUC.ListAccounts(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}
