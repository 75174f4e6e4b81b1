package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/transfermatch/internal/adapter/http/dto"
	"github.com/iho/transfermatch/internal/infrastructure/metrics"
	"github.com/iho/transfermatch/internal/usecase"
)

// TransactionHandler handles ledger-transaction HTTP requests.
type TransactionHandler struct {
	ledgerUC *usecase.LedgerUseCase
	metrics  *metrics.Metrics
}

// NewTransactionHandler creates a new TransactionHandler. m may be nil to
// disable instrumentation.
func NewTransactionHandler(ledgerUC *usecase.LedgerUseCase, m *metrics.Metrics) *TransactionHandler {
	return &TransactionHandler{ledgerUC: ledgerUC, metrics: m}
}

// Import imports a batch of ledger transactions for a user.
func (h *TransactionHandler) Import(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	var req dto.ImportTransactionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if len(req.Transactions) == 0 {
		writeError(w, http.StatusBadRequest, "empty import", "")
		return
	}

	imported, err := h.ledgerUC.ImportTransactions(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to import transactions", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.TransactionsImported.Add(float64(len(imported)))
	}

	writeJSON(w, http.StatusCreated, dto.TransactionsFromDomain(imported))
}

// List lists a user's transactions, optionally date-bounded.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
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

	transactions, err := h.ledgerUC.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		UserID: userID,
		From:   from,
		To:     to,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(transactions))
}
