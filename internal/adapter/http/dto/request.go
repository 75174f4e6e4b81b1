package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/transfermatch/internal/domain"
	"github.com/iho/transfermatch/internal/usecase"
)

// ApplyDecisionRequest represents a request to apply a pairing decision.
type ApplyDecisionRequest struct {
	Kind       string `json:"kind"`
	OutgoingID string `json:"outgoing_id"`
	IncomingID string `json:"incoming_id,omitempty"`
	PairID     string `json:"pair_id,omitempty"`
	Override   bool   `json:"override,omitempty"`
}

// ToAction converts to a domain action for the given user.
func (r *ApplyDecisionRequest) ToAction(userID string) domain.TransferPairAction {
	return domain.TransferPairAction{
		Kind:       domain.ActionKind(r.Kind),
		UserID:     userID,
		OutgoingID: r.OutgoingID,
		IncomingID: r.IncomingID,
		PairID:     r.PairID,
		Override:   r.Override,
	}
}

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name        string `json:"name"`
	Institution string `json:"institution,omitempty"`
	Type        string `json:"type,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput(userID string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		UserID:      userID,
		Name:        r.Name,
		Institution: r.Institution,
		Type:        r.Type,
	}
}

// ImportTransactionsRequest represents a request to import ledger
// transactions.
type ImportTransactionsRequest struct {
	Transactions []TransactionItem `json:"transactions"`
}

// TransactionItem represents a single transaction in an import.
type TransactionItem struct {
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	Category    *string         `json:"category,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ImportTransactionsRequest) ToUseCaseInput(userID string) usecase.ImportTransactionsInput {
	transactions := make([]usecase.TransactionInput, len(r.Transactions))
	for i, item := range r.Transactions {
		transactions[i] = usecase.TransactionInput{
			AccountID:   item.AccountID,
			Amount:      item.Amount,
			Date:        item.Date,
			Description: item.Description,
			Category:    item.Category,
		}
	}

	return usecase.ImportTransactionsInput{
		UserID:       userID,
		Transactions: transactions,
	}
}
