package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/transfermatch/internal/domain"
	"github.com/iho/transfermatch/internal/usecase"
)

// TransactionResponse represents a ledger transaction in API responses.
type TransactionResponse struct {
	ID             string          `json:"id"`
	AccountID      string          `json:"account_id"`
	Amount         decimal.Decimal `json:"amount"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description,omitempty"`
	Category       *string         `json:"category,omitempty"`
	TransferPairID *string         `json:"transfer_pair_id,omitempty"`
	TransferStatus string          `json:"transfer_status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:             t.ID,
		AccountID:      t.AccountID,
		Amount:         t.Amount,
		Date:           t.Date,
		Description:    t.Description,
		Category:       t.Category,
		TransferPairID: t.TransferPairID,
		TransferStatus: string(t.TransferStatus()),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Institution string    `json:"institution,omitempty"`
	Type        string    `json:"type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:          a.ID,
		Name:        a.Name,
		Institution: a.Institution,
		Type:        a.Type,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// PotentialTransferResponse represents a suggested pairing in API responses.
type PotentialTransferResponse struct {
	Outgoing         *TransactionResponse `json:"outgoing"`
	Incoming         *TransactionResponse `json:"incoming"`
	OutgoingAccount  *AccountResponse     `json:"outgoing_account,omitempty"`
	IncomingAccount  *AccountResponse     `json:"incoming_account,omitempty"`
	Score            float64              `json:"score"`
	MatchType        string               `json:"match_type"`
	Confidence       string               `json:"confidence"`
	DayDifference    int                  `json:"day_difference"`
	AmountDifference decimal.Decimal      `json:"amount_difference"`
}

// PotentialTransferFromDomain converts a domain potential transfer to a
// response.
func PotentialTransferFromDomain(p *domain.PotentialTransfer) *PotentialTransferResponse {
	resp := &PotentialTransferResponse{
		Outgoing:         TransactionFromDomain(p.Outgoing),
		Incoming:         TransactionFromDomain(p.Incoming),
		Score:            p.Score,
		MatchType:        string(p.MatchType),
		Confidence:       string(p.Confidence),
		DayDifference:    p.DayDifference,
		AmountDifference: p.AmountDifference,
	}

	if p.OutgoingAccount != nil {
		resp.OutgoingAccount = AccountFromDomain(p.OutgoingAccount)
	}

	if p.IncomingAccount != nil {
		resp.IncomingAccount = AccountFromDomain(p.IncomingAccount)
	}

	return resp
}

// PotentialTransfersFromDomain converts domain potential transfers to
// responses.
func PotentialTransfersFromDomain(transfers []*domain.PotentialTransfer) []*PotentialTransferResponse {
	result := make([]*PotentialTransferResponse, len(transfers))
	for i, p := range transfers {
		result[i] = PotentialTransferFromDomain(p)
	}
	return result
}

// SuggestionSetResponse represents the outcome of a reconciliation run.
type SuggestionSetResponse struct {
	Accepted []*PotentialTransferResponse `json:"accepted"`
	Rejected []*PotentialTransferResponse `json:"rejected"`
}

// SuggestionSetFromDomain converts a suggestion set to a response.
func SuggestionSetFromDomain(set *usecase.SuggestionSet) *SuggestionSetResponse {
	return &SuggestionSetResponse{
		Accepted: PotentialTransfersFromDomain(set.Accepted),
		Rejected: PotentialTransfersFromDomain(set.Rejected),
	}
}

// DecisionResponse represents the outcome of an applied decision.
type DecisionResponse struct {
	PairID string `json:"pair_id"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
