package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IgnoredPairID is the sentinel transfer-pair identifier stamped onto an
// outgoing transaction that the user marked as "not a transfer".
const IgnoredPairID = "ignored"

// TransferStatus describes where a transaction sits in the reconciliation
// state machine: Unresolved -> Paired | Ignored.
type TransferStatus string

const (
	StatusUnresolved TransferStatus = "unresolved"
	StatusPaired     TransferStatus = "paired"
	StatusIgnored    TransferStatus = "ignored"
)

// Transaction is one row of a user's raw ledger. Amount is signed:
// negative means money leaving the account, positive means money arriving.
type Transaction struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Date           time.Time
	Category       *string
	TransferPairID *string
	ID             string
	UserID         string
	AccountID      string
	Description    string
	Amount         decimal.Decimal
}

// Validate validates transaction invariants.
func (t *Transaction) Validate() error {
	if t.Amount.IsZero() {
		return ErrZeroAmount
	}

	if t.Date.IsZero() {
		return ErrInvalidDate
	}

	return nil
}

// IsOutflow reports whether money left the account.
func (t *Transaction) IsOutflow() bool {
	return t.Amount.IsNegative()
}

// IsInflow reports whether money arrived in the account.
func (t *Transaction) IsInflow() bool {
	return t.Amount.IsPositive()
}

// Magnitude returns the absolute amount.
func (t *Transaction) Magnitude() decimal.Decimal {
	return t.Amount.Abs()
}

// TransferStatus derives the reconciliation status from the pair identifier.
func (t *Transaction) TransferStatus() TransferStatus {
	switch {
	case t.TransferPairID == nil:
		return StatusUnresolved
	case *t.TransferPairID == IgnoredPairID:
		return StatusIgnored
	default:
		return StatusPaired
	}
}

// Resolved reports whether the transaction already carries a pair identifier
// (including the ignored sentinel) and must be excluded from candidate
// generation.
func (t *Transaction) Resolved() bool {
	return t.TransferPairID != nil
}

// DaysBetween returns the absolute whole-day distance between two calendar
// dates. Both dates are truncated to day granularity first.
func DaysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)

	days := int(ad.Sub(bd).Hours() / 24)
	if days < 0 {
		days = -days
	}

	return days
}
