package matcher_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/transfermatch/internal/domain"
)

// txn builds a ledger transaction for tests. Amount is a decimal string,
// day is a calendar date like "2024-01-10".
func txn(t *testing.T, id, accountID, amount, day string) *domain.Transaction {
	t.Helper()

	amt, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("bad amount %q: %v", amount, err)
	}

	date, err := time.Parse("2006-01-02", day)
	if err != nil {
		t.Fatalf("bad date %q: %v", day, err)
	}

	return &domain.Transaction{
		ID:        id,
		UserID:    "user-1",
		AccountID: accountID,
		Amount:    amt,
		Date:      date,
	}
}

func resolved(txn *domain.Transaction, pairID string) *domain.Transaction {
	txn.TransferPairID = &pairID
	return txn
}

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}

	return d
}

var testAccounts = []*domain.Account{
	{ID: "acc-a", UserID: "user-1", Name: "Checking", Institution: "First National", Type: "checking"},
	{ID: "acc-b", UserID: "user-1", Name: "Savings", Institution: "First National", Type: "savings"},
	{ID: "acc-c", UserID: "user-1", Name: "Brokerage", Institution: "Vanguard", Type: "investment"},
}
