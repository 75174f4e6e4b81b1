package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/transfermatch/internal/domain"
	"github.com/iho/transfermatch/internal/usecase/mocks"
)

// setChiURLParam attaches a chi route parameter to a request built outside
// the router.
func setChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func seededRepos(t *testing.T) (*mocks.MockTransactionRepository, *mocks.MockAccountRepository) {
	t.Helper()

	txnRepo := mocks.NewMockTransactionRepository()
	txnRepo.Seed(
		testTxn("out-1", "acc-a", -500, "2024-01-10"),
		testTxn("in-1", "acc-b", 500, "2024-01-10"),
	)

	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.Seed(
		&domain.Account{ID: "acc-a", UserID: "user-1", Name: "Checking"},
		&domain.Account{ID: "acc-b", UserID: "user-1", Name: "Savings"},
	)

	return txnRepo, accountRepo
}

func testTxn(id, accountID string, amount int64, day string) *domain.Transaction {
	date, _ := time.Parse("2006-01-02", day)

	return &domain.Transaction{
		ID:        id,
		UserID:    "user-1",
		AccountID: accountID,
		Amount:    decimal.NewFromInt(amount),
		Date:      date,
	}
}
