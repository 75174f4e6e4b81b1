package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/transfermatch/internal/domain"
	"github.com/iho/transfermatch/internal/matcher"
	"github.com/iho/transfermatch/internal/usecase"
	"github.com/iho/transfermatch/internal/usecase/mocks"
)

type ledgerFixture struct {
	txManager   *mocks.MockTransactionManager
	txnRepo     *mocks.MockTransactionRepository
	accountRepo *mocks.MockAccountRepository
	cache       *mocks.MockCache
	uc          *usecase.LedgerUseCase
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{
		txManager:   mocks.NewMockTransactionManager(),
		txnRepo:     mocks.NewMockTransactionRepository(),
		accountRepo: mocks.NewMockAccountRepository(),
		cache:       mocks.NewMockCache(),
	}
	f.uc = usecase.NewLedgerUseCase(f.txManager, f.txnRepo, f.accountRepo, mocks.NewMockIDGenerator(), f.cache)

	return f
}

func TestLedgerUseCase_CreateAccount(t *testing.T) {
	f := newLedgerFixture()

	account, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		UserID:      "user-1",
		Name:        "Checking",
		Institution: "First National",
		Type:        "checking",
	})
	require.NoError(t, err)
	require.NotEmpty(t, account.ID)

	stored, err := f.accountRepo.GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, "Checking", stored.Name)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestLedgerUseCase_ImportTransactions(t *testing.T) {
	f := newLedgerFixture()
	f.accountRepo.Seed(&domain.Account{ID: "acc-a", UserID: "user-1", Name: "Checking"})

	imported, err := f.uc.ImportTransactions(context.Background(), usecase.ImportTransactionsInput{
		UserID: "user-1",
		Transactions: []usecase.TransactionInput{
			{AccountID: "acc-a", Amount: decimal.NewFromInt(-500), Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Description: "Transfer out"},
			{AccountID: "acc-a", Amount: decimal.NewFromFloat(12.50), Date: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), Description: "Coffee"},
		},
	})
	require.NoError(t, err)
	require.Len(t, imported, 2)

	for _, txn := range imported {
		stored := f.txnRepo.Get(txn.ID)
		require.NotNil(t, stored)
		assert.Equal(t, "user-1", stored.UserID)
		assert.Equal(t, domain.StatusUnresolved, stored.TransferStatus())
	}

	require.NotNil(t, f.txManager.LastTx)
	assert.True(t, f.txManager.LastTx.Committed)
}

func TestLedgerUseCase_ImportRejectsInvalidTransactions(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.TransactionInput
		wantErr error
	}{
		{
			"zero amount",
			usecase.TransactionInput{AccountID: "acc-a", Amount: decimal.Zero, Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
			domain.ErrZeroAmount,
		},
		{
			"missing date",
			usecase.TransactionInput{AccountID: "acc-a", Amount: decimal.NewFromInt(10)},
			domain.ErrInvalidDate,
		},
		{
			"unknown account",
			usecase.TransactionInput{AccountID: "acc-missing", Amount: decimal.NewFromInt(10), Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
			domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture()
			f.accountRepo.Seed(&domain.Account{ID: "acc-a", UserID: "user-1"})

			_, err := f.uc.ImportTransactions(context.Background(), usecase.ImportTransactionsInput{
				UserID: "user-1",
				Transactions: []usecase.TransactionInput{
					{AccountID: "acc-a", Amount: decimal.NewFromInt(-1), Date: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)},
					tt.input,
				},
			})
			assert.ErrorIs(t, err, tt.wantErr)

			// Validation failures abort before the database transaction starts.
			assert.Nil(t, f.txManager.LastTx)
		})
	}
}

func TestLedgerUseCase_ImportWriteFailureRollsBack(t *testing.T) {
	f := newLedgerFixture()
	f.accountRepo.Seed(&domain.Account{ID: "acc-a", UserID: "user-1"})

	writes := 0
	f.txnRepo.CreateFunc = func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
		writes++
		if writes == 2 {
			return assert.AnError
		}

		return nil
	}

	_, err := f.uc.ImportTransactions(context.Background(), usecase.ImportTransactionsInput{
		UserID: "user-1",
		Transactions: []usecase.TransactionInput{
			{AccountID: "acc-a", Amount: decimal.NewFromInt(-500), Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
			{AccountID: "acc-a", Amount: decimal.NewFromInt(-42), Date: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)},
		},
	})
	require.ErrorIs(t, err, assert.AnError)

	require.NotNil(t, f.txManager.LastTx)
	assert.True(t, f.txManager.LastTx.RolledBack)
	assert.False(t, f.txManager.LastTx.Committed)
}

func TestLedgerUseCase_ImportInvalidatesSuggestionCache(t *testing.T) {
	f := newLedgerFixture()
	f.accountRepo.Seed(&domain.Account{ID: "acc-a", UserID: "user-1"})
	require.NoError(t, f.cache.Set(context.Background(), "suggestions:user-1", []byte(`{}`), time.Minute))

	_, err := f.uc.ImportTransactions(context.Background(), usecase.ImportTransactionsInput{
		UserID: "user-1",
		Transactions: []usecase.TransactionInput{
			{AccountID: "acc-a", Amount: decimal.NewFromInt(-500), Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		},
	})
	require.NoError(t, err)

	assert.False(t, f.cache.Has("suggestions:user-1"))
}

func TestLedgerUseCase_ImportRefreshesSuggestions(t *testing.T) {
	f := newLedgerFixture()
	f.accountRepo.Seed(
		&domain.Account{ID: "acc-a", UserID: "user-1", Name: "Checking"},
		&domain.Account{ID: "acc-b", UserID: "user-1", Name: "Savings"},
	)

	suggestionUC := usecase.NewSuggestionUseCase(f.txnRepo, f.accountRepo, f.cache, matcher.DefaultConfig())

	before, err := suggestionUC.GenerateSuggestions(context.Background(), usecase.GenerateSuggestionsInput{UserID: "user-1"})
	require.NoError(t, err)
	require.Empty(t, before.Accepted)
	require.True(t, f.cache.Has("suggestions:user-1"))

	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	_, err = f.uc.ImportTransactions(context.Background(), usecase.ImportTransactionsInput{
		UserID: "user-1",
		Transactions: []usecase.TransactionInput{
			{AccountID: "acc-a", Amount: decimal.NewFromInt(-500), Date: date, Description: "Transfer to savings"},
			{AccountID: "acc-b", Amount: decimal.NewFromInt(500), Date: date, Description: "Transfer from checking"},
		},
	})
	require.NoError(t, err)

	after, err := suggestionUC.GenerateSuggestions(context.Background(), usecase.GenerateSuggestionsInput{UserID: "user-1"})
	require.NoError(t, err)
	require.Len(t, after.Accepted, 1)
	assert.Equal(t, domain.MatchExact, after.Accepted[0].MatchType)
}

func TestLedgerUseCase_ListTransactionsHonorsRange(t *testing.T) {
	f := newLedgerFixture()
	f.txnRepo.Seed(
		ledgerTxn("t-1", "acc-a", -10, "2024-01-05"),
		ledgerTxn("t-2", "acc-a", -20, "2024-02-05"),
	)

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	listed, err := f.uc.ListTransactions(context.Background(), usecase.ListTransactionsInput{
		UserID: "user-1",
		From:   &from,
	})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "t-2", listed[0].ID)
}
