package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/transfermatch/internal/domain"
	"github.com/iho/transfermatch/internal/matcher"
	"github.com/iho/transfermatch/internal/usecase"
	"github.com/iho/transfermatch/internal/usecase/gomocks"
	"github.com/iho/transfermatch/internal/usecase/mocks"
)

func ledgerTxn(id, accountID string, amount int64, day string) *domain.Transaction {
	date, _ := time.Parse("2006-01-02", day)

	return &domain.Transaction{
		ID:        id,
		UserID:    "user-1",
		AccountID: accountID,
		Amount:    decimal.NewFromInt(amount),
		Date:      date,
	}
}

func newSuggestionFixture() (*mocks.MockTransactionRepository, *mocks.MockAccountRepository) {
	txnRepo := mocks.NewMockTransactionRepository()
	txnRepo.Seed(
		ledgerTxn("out-1", "acc-a", -500, "2024-01-10"),
		ledgerTxn("in-1", "acc-b", 500, "2024-01-10"),
		ledgerTxn("out-2", "acc-a", -42, "2024-01-03"),
	)

	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.Seed(
		&domain.Account{ID: "acc-a", UserID: "user-1", Name: "Checking"},
		&domain.Account{ID: "acc-b", UserID: "user-1", Name: "Savings"},
	)

	return txnRepo, accountRepo
}

func TestSuggestionUseCase_GenerateSuggestions(t *testing.T) {
	txnRepo, accountRepo := newSuggestionFixture()

	uc := usecase.NewSuggestionUseCase(txnRepo, accountRepo, nil, matcher.DefaultConfig())

	set, err := uc.GenerateSuggestions(context.Background(), usecase.GenerateSuggestionsInput{UserID: "user-1"})
	require.NoError(t, err)

	require.Len(t, set.Accepted, 1)
	assert.Empty(t, set.Rejected)
	assert.Equal(t, "out-1", set.Accepted[0].Outgoing.ID)
	assert.Equal(t, "in-1", set.Accepted[0].Incoming.ID)
	assert.Equal(t, domain.MatchExact, set.Accepted[0].MatchType)
	assert.Equal(t, "Checking", set.Accepted[0].OutgoingAccount.Name)
}

func TestSuggestionUseCase_IdempotentOverUnchangedLedger(t *testing.T) {
	txnRepo, accountRepo := newSuggestionFixture()

	uc := usecase.NewSuggestionUseCase(txnRepo, accountRepo, nil, matcher.DefaultConfig())

	first, err := uc.GenerateSuggestions(context.Background(), usecase.GenerateSuggestionsInput{UserID: "user-1"})
	require.NoError(t, err)

	second, err := uc.GenerateSuggestions(context.Background(), usecase.GenerateSuggestionsInput{UserID: "user-1"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSuggestionUseCase_CachesUnscopedRuns(t *testing.T) {
	txnRepo, accountRepo := newSuggestionFixture()
	cache := mocks.NewMockCache()

	ledger := []*domain.Transaction{
		ledgerTxn("out-1", "acc-a", -500, "2024-01-10"),
		ledgerTxn("in-1", "acc-b", 500, "2024-01-10"),
	}

	listCalls := 0
	txnRepo.ListByUserFunc = func(ctx context.Context, userID string, from, to *time.Time) ([]*domain.Transaction, error) {
		listCalls++
		return ledger, nil
	}

	uc := usecase.NewSuggestionUseCase(txnRepo, accountRepo, cache, matcher.DefaultConfig())

	first, err := uc.GenerateSuggestions(context.Background(), usecase.GenerateSuggestionsInput{UserID: "user-1"})
	require.NoError(t, err)
	require.True(t, cache.Has("suggestions:user-1"))

	second, err := uc.GenerateSuggestions(context.Background(), usecase.GenerateSuggestionsInput{UserID: "user-1"})
	require.NoError(t, err)

	assert.Equal(t, 1, listCalls, "second run should be served from cache")
	assert.Equal(t, len(first.Accepted), len(second.Accepted))
}

func TestSuggestionUseCase_DateRangeBypassesCache(t *testing.T) {
	txnRepo, accountRepo := newSuggestionFixture()
	cache := mocks.NewMockCache()

	uc := usecase.NewSuggestionUseCase(txnRepo, accountRepo, cache, matcher.DefaultConfig())

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.GenerateSuggestions(context.Background(), usecase.GenerateSuggestionsInput{
		UserID: "user-1",
		From:   &from,
	})
	require.NoError(t, err)

	assert.False(t, cache.Has("suggestions:user-1"))
}

func TestSuggestionUseCase_RepositoryErrorsPropagate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txnRepo := gomocks.NewMockTransactionRepository(ctrl)
	accountRepo := gomocks.NewMockAccountRepository(ctrl)

	txnRepo.EXPECT().
		ListByUser(gomock.Any(), "user-1", gomock.Nil(), gomock.Nil()).
		Return(nil, context.DeadlineExceeded)

	uc := usecase.NewSuggestionUseCase(txnRepo, accountRepo, nil, matcher.DefaultConfig())

	_, err := uc.GenerateSuggestions(context.Background(), usecase.GenerateSuggestionsInput{UserID: "user-1"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
