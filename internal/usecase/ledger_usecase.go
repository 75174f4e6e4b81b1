package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/transfermatch/internal/domain"
)

// LedgerUseCase handles ledger ingestion and read access: accounts and the
// transactions reconciliation runs over. Pairing state is never written
// here; that is DecisionUseCase's job.
type LedgerUseCase struct {
	txManager       TransactionManager
	transactionRepo TransactionRepository
	accountRepo     AccountRepository
	idGen           IDGenerator
	cache           Cache
}

// NewLedgerUseCase creates a new LedgerUseCase. cache may be nil to disable
// suggestion-cache invalidation.
func NewLedgerUseCase(
	txManager TransactionManager,
	transactionRepo TransactionRepository,
	accountRepo AccountRepository,
	idGen IDGenerator,
	cache Cache,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:       txManager,
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		idGen:           idGen,
		cache:           cache,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	UserID      string
	Name        string
	Institution string
	Type        string
}

// CreateAccount creates a new account.
func (uc *LedgerUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	now := time.Now().UTC()

	account := &domain.Account{
		ID:          uc.idGen.Generate(),
		UserID:      input.UserID,
		Name:        input.Name,
		Institution: input.Institution,
		Type:        input.Type,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// ListAccounts lists a user's accounts.
func (uc *LedgerUseCase) ListAccounts(ctx context.Context, userID string) ([]*domain.Account, error) {
	return uc.accountRepo.ListByUser(ctx, userID)
}

// TransactionInput represents one imported ledger transaction.
type TransactionInput struct {
	AccountID   string
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	Category    *string
}

// ImportTransactionsInput represents input for importing transactions.
type ImportTransactionsInput struct {
	UserID       string
	Transactions []TransactionInput
}

// ImportTransactions validates and stores a batch of ledger transactions.
// Each imported transaction starts Unresolved. Validation failures abort the
// import before any row is written, and the writes themselves happen in one
// database transaction, so a storage failure never leaves a partial batch.
func (uc *LedgerUseCase) ImportTransactions(ctx context.Context, input ImportTransactionsInput) ([]*domain.Transaction, error) {
	now := time.Now().UTC()

	transactions := make([]*domain.Transaction, 0, len(input.Transactions))

	for _, item := range input.Transactions {
		txn := &domain.Transaction{
			ID:          uc.idGen.Generate(),
			UserID:      input.UserID,
			AccountID:   item.AccountID,
			Amount:      item.Amount,
			Date:        item.Date,
			Description: item.Description,
			Category:    item.Category,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := txn.Validate(); err != nil {
			return nil, err
		}

		if _, err := uc.accountRepo.GetByID(ctx, txn.AccountID); err != nil {
			return nil, err
		}

		transactions = append(transactions, txn)
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	for _, txn := range transactions {
		if err := uc.transactionRepo.Create(ctx, tx, txn); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	// New rows change what reconciliation would produce, so any cached
	// suggestion set for this user is stale now.
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, suggestionCacheKey(input.UserID))
	}

	return transactions, nil
}

// ListTransactionsInput represents input for listing transactions.
type ListTransactionsInput struct {
	From   *time.Time
	To     *time.Time
	UserID string
}

// ListTransactions lists a user's transactions, optionally date-bounded.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	return uc.transactionRepo.ListByUser(ctx, input.UserID, input.From, input.To)
}
