package usecase

import (
	"context"
	"time"

	"github.com/iho/transfermatch/internal/domain"
)

// TransactionRepository is the external ledger accessor. Create serves
// ledger ingestion and runs inside the caller's transaction; the
// reconciliation core itself only reads snapshots and mutates via
// SetTransferPair.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	ListByUser(ctx context.Context, userID string, from, to *time.Time) ([]*domain.Transaction, error)
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Transaction, error)
	ListByTransferPair(ctx context.Context, tx Transaction, pairID string) ([]*domain.Transaction, error)
	SetTransferPair(ctx context.Context, tx Transaction, id string, pairID *string, updatedAt time.Time) error
}

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Account, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs for transfer pairs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations for suggestion sets.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Retrier retries an operation on transient storage conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}
