package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/transfermatch/internal/domain"
	"github.com/iho/transfermatch/internal/usecase"
)

const transactionColumns = `id, user_id, account_id, amount, date, description, category, transfer_pair_id, created_at, updated_at`

// TransactionRepository implements usecase.TransactionRepository over the
// ledger's transactions table.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a new ledger transaction inside the caller's transaction,
// so a failed batch import leaves no rows behind.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO transactions (id, user_id, account_id, amount, date, description, category, transfer_pair_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := pgxTx.Exec(ctx, query,
		txn.ID,
		txn.UserID,
		txn.AccountID,
		decimalToNumeric(txn.Amount),
		txn.Date,
		txn.Description,
		txn.Category,
		txn.TransferPairID,
		txn.CreatedAt,
		txn.UpdatedAt,
	)

	return err
}

// ListByUser retrieves a user's transactions, optionally bounded by date.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, from, to *time.Time) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date, id
	`

	rows, err := r.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1
	`

	return scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves a transaction by ID with a FOR UPDATE lock.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1
		FOR UPDATE
	`

	return scanTransaction(pgxTx.QueryRow(ctx, query, id))
}

// ListByTransferPair retrieves every transaction stamped with the given
// transfer-pair identifier, inside the caller's transaction.
func (r *TransactionRepository) ListByTransferPair(ctx context.Context, tx usecase.Transaction, pairID string) ([]*domain.Transaction, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transfer_pair_id = $1
		ORDER BY id
		FOR UPDATE
	`

	rows, err := pgxTx.Query(ctx, query, pairID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// SetTransferPair stamps (or clears, when pairID is nil) the transfer-pair
// identifier on a transaction.
func (r *TransactionRepository) SetTransferPair(ctx context.Context, tx usecase.Transaction, id string, pairID *string, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE transactions
		SET transfer_pair_id = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query, id, pairID, updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn    domain.Transaction
		amount pgtype.Numeric
	)

	err := row.Scan(
		&txn.ID,
		&txn.UserID,
		&txn.AccountID,
		&amount,
		&txn.Date,
		&txn.Description,
		&txn.Category,
		&txn.TransferPairID,
		&txn.CreatedAt,
		&txn.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}

	if err != nil {
		return nil, err
	}

	txn.Amount = numericToDecimal(amount)

	return &txn, nil
}

func scanTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var transactions []*domain.Transaction

	for rows.Next() {
		var (
			txn    domain.Transaction
			amount pgtype.Numeric
		)

		err := rows.Scan(
			&txn.ID,
			&txn.UserID,
			&txn.AccountID,
			&amount,
			&txn.Date,
			&txn.Description,
			&txn.Category,
			&txn.TransferPairID,
			&txn.CreatedAt,
			&txn.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		txn.Amount = numericToDecimal(amount)
		transactions = append(transactions, &txn)
	}

	return transactions, rows.Err()
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}
