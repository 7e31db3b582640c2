package persistence

import (
	"context"

	"github.com/nmehta6/wallet-ledger/internal/domain/entity"
)

// TransactionRepository defines essential methods to interact with funding
// transaction data
type TransactionRepository interface {
	// Create saves a new PENDING transaction recorded at order-creation time
	//
	// Possible errors:
	// - ErrDuplicateOrder: If a transaction for the same order id already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// GetByOrderID retrieves a transaction by its gateway order id
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction exists for the order id
	// - ErrDatabaseConnection: If database connection fails
	GetByOrderID(ctx context.Context, orderID string) (*entity.Transaction, error)

	// ListByUser returns all transactions for a user, newest first
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	ListByUser(ctx context.Context, userID string) ([]*entity.Transaction, error)

	// MarkSettled performs the atomic PENDING -> SUCCESS compare-and-set that
	// gates settlement. It returns true when this caller won the transition;
	// false means the transaction was already terminal (or absent) and the
	// caller must not credit.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	MarkSettled(ctx context.Context, orderID, paymentID, signature string) (bool, error)

	// MarkFailed transitions all PENDING transactions for the order id to
	// FAILED. Idempotent: terminal rows are untouched and an unknown order id
	// is a no-op.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	MarkFailed(ctx context.Context, orderID string) error
}
