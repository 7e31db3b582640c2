package persistence

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nmehta6/wallet-ledger/internal/domain/entity"
)

// UserRepository defines essential methods to interact with user data
type UserRepository interface {
	// GetByID retrieves a user by its internal id
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// GetByEmail retrieves a user by email, the external lookup key
	//
	// Possible errors:
	// - ErrUserNotFound: If no user has the given email
	// - ErrDatabaseConnection: If database connection fails
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user
	//
	// Possible errors:
	// - ErrDuplicateUser: If a user with the same email already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, user *entity.User) error

	// Credit atomically increments a sub-wallet balance and returns the
	// updated user. Used by the funding workflow at settlement time; it
	// never decrements.
	//
	// Possible errors:
	// - ErrUserNotFound: If the user doesn't exist
	// - ErrUserLocked: If the user row is locked by a concurrent operation
	// - ErrDatabaseConnection: If database connection fails
	Credit(ctx context.Context, userID string, wallet entity.Wallet, amount decimal.Decimal) (*entity.User, error)

	// Transfer atomically moves amount between two sub-wallets of the same
	// user: decrement from, increment to, both-or-neither. Serialized per
	// user via a row lock.
	//
	// Possible errors:
	// - ErrUserNotFound: If the user doesn't exist
	// - ErrInsufficientBalance: If the source wallet cannot cover the amount
	// - ErrUserLocked: If the user row is locked by a concurrent operation
	// - ErrDatabaseConnection: If database connection fails
	Transfer(ctx context.Context, userID string, from, to entity.Wallet, amount decimal.Decimal) (*entity.User, error)
}
