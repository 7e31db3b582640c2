package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/nmehta6/wallet-ledger/internal/domain/entity"
	errs "github.com/nmehta6/wallet-ledger/internal/domain/error"
	coreport "github.com/nmehta6/wallet-ledger/internal/domain/port/core"
	"github.com/nmehta6/wallet-ledger/internal/domain/port/persistence"
)

// UserUseCase handles user registration and lookups
type UserUseCase struct {
	userRepo     persistence.UserRepository
	txnRepo      persistence.TransactionRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(
	userRepo persistence.UserRepository,
	txnRepo persistence.TransactionRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		txnRepo:      txnRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// CreateUser registers a new user with zero balances. An invalid or missing
// currency falls back to the default rather than failing registration.
func (u *UserUseCase) CreateUser(ctx context.Context, email, currency string) (*entity.User, error) {
	cur, err := entity.ParseCurrency(currency)
	if err != nil {
		cur = entity.DefaultCurrency
	}

	user, err := entity.NewUser(uuid.NewString(), email, cur, u.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	u.logger.Info("User created", map[string]any{
		"user_id":  user.ID,
		"email":    user.Email,
		"currency": user.Currency.String(),
	})

	return user, nil
}

// GetUser returns the user identified by email.
func (u *UserUseCase) GetUser(ctx context.Context, email string) (*entity.User, error) {
	if email == "" {
		return nil, errs.ErrInvalidEmail
	}
	return u.userRepo.GetByEmail(ctx, email)
}

// GetTransactions returns the user's funding transactions, newest first.
func (u *UserUseCase) GetTransactions(ctx context.Context, email string) ([]*entity.Transaction, error) {
	user, err := u.GetUser(ctx, email)
	if err != nil {
		return nil, err
	}
	return u.txnRepo.ListByUser(ctx, user.ID)
}
