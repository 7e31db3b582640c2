package user

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nmehta6/wallet-ledger/internal/domain/entity"
	errs "github.com/nmehta6/wallet-ledger/internal/domain/error"
	mockcore "github.com/nmehta6/wallet-ledger/mocks/port/core"
	mockpersistence "github.com/nmehta6/wallet-ledger/mocks/port/persistence"
)

var testClock = mockcore.FixedTimeProvider{Time: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}

func newUseCase(userRepo *mockpersistence.MockUserRepository, txnRepo *mockpersistence.MockTransactionRepository) *UserUseCase {
	return NewUserUseCase(userRepo, txnRepo, testClock, mockcore.NoopLogger{})
}

func TestUserUseCase_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("should create user with zero balances", func(t *testing.T) {
		userRepo := &mockpersistence.MockUserRepository{}
		userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
		uc := newUseCase(userRepo, &mockpersistence.MockTransactionRepository{})

		user, err := uc.CreateUser(ctx, "Alice@Example.com", "INR")

		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, entity.CurrencyINR, user.Currency)
		for _, wallet := range entity.Wallets() {
			assert.True(t, user.Balance(wallet).IsZero(), "wallet %s", wallet)
		}
		userRepo.AssertExpectations(t)
	})

	t.Run("should fall back to default currency on unknown currency", func(t *testing.T) {
		userRepo := &mockpersistence.MockUserRepository{}
		userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
		uc := newUseCase(userRepo, &mockpersistence.MockTransactionRepository{})

		user, err := uc.CreateUser(ctx, "alice@example.com", "XYZ")

		require.NoError(t, err)
		assert.Equal(t, entity.DefaultCurrency, user.Currency)
	})

	t.Run("should reject malformed email without store access", func(t *testing.T) {
		userRepo := &mockpersistence.MockUserRepository{}
		uc := newUseCase(userRepo, &mockpersistence.MockTransactionRepository{})

		_, err := uc.CreateUser(ctx, "not-an-email", "INR")

		assert.ErrorIs(t, err, errs.ErrInvalidEmail)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should surface duplicate email", func(t *testing.T) {
		userRepo := &mockpersistence.MockUserRepository{}
		userRepo.On("Create", ctx, mock.Anything).Return(errs.ErrDuplicateUser)
		uc := newUseCase(userRepo, &mockpersistence.MockTransactionRepository{})

		_, err := uc.CreateUser(ctx, "alice@example.com", "INR")

		assert.ErrorIs(t, err, errs.ErrDuplicateUser)
	})
}

func TestUserUseCase_GetUser(t *testing.T) {
	ctx := context.Background()

	t.Run("should return user by email", func(t *testing.T) {
		existing, err := entity.NewUser("user-1", "alice@example.com", entity.CurrencyINR, testClock)
		require.NoError(t, err)
		userRepo := &mockpersistence.MockUserRepository{}
		userRepo.On("GetByEmail", ctx, "alice@example.com").Return(existing, nil)
		uc := newUseCase(userRepo, &mockpersistence.MockTransactionRepository{})

		user, err := uc.GetUser(ctx, "alice@example.com")

		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
	})

	t.Run("should reject empty email", func(t *testing.T) {
		uc := newUseCase(&mockpersistence.MockUserRepository{}, &mockpersistence.MockTransactionRepository{})

		_, err := uc.GetUser(ctx, "")

		assert.ErrorIs(t, err, errs.ErrInvalidEmail)
	})

	t.Run("should surface unknown user", func(t *testing.T) {
		userRepo := &mockpersistence.MockUserRepository{}
		userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, errs.ErrUserNotFound)
		uc := newUseCase(userRepo, &mockpersistence.MockTransactionRepository{})

		_, err := uc.GetUser(ctx, "nobody@example.com")

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}

func TestUserUseCase_GetTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("should list the user's transactions", func(t *testing.T) {
		existing, err := entity.NewUser("user-1", "alice@example.com", entity.CurrencyINR, testClock)
		require.NoError(t, err)
		txn, err := entity.NewPendingTransaction("order_abc", "user-1", decimal.RequireFromString("500"), entity.CurrencyINR, testClock)
		require.NoError(t, err)

		userRepo := &mockpersistence.MockUserRepository{}
		userRepo.On("GetByEmail", ctx, "alice@example.com").Return(existing, nil)
		txnRepo := &mockpersistence.MockTransactionRepository{}
		txnRepo.On("ListByUser", ctx, "user-1").Return([]*entity.Transaction{txn}, nil)
		uc := newUseCase(userRepo, txnRepo)

		txns, err := uc.GetTransactions(ctx, "alice@example.com")

		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, "order_abc", txns[0].OrderID)
	})

	t.Run("should surface unknown user without listing", func(t *testing.T) {
		userRepo := &mockpersistence.MockUserRepository{}
		userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, errs.ErrUserNotFound)
		txnRepo := &mockpersistence.MockTransactionRepository{}
		uc := newUseCase(userRepo, txnRepo)

		_, err := uc.GetTransactions(ctx, "nobody@example.com")

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		txnRepo.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
	})
}
