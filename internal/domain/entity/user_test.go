package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/nmehta6/wallet-ledger/internal/domain/error"
	mockcore "github.com/nmehta6/wallet-ledger/mocks/port/core"
)

var fixedTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestUser(t *testing.T) *User {
	t.Helper()
	user, err := NewUser("user-1", "a@x.com", CurrencyINR, mockcore.FixedTimeProvider{Time: fixedTime})
	require.NoError(t, err)
	return user
}

func TestNewUser(t *testing.T) {
	tp := mockcore.FixedTimeProvider{Time: fixedTime}

	t.Run("should create user with zero balances", func(t *testing.T) {
		user, err := NewUser("user-1", "a@x.com", CurrencyINR, tp)

		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, "a@x.com", user.Email)
		assert.Equal(t, CurrencyINR, user.Currency)
		assert.Equal(t, fixedTime, user.CreatedAt)
		for _, w := range Wallets() {
			assert.True(t, user.Balance(w).IsZero(), "wallet %s should start at zero", w)
		}
	})

	t.Run("should normalize email", func(t *testing.T) {
		user, err := NewUser("user-1", "  A@X.Com ", CurrencyINR, tp)

		require.NoError(t, err)
		assert.Equal(t, "a@x.com", user.Email)
	})

	t.Run("should reject malformed email", func(t *testing.T) {
		_, err := NewUser("user-1", "not-an-email", CurrencyINR, tp)
		assert.ErrorIs(t, err, errs.ErrInvalidEmail)

		_, err = NewUser("user-1", "", CurrencyINR, tp)
		assert.ErrorIs(t, err, errs.ErrInvalidEmail)
	})
}

func TestUser_Credit(t *testing.T) {
	tp := mockcore.FixedTimeProvider{Time: fixedTime}

	t.Run("should add to wallet balance", func(t *testing.T) {
		user := newTestUser(t)

		err := user.Credit(WalletPrimary, decimal.RequireFromString("500"), tp)

		require.NoError(t, err)
		assert.Equal(t, "500.00", FormatAmount(user.Balance(WalletPrimary)))
	})

	t.Run("should reject non-positive amount", func(t *testing.T) {
		user := newTestUser(t)

		err := user.Credit(WalletPrimary, decimal.Zero, tp)

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		assert.True(t, user.Balance(WalletPrimary).IsZero())
	})

	t.Run("should reject invalid wallet", func(t *testing.T) {
		user := newTestUser(t)

		err := user.Credit(Wallet("savings"), decimal.RequireFromString("10"), tp)

		assert.ErrorIs(t, err, errs.ErrInvalidWallet)
	})
}

func TestUser_Transfer(t *testing.T) {
	tp := mockcore.FixedTimeProvider{Time: fixedTime}

	t.Run("should conserve value across wallets", func(t *testing.T) {
		user := newTestUser(t)
		user.SetBalance(WalletPrimary, decimal.RequireFromString("100"))
		before := user.Balance(WalletPrimary).Add(user.Balance(WalletAIAvatar))

		err := user.Transfer(WalletPrimary, WalletAIAvatar, decimal.RequireFromString("40"), tp)

		require.NoError(t, err)
		assert.Equal(t, "60.00", FormatAmount(user.Balance(WalletPrimary)))
		assert.Equal(t, "40.00", FormatAmount(user.Balance(WalletAIAvatar)))
		after := user.Balance(WalletPrimary).Add(user.Balance(WalletAIAvatar))
		assert.True(t, before.Equal(after))
	})

	t.Run("should fail with insufficient balance and change nothing", func(t *testing.T) {
		user := newTestUser(t)
		user.SetBalance(WalletPrimary, decimal.RequireFromString("100"))

		err := user.Transfer(WalletPrimary, WalletAIAvatar, decimal.RequireFromString("150"), tp)

		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		assert.Equal(t, "100.00", FormatAmount(user.Balance(WalletPrimary)))
		assert.True(t, user.Balance(WalletAIAvatar).IsZero())
	})

	t.Run("should permit self transfer as no-op", func(t *testing.T) {
		user := newTestUser(t)
		user.SetBalance(WalletPrimary, decimal.RequireFromString("100"))

		err := user.Transfer(WalletPrimary, WalletPrimary, decimal.RequireFromString("40"), tp)

		require.NoError(t, err)
		assert.Equal(t, "100.00", FormatAmount(user.Balance(WalletPrimary)))
	})

	t.Run("should still require funds for self transfer", func(t *testing.T) {
		user := newTestUser(t)
		user.SetBalance(WalletPrimary, decimal.RequireFromString("10"))

		err := user.Transfer(WalletPrimary, WalletPrimary, decimal.RequireFromString("40"), tp)

		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
	})

	t.Run("should reject unknown wallets", func(t *testing.T) {
		user := newTestUser(t)

		err := user.Transfer(Wallet("savings"), WalletPrimary, decimal.RequireFromString("10"), tp)

		assert.ErrorIs(t, err, errs.ErrInvalidWallet)
	})
}

func TestUser_Balances(t *testing.T) {
	user := newTestUser(t)
	user.SetBalance(WalletPrimary, decimal.RequireFromString("75"))

	balances := user.Balances()
	balances[WalletPrimary] = decimal.Zero

	// The copy must not alias internal state.
	assert.Equal(t, "75.00", FormatAmount(user.Balance(WalletPrimary)))
}
