package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/nmehta6/wallet-ledger/internal/domain/error"
	coreport "github.com/nmehta6/wallet-ledger/internal/domain/port/core"
)

// User represents an account holder with a fixed set of sub-wallet balances.
// Balances are kept private so every mutation goes through the credit and
// transfer methods, which enforce the non-negative invariant.
type User struct {
	ID        string   // Unique identifier (UUID)
	Email     string   // Unique email used as the external lookup key
	Currency  Currency // Preferred currency for funding orders
	balances  map[Wallet]decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a new user with zero balances across all sub-wallets.
func NewUser(id, email string, currency Currency, timeProvider coreport.TimeProvider) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errs.ErrInvalidEmail
	}

	balances := make(map[Wallet]decimal.Decimal, len(allWallets))
	for w := range allWallets {
		balances[w] = decimal.Zero
	}

	now := timeProvider.Now()
	return &User{
		ID:        id,
		Email:     email,
		Currency:  currency,
		balances:  balances,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Balance returns the current balance of the given sub-wallet.
func (u *User) Balance(w Wallet) decimal.Decimal {
	return u.balances[w]
}

// Balances returns a copy of all sub-wallet balances.
func (u *User) Balances() map[Wallet]decimal.Decimal {
	out := make(map[Wallet]decimal.Decimal, len(u.balances))
	for w, b := range u.balances {
		out[w] = b
	}
	return out
}

// SetBalance overwrites a sub-wallet balance directly. For repository use
// when hydrating an entity from storage.
func (u *User) SetBalance(w Wallet, amount decimal.Decimal) {
	if u.balances == nil {
		u.balances = make(map[Wallet]decimal.Decimal, len(allWallets))
	}
	u.balances[w] = amount
}

// Credit adds the amount to the given sub-wallet. Amounts must be positive.
func (u *User) Credit(w Wallet, amount decimal.Decimal, timeProvider coreport.TimeProvider) error {
	if !w.IsValid() {
		return errs.ErrInvalidWallet
	}
	if !amount.IsPositive() {
		return errs.ErrInvalidAmount
	}

	u.balances[w] = u.balances[w].Add(amount)
	u.UpdatedAt = timeProvider.Now()
	return nil
}

// Transfer moves amount from one sub-wallet to another. The source must
// cover the full amount; otherwise no balance changes. A transfer onto the
// same wallet is a permitted no-op once the funds check passes.
func (u *User) Transfer(from, to Wallet, amount decimal.Decimal, timeProvider coreport.TimeProvider) error {
	if !from.IsValid() || !to.IsValid() {
		return errs.ErrInvalidWallet
	}
	if !amount.IsPositive() {
		return errs.ErrInvalidAmount
	}

	available := u.balances[from]
	if available.LessThan(amount) {
		return errs.NewInsufficientBalanceError(u.ID, from.String(), FormatAmount(amount), FormatAmount(available))
	}

	if from != to {
		u.balances[from] = available.Sub(amount)
		u.balances[to] = u.balances[to].Add(amount)
	}
	u.UpdatedAt = timeProvider.Now()
	return nil
}
