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

func newPendingTxn(t *testing.T) *Transaction {
	t.Helper()
	tp := mockcore.FixedTimeProvider{Time: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	txn, err := NewPendingTransaction("order_abc", "user-1", decimal.RequireFromString("500"), CurrencyINR, tp)
	require.NoError(t, err)
	return txn
}

func TestNewPendingTransaction(t *testing.T) {
	tp := mockcore.FixedTimeProvider{Time: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}

	t.Run("should create pending credit keyed by order id", func(t *testing.T) {
		txn, err := NewPendingTransaction("order_abc", "user-1", decimal.RequireFromString("500"), CurrencyINR, tp)

		require.NoError(t, err)
		assert.Equal(t, "order_abc", txn.ID)
		assert.Equal(t, "order_abc", txn.OrderID)
		assert.Equal(t, StatusPending, txn.Status)
		assert.Equal(t, TypeCredit, txn.Type)
		assert.Equal(t, ReasonTopUp, txn.Reason)
		assert.False(t, txn.IsFinal())
		assert.Nil(t, txn.ProcessedAt)
	})

	t.Run("should reject empty order id", func(t *testing.T) {
		_, err := NewPendingTransaction("", "user-1", decimal.RequireFromString("500"), CurrencyINR, tp)
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})

	t.Run("should reject non-positive amount", func(t *testing.T) {
		_, err := NewPendingTransaction("order_abc", "user-1", decimal.Zero, CurrencyINR, tp)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}

func TestTransaction_MarkSettled(t *testing.T) {
	tp := mockcore.FixedTimeProvider{Time: time.Date(2024, 6, 1, 12, 5, 0, 0, time.UTC)}

	t.Run("should transition pending to success", func(t *testing.T) {
		txn := newPendingTxn(t)

		err := txn.MarkSettled("pay_123", "sig", tp)

		require.NoError(t, err)
		assert.Equal(t, StatusSuccess, txn.Status)
		assert.Equal(t, "pay_123", txn.PaymentID)
		assert.Equal(t, "sig", txn.Signature)
		assert.True(t, txn.IsFinal())
		require.NotNil(t, txn.ProcessedAt)
		assert.Equal(t, tp.Time, *txn.ProcessedAt)
	})

	t.Run("should not settle twice", func(t *testing.T) {
		txn := newPendingTxn(t)
		require.NoError(t, txn.MarkSettled("pay_123", "sig", tp))

		err := txn.MarkSettled("pay_456", "sig2", tp)

		assert.ErrorIs(t, err, errs.ErrTransactionFinal)
		assert.Equal(t, "pay_123", txn.PaymentID)
	})

	t.Run("should not settle a failed transaction", func(t *testing.T) {
		txn := newPendingTxn(t)
		require.NoError(t, txn.MarkFailed(tp))

		err := txn.MarkSettled("pay_123", "sig", tp)

		assert.ErrorIs(t, err, errs.ErrTransactionFinal)
		assert.Equal(t, StatusFailed, txn.Status)
	})
}

func TestTransaction_MarkFailed(t *testing.T) {
	tp := mockcore.FixedTimeProvider{Time: time.Date(2024, 6, 1, 12, 5, 0, 0, time.UTC)}

	t.Run("should transition pending to failed", func(t *testing.T) {
		txn := newPendingTxn(t)

		err := txn.MarkFailed(tp)

		require.NoError(t, err)
		assert.Equal(t, StatusFailed, txn.Status)
		assert.True(t, txn.IsFinal())
	})

	t.Run("should be idempotent on already failed", func(t *testing.T) {
		txn := newPendingTxn(t)
		require.NoError(t, txn.MarkFailed(tp))

		err := txn.MarkFailed(tp)

		assert.NoError(t, err)
		assert.Equal(t, StatusFailed, txn.Status)
	})

	t.Run("should not fail a settled transaction", func(t *testing.T) {
		txn := newPendingTxn(t)
		require.NoError(t, txn.MarkSettled("pay_123", "sig", tp))

		err := txn.MarkFailed(tp)

		assert.ErrorIs(t, err, errs.ErrTransactionFinal)
		assert.Equal(t, StatusSuccess, txn.Status)
	})
}
