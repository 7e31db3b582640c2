package entity

import (
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/nmehta6/wallet-ledger/internal/domain/error"
	coreport "github.com/nmehta6/wallet-ledger/internal/domain/port/core"
)

// TransactionStatus defines lifecycle states of a funding transaction.
// Success and Failed are terminal.
type TransactionStatus string

// TransactionStatus constants
const (
	StatusPending TransactionStatus = "PENDING"
	StatusSuccess TransactionStatus = "SUCCESS"
	StatusFailed  TransactionStatus = "FAILED"
)

// TransactionType defines the direction of a transaction
type TransactionType string

// TransactionType constants. The funding workflow only produces credits.
const (
	TypeCredit TransactionType = "CREDIT"
)

// Reason identifies why a transaction was created
type Reason string

// Reason constants
const (
	ReasonTopUp Reason = "TOPUP"
)

// defaultProductName labels wallet top-up transactions
const defaultProductName = "Wallet Top-Up"

// Transaction represents one funding attempt against the external payment
// gateway. Its identifier equals the gateway order id, which makes the order
// id the idempotency key for settlement.
type Transaction struct {
	ID          string // Equals the gateway order id
	UserID      string
	Amount      decimal.Decimal
	Currency    Currency
	Status      TransactionStatus
	Type        TransactionType
	Reason      Reason
	ProductName string
	OrderID     string // External gateway order id
	PaymentID   string // External gateway payment id, set at settlement
	Signature   string // Signature that authorized the settlement
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ProcessedAt *time.Time // When the transaction reached a terminal state
}

// NewPendingTransaction creates the PENDING ledger entry recorded at
// order-creation time.
func NewPendingTransaction(
	orderID string,
	userID string,
	amount decimal.Decimal,
	currency Currency,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if orderID == "" {
		return nil, errs.ErrInvalidRequest
	}
	if userID == "" {
		return nil, errs.ErrUserNotFound
	}
	if !amount.IsPositive() {
		return nil, errs.ErrInvalidAmount
	}

	now := timeProvider.Now()
	return &Transaction{
		ID:          orderID,
		UserID:      userID,
		Amount:      amount,
		Currency:    currency,
		Status:      StatusPending,
		Type:        TypeCredit,
		Reason:      ReasonTopUp,
		ProductName: defaultProductName,
		OrderID:     orderID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsFinal reports whether the transaction reached a terminal state.
func (t *Transaction) IsFinal() bool {
	return t.Status == StatusSuccess || t.Status == StatusFailed
}

// MarkSettled transitions the transaction to SUCCESS, recording the payment
// id and the signature that authorized it. Terminal states are immutable.
func (t *Transaction) MarkSettled(paymentID, signature string, timeProvider coreport.TimeProvider) error {
	if t.IsFinal() {
		return errs.ErrTransactionFinal
	}

	now := timeProvider.Now()
	t.Status = StatusSuccess
	t.PaymentID = paymentID
	t.Signature = signature
	t.UpdatedAt = now
	t.ProcessedAt = &now
	return nil
}

// MarkFailed transitions the transaction to FAILED. Marking an already
// failed transaction is a no-op; a settled transaction cannot fail.
func (t *Transaction) MarkFailed(timeProvider coreport.TimeProvider) error {
	if t.Status == StatusFailed {
		return nil
	}
	if t.Status == StatusSuccess {
		return errs.ErrTransactionFinal
	}

	now := timeProvider.Now()
	t.Status = StatusFailed
	t.UpdatedAt = now
	t.ProcessedAt = &now
	return nil
}
