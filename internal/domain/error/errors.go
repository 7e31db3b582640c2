package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientBalance = 4001
	CodeInvalidAmount       = 4002
	CodeInvalidWallet       = 4003
	CodeInvalidCurrency     = 4004
	CodeInvalidRequest      = 4005
	CodeDuplicateOrder      = 4006
	CodeDuplicateUser       = 4007
	CodeInvalidSignature    = 4010
	CodeUserNotFound        = 4040
	CodeTransactionNotFound = 4041
	CodeTransactionFinal    = 4090
	CodeUserLocked          = 4230

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeGatewayUnavailable = 5020
	CodeGatewayMismatch    = 5021
)

// Base error types
var (
	// ErrInsufficientBalance is returned when a source wallet cannot cover a transfer
	ErrInsufficientBalance = errors.New("insufficient balance in source wallet")

	// ErrInvalidAmount is returned when an amount is malformed or not positive
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidWallet is returned when a wallet name is outside the whitelist
	ErrInvalidWallet = errors.New("invalid wallet name")

	// ErrInvalidCurrency is returned when a currency code is not supported
	ErrInvalidCurrency = errors.New("unsupported currency")

	// ErrInvalidRequest is returned when required request fields are missing
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidEmail is returned when an email address is missing or malformed
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidSignature is returned when a payment or webhook signature does not verify
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrDuplicateOrder is returned when a transaction for an order id already exists
	ErrDuplicateOrder = errors.New("transaction for this order already exists")

	// ErrDuplicateUser is returned when trying to create a user that already exists
	ErrDuplicateUser = errors.New("user already exists")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransactionFinal is returned on an attempted transition out of a terminal state
	ErrTransactionFinal = errors.New("transaction already in terminal state")

	// ErrGatewayAmountMismatch is returned when the gateway echoes an order that
	// does not match what was requested
	ErrGatewayAmountMismatch = errors.New("gateway order does not match requested amount")

	// ErrGatewayUnavailable is returned when the payment gateway cannot be reached
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrUserLocked is returned when a user row is locked by a concurrent operation
	ErrUserLocked = errors.New("user is locked by another operation")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidWallet):
		return CodeInvalidWallet
	case errors.Is(err, ErrInvalidCurrency):
		return CodeInvalidCurrency
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrInvalidEmail):
		return CodeInvalidRequest
	case errors.Is(err, ErrDuplicateOrder):
		return CodeDuplicateOrder
	case errors.Is(err, ErrDuplicateUser):
		return CodeDuplicateUser
	case errors.Is(err, ErrInvalidSignature):
		return CodeInvalidSignature
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrTransactionFinal):
		return CodeTransactionFinal
	case errors.Is(err, ErrUserLocked):
		return CodeUserLocked
	case errors.Is(err, ErrGatewayAmountMismatch):
		return CodeGatewayMismatch
	case errors.Is(err, ErrGatewayUnavailable):
		return CodeGatewayUnavailable
	default:
		return CodeInternalServer
	}
}

// InsufficientBalanceError provides detailed error information for a transfer
// that would overdraw the source wallet
type InsufficientBalanceError struct {
	UserID    string
	Wallet    string
	Requested string
	Available string
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance in wallet %s for user %s: required %s, available %s",
		e.Wallet, e.UserID, e.Requested, e.Available)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_balance",
		"user_id":    e.UserID,
		"wallet":     e.Wallet,
		"requested":  e.Requested,
		"available":  e.Available,
		"error_code": CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(userID, wallet, requested, available string) error {
	return &InsufficientBalanceError{
		UserID:    userID,
		Wallet:    wallet,
		Requested: requested,
		Available: available,
	}
}

// SettlementError represents a failure while settling a funding transaction
type SettlementError struct {
	OrderID   string
	PaymentID string
	Reason    string
	Err       error
}

// Error implements the error interface for SettlementError
func (e *SettlementError) Error() string {
	return fmt.Sprintf("settlement failed for order %s (payment: %s): %s - %v",
		e.OrderID, e.PaymentID, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *SettlementError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *SettlementError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "settlement_error",
		"order_id":   e.OrderID,
		"payment_id": e.PaymentID,
		"reason":     e.Reason,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewSettlementError creates a detailed settlement error
func NewSettlementError(orderID, paymentID, reason string, err error) error {
	return &SettlementError{
		OrderID:   orderID,
		PaymentID: paymentID,
		Reason:    reason,
		Err:       err,
	}
}

// GatewayError represents a failure from the external payment gateway
type GatewayError struct {
	Operation  string
	StatusCode int
	Err        error
}

// NewGatewayError creates a new GatewayError. A zero status code means the
// request never reached the gateway.
func NewGatewayError(operation string, statusCode int, err error) error {
	return &GatewayError{
		Operation:  operation,
		StatusCode: statusCode,
		Err:        err,
	}
}

// Error implements the error interface for GatewayError
func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s failed (status %d): %v", e.Operation, e.StatusCode, e.Err)
}

// Unwrap returns the underlying error
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrGatewayUnavailable
func (e *GatewayError) Is(target error) bool {
	return target == ErrGatewayUnavailable
}

// LogFields returns a map of fields for structured logging
func (e *GatewayError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "gateway_error",
		"operation":   e.Operation,
		"status_code": e.StatusCode,
		"error":       e.Err.Error(),
		"error_code":  CodeGatewayUnavailable,
	}
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsAuthenticationError checks if the error is a signature verification failure
func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrInvalidSignature)
}

// IsDuplicateOrderError checks if the error is a duplicate order error
func IsDuplicateOrderError(err error) bool {
	return errors.Is(err, ErrDuplicateOrder)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// IsValidationError checks if the error belongs to the validation family
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidWallet) ||
		errors.Is(err, ErrInvalidCurrency) ||
		errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidEmail)
}

// IsUserLockedError checks if the error is related to a locked user row
func IsUserLockedError(err error) bool {
	return errors.Is(err, ErrUserLocked)
}
