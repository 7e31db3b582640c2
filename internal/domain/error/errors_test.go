package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestBaseErrorTypes(t *testing.T) {
	// Test to ensure all base error types are defined properly
	if ErrInsufficientBalance.Error() != "insufficient balance in source wallet" {
		t.Errorf("ErrInsufficientBalance has unexpected message: %s", ErrInsufficientBalance.Error())
	}
	if ErrInvalidAmount.Error() != "invalid amount" {
		t.Errorf("ErrInvalidAmount has unexpected message: %s", ErrInvalidAmount.Error())
	}
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InsufficientBalance", ErrInsufficientBalance, 4001},
		{"InvalidAmount", ErrInvalidAmount, 4002},
		{"InvalidWallet", ErrInvalidWallet, 4003},
		{"InvalidCurrency", ErrInvalidCurrency, 4004},
		{"InvalidEmail", ErrInvalidEmail, 4005},
		{"DuplicateOrder", ErrDuplicateOrder, 4006},
		{"InvalidSignature", ErrInvalidSignature, 4010},
		{"UserNotFound", ErrUserNotFound, 4040},
		{"TransactionNotFound", ErrTransactionNotFound, 4041},
		{"TransactionFinal", ErrTransactionFinal, 4090},
		{"UserLocked", ErrUserLocked, 4230},
		{"GatewayUnavailable", ErrGatewayUnavailable, 5020},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInvalidWallet), 4003},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestInsufficientBalanceError(t *testing.T) {
	err := NewInsufficientBalanceError("user-1", "meta_ad_balance", "300.00", "150.00")
	if err == nil {
		t.Fatal("NewInsufficientBalanceError returned nil")
	}

	// Test Error method
	expectedErrMsg := "insufficient balance in wallet meta_ad_balance for user user-1: required 300.00, available 150.00"
	if err.Error() != expectedErrMsg {
		t.Errorf("InsufficientBalanceError.Error() = %s, want %s", err.Error(), expectedErrMsg)
	}

	// Test Is method through errors.Is
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Errorf("errors.Is(err, ErrInsufficientBalance) = false, want true")
	}

	// Test through helper function
	if !IsInsufficientBalanceError(err) {
		t.Errorf("IsInsufficientBalanceError(err) = false, want true")
	}

	// Code must resolve through the typed error as well
	if ErrorCode(err) != CodeInsufficientBalance {
		t.Errorf("ErrorCode(err) = %d, want %d", ErrorCode(err), CodeInsufficientBalance)
	}
}

func TestSettlementError(t *testing.T) {
	baseErr := ErrInvalidSignature
	settleErr := &SettlementError{
		OrderID:   "order_abc",
		PaymentID: "pay_xyz",
		Reason:    "signature verification failed",
		Err:       baseErr,
	}

	// Test Error method
	expectedErrMsg := "settlement failed for order order_abc (payment: pay_xyz): signature verification failed - invalid signature"
	if settleErr.Error() != expectedErrMsg {
		t.Errorf("SettlementError.Error() = %s, want %s", settleErr.Error(), expectedErrMsg)
	}

	// Test Unwrap method
	if !errors.Is(settleErr, baseErr) {
		t.Errorf("errors.Is(settleErr, baseErr) = false, want true")
	}

	fields := settleErr.LogFields()
	if fields["order_id"] != "order_abc" {
		t.Errorf("LogFields order_id = %v, want order_abc", fields["order_id"])
	}
	if fields["error_code"] != CodeInvalidSignature {
		t.Errorf("LogFields error_code = %v, want %d", fields["error_code"], CodeInvalidSignature)
	}
}

func TestGatewayError(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewGatewayError("create_order", 0, inner)

	if !errors.Is(err, ErrGatewayUnavailable) {
		t.Errorf("errors.Is(err, ErrGatewayUnavailable) = false, want true")
	}
	if !errors.Is(err, inner) {
		t.Errorf("errors.Is(err, inner) = false, want true")
	}

	expectedErrMsg := "gateway create_order failed (status 0): connection refused"
	if err.Error() != expectedErrMsg {
		t.Errorf("GatewayError.Error() = %s, want %s", err.Error(), expectedErrMsg)
	}
}

func TestErrorFamilies(t *testing.T) {
	if !IsValidationError(fmt.Errorf("bad input: %w", ErrInvalidCurrency)) {
		t.Error("wrapped currency error should be a validation error")
	}
	if !IsNotFoundError(ErrTransactionNotFound) {
		t.Error("ErrTransactionNotFound should be a not found error")
	}
	if !IsAuthenticationError(ErrInvalidSignature) {
		t.Error("ErrInvalidSignature should be an authentication error")
	}
	if IsDuplicateOrderError(ErrDuplicateUser) {
		t.Error("ErrDuplicateUser should not be a duplicate order error")
	}
	if !IsUserLockedError(fmt.Errorf("op: %w", ErrUserLocked)) {
		t.Error("wrapped ErrUserLocked should be a user locked error")
	}
}
