package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nmehta6/wallet-ledger/internal/domain/entity"
)

// MockTransactionRepository is a mock implementation of the
// persistence.TransactionRepository port
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByOrderID(ctx context.Context, orderID string) (*entity.Transaction, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) MarkSettled(ctx context.Context, orderID, paymentID, signature string) (bool, error) {
	args := m.Called(ctx, orderID, paymentID, signature)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) MarkFailed(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}
