package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	domainpersistence "github.com/nmehta6/wallet-ledger/internal/domain/port/persistence"
)

// MockUnitOfWork is a mock implementation of the persistence.UnitOfWork port
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) GetUserRepository(ctx context.Context) domainpersistence.UserRepository {
	args := m.Called(ctx)
	return args.Get(0).(domainpersistence.UserRepository)
}

func (m *MockUnitOfWork) GetTransactionRepository(ctx context.Context) domainpersistence.TransactionRepository {
	args := m.Called(ctx)
	return args.Get(0).(domainpersistence.TransactionRepository)
}

// PassthroughUnitOfWork binds fixed repositories and treats Begin/Commit/
// Rollback as no-ops. It lets workflow tests exercise the settlement path
// without a database.
type PassthroughUnitOfWork struct {
	Users        domainpersistence.UserRepository
	Transactions domainpersistence.TransactionRepository
}

func (u *PassthroughUnitOfWork) Begin(ctx context.Context) (context.Context, error) { return ctx, nil }
func (u *PassthroughUnitOfWork) Commit(ctx context.Context) error                   { return nil }
func (u *PassthroughUnitOfWork) Rollback(ctx context.Context) error                 { return nil }

func (u *PassthroughUnitOfWork) GetUserRepository(ctx context.Context) domainpersistence.UserRepository {
	return u.Users
}

func (u *PassthroughUnitOfWork) GetTransactionRepository(ctx context.Context) domainpersistence.TransactionRepository {
	return u.Transactions
}
