package gateway

import (
	"context"

	"github.com/stretchr/testify/mock"

	domaingateway "github.com/nmehta6/wallet-ledger/internal/domain/port/gateway"
)

// MockPaymentGateway is a mock implementation of the gateway.PaymentGateway port
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, input domaingateway.CreateOrderInput) (*domaingateway.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domaingateway.Order), args.Error(1)
}
