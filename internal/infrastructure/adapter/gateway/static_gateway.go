package gateway

import (
	"context"

	"github.com/google/uuid"

	gatewayport "github.com/nmehta6/wallet-ledger/internal/domain/port/gateway"
)

// StaticGateway is an in-process PaymentGateway for local development and
// smoke tests. It mints order ids and echoes the request back, so the full
// funding flow can run without gateway credentials.
type StaticGateway struct{}

// NewStaticGateway creates a StaticGateway
func NewStaticGateway() *StaticGateway {
	return &StaticGateway{}
}

// CreateOrder returns an order that mirrors the request
func (g *StaticGateway) CreateOrder(_ context.Context, input gatewayport.CreateOrderInput) (*gatewayport.Order, error) {
	return &gatewayport.Order{
		ID:             "order_" + uuid.NewString(),
		AmountSubunits: input.AmountSubunits,
		Currency:       input.Currency.String(),
	}, nil
}
