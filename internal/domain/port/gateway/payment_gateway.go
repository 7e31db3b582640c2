package gateway

import (
	"context"

	"github.com/nmehta6/wallet-ledger/internal/domain/entity"
)

// CreateOrderInput carries the parameters for minting an order with the
// external payment gateway. Amounts are expressed in the smallest currency
// unit, as the gateway requires.
type CreateOrderInput struct {
	AmountSubunits int64
	Currency       entity.Currency
	Receipt        string
	Notes          map[string]string
}

// Order is the gateway's echo of a created order. The funding workflow
// cross-checks it against the request before persisting anything.
type Order struct {
	ID             string
	AmountSubunits int64
	Currency       string
}

// PaymentGateway is the port to the external payment provider's order API.
type PaymentGateway interface {
	// CreateOrder mints a new order with the gateway
	//
	// Possible errors:
	// - ErrGatewayUnavailable: If the gateway cannot be reached or errors
	CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error)
}
