package funding

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nmehta6/wallet-ledger/internal/domain/entity"
	errs "github.com/nmehta6/wallet-ledger/internal/domain/error"
	coreport "github.com/nmehta6/wallet-ledger/internal/domain/port/core"
	gatewayport "github.com/nmehta6/wallet-ledger/internal/domain/port/gateway"
	"github.com/nmehta6/wallet-ledger/internal/domain/port/persistence"
)

// Service orchestrates the funding workflow: order creation against the
// external gateway, and the two settlement paths (client verification and
// webhook ingestion) that converge on one idempotent credit.
type Service struct {
	uow          persistence.UnitOfWork
	userRepo     persistence.UserRepository
	txnRepo      persistence.TransactionRepository
	gateway      gatewayport.PaymentGateway
	verifier     *Verifier
	keyID        string
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a funding service. keyID is the public gateway key
// echoed to clients so they can open the checkout UI.
func NewService(
	uow persistence.UnitOfWork,
	userRepo persistence.UserRepository,
	txnRepo persistence.TransactionRepository,
	gateway gatewayport.PaymentGateway,
	verifier *Verifier,
	keyID string,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		userRepo:     userRepo,
		txnRepo:      txnRepo,
		gateway:      gateway,
		verifier:     verifier,
		keyID:        keyID,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// CreateOrderResult is returned to the client so it can start the checkout.
type CreateOrderResult struct {
	OrderID  string
	Amount   decimal.Decimal
	Currency entity.Currency
	KeyID    string
}

// CreateOrder mints an order with the gateway and records the PENDING ledger
// entry. The external order is created first so a gateway failure never
// leaves an orphaned PENDING row; the PENDING row is persisted before the
// order id is returned so a racing webhook always finds it.
func (s *Service) CreateOrder(ctx context.Context, email, amount, currency string) (*CreateOrderResult, error) {
	amt, err := entity.ParseAmount(amount)
	if err != nil {
		return nil, err
	}

	cur, err := entity.ParseCurrency(currency)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	receipt := "receipt_" + uuid.NewString()
	order, err := s.gateway.CreateOrder(ctx, gatewayport.CreateOrderInput{
		AmountSubunits: entity.ToSubunits(amt),
		Currency:       cur,
		Receipt:        receipt,
		Notes: map[string]string{
			"email":  user.Email,
			"userId": user.ID,
		},
	})
	if err != nil {
		s.logger.Error("Gateway order creation failed", map[string]any{
			"email": user.Email,
			"error": err.Error(),
		})
		return nil, err
	}

	// Never trust a gateway echo that disagrees with the request.
	if order.AmountSubunits != entity.ToSubunits(amt) || order.Currency != cur.String() {
		s.logger.Error("Gateway order echo mismatch", map[string]any{
			"order_id":           order.ID,
			"requested_subunits": entity.ToSubunits(amt),
			"echoed_subunits":    order.AmountSubunits,
			"requested_currency": cur.String(),
			"echoed_currency":    order.Currency,
		})
		return nil, errs.ErrGatewayAmountMismatch
	}

	txn, err := entity.NewPendingTransaction(order.ID, user.ID, amt, cur, s.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	s.logger.Info("Funding order created", map[string]any{
		"order_id": order.ID,
		"user_id":  user.ID,
		"amount":   entity.FormatAmount(amt),
		"currency": cur.String(),
	})

	return &CreateOrderResult{
		OrderID:  order.ID,
		Amount:   amt,
		Currency: cur,
		KeyID:    s.keyID,
	}, nil
}

// SettlementResult reports the outcome of a settlement attempt.
type SettlementResult struct {
	OrderID        string
	PaymentID      string
	Amount         decimal.Decimal
	AlreadySettled bool
	PrimaryBalance decimal.Decimal
}

// VerifyClientPayment handles the synchronous client callback path. A
// signature mismatch marks the order's transaction FAILED and rejects the
// request without touching any balance.
func (s *Service) VerifyClientPayment(ctx context.Context, orderID, paymentID, signature string) (*SettlementResult, error) {
	if orderID == "" || paymentID == "" || signature == "" {
		return nil, fmt.Errorf("%w: payment details missing", errs.ErrInvalidRequest)
	}

	if !s.verifier.VerifyPayment(orderID, paymentID, signature) {
		s.logger.Warn("Client payment signature mismatch", map[string]any{
			"order_id":   orderID,
			"payment_id": paymentID,
		})
		// The order id is known on this path, so the pending attempt is
		// closed out. Best effort: the rejection stands even if this fails.
		if err := s.txnRepo.MarkFailed(ctx, orderID); err != nil {
			s.logger.Error("Failed to mark transaction failed after signature mismatch", map[string]any{
				"order_id": orderID,
				"error":    err.Error(),
			})
		}
		return nil, errs.ErrInvalidSignature
	}

	return s.settle(ctx, orderID, paymentID, signature)
}

// WebhookResult reports how a webhook delivery was handled. Acknowledged is
// true for every authenticated delivery, including unknown orders and
// unrecognized events.
type WebhookResult struct {
	Event      string
	OrderID    string
	Settled    bool
	Recognized bool
}

// webhookEvent mirrors the gateway's webhook payload shape.
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				OrderID string `json:"order_id"`
				ID      string `json:"id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleWebhook handles the asynchronous gateway push path. The signature is
// verified over the raw payload bytes before anything is parsed or mutated.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	if !s.verifier.VerifyWebhook(payload, signature) {
		s.logger.Warn("Webhook signature mismatch", nil)
		return nil, errs.ErrInvalidSignature
	}

	event, err := parseWebhookEvent(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed webhook payload", errs.ErrInvalidRequest)
	}

	result := &WebhookResult{Event: event.Event, OrderID: event.Payload.Payment.Entity.OrderID}

	switch event.Event {
	case "payment.captured":
		result.Recognized = true
		paymentID := event.Payload.Payment.Entity.ID
		settlement, err := s.settle(ctx, result.OrderID, paymentID, signature)
		if err != nil {
			if errs.IsNotFoundError(err) {
				// An order the gateway knows but we don't is an inconsistency
				// to alert on: the PENDING row is written before the order id
				// ever reaches a client. Acknowledge so the gateway stops
				// retrying a delivery that can never settle.
				s.logger.Error("Webhook for unknown order", map[string]any{
					"order_id":   result.OrderID,
					"payment_id": paymentID,
				})
				return result, nil
			}
			return nil, err
		}
		result.Settled = !settlement.AlreadySettled

	case "payment.failed":
		result.Recognized = true
		if err := s.txnRepo.MarkFailed(ctx, result.OrderID); err != nil {
			return nil, err
		}
		s.logger.Info("Transaction marked failed from webhook", map[string]any{
			"order_id": result.OrderID,
		})

	default:
		s.logger.Info("Ignoring unrecognized webhook event", map[string]any{
			"event": event.Event,
		})
	}

	return result, nil
}

// settle performs the idempotent credit-and-mark-SUCCESS step shared by both
// delivery paths. The status flip and the wallet credit run in one database
// transaction; the PENDING -> SUCCESS compare-and-set is the exclusive gate,
// so however many callers race, exactly one performs the credit.
func (s *Service) settle(ctx context.Context, orderID, paymentID, signature string) (*SettlementResult, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	txns := s.uow.GetTransactionRepository(txCtx)
	users := s.uow.GetUserRepository(txCtx)

	txn, err := txns.GetByOrderID(txCtx, orderID)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	won, err := txns.MarkSettled(txCtx, orderID, paymentID, signature)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, errs.NewSettlementError(orderID, paymentID, "status transition failed", err)
	}

	if !won {
		// Another caller reached the terminal state first. Re-read to decide
		// between an idempotent success and a genuinely failed order.
		_ = s.uow.Rollback(txCtx)

		current, err := s.txnRepo.GetByOrderID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if current.Status == entity.StatusSuccess {
			s.logger.Info("Settlement already applied, no-op", map[string]any{
				"order_id":   orderID,
				"payment_id": current.PaymentID,
			})
			return &SettlementResult{
				OrderID:        orderID,
				PaymentID:      current.PaymentID,
				Amount:         current.Amount,
				AlreadySettled: true,
			}, nil
		}
		return nil, errs.NewSettlementError(orderID, paymentID, "transaction is failed", errs.ErrTransactionFinal)
	}

	user, err := users.Credit(txCtx, txn.UserID, entity.WalletPrimary, txn.Amount)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, errs.NewSettlementError(orderID, paymentID, "wallet credit failed", err)
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, errs.NewSettlementError(orderID, paymentID, "commit failed", err)
	}

	s.logger.Info("Wallet credited", map[string]any{
		"order_id":   orderID,
		"payment_id": paymentID,
		"user_id":    txn.UserID,
		"amount":     entity.FormatAmount(txn.Amount),
		"balance":    entity.FormatAmount(user.Balance(entity.WalletPrimary)),
	})

	return &SettlementResult{
		OrderID:        orderID,
		PaymentID:      paymentID,
		Amount:         txn.Amount,
		PrimaryBalance: user.Balance(entity.WalletPrimary),
	}, nil
}
