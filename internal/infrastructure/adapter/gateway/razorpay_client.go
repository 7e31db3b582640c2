package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	errs "github.com/nmehta6/wallet-ledger/internal/domain/error"
	coreport "github.com/nmehta6/wallet-ledger/internal/domain/port/core"
	gatewayport "github.com/nmehta6/wallet-ledger/internal/domain/port/gateway"
)

const defaultBaseURL = "https://api.razorpay.com"

// RazorpayClient implements the PaymentGateway port against the Razorpay
// Orders API using HTTP basic auth with the key id and secret.
type RazorpayClient struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
	logger     coreport.Logger
}

// Config holds gateway client settings
type Config struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Timeout   time.Duration
}

// NewRazorpayClient creates a Razorpay-backed payment gateway client
func NewRazorpayClient(cfg Config, logger coreport.Logger) *RazorpayClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &RazorpayClient{
		baseURL:   baseURL,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// createOrderRequest is the wire format of the Orders API request
type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// createOrderResponse is the subset of the Orders API response we consume
type createOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// gatewayErrorResponse is the error envelope the Orders API returns
type gatewayErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder mints an order with the gateway. Amounts are sent in the
// currency's smallest unit.
func (c *RazorpayClient) CreateOrder(ctx context.Context, input gatewayport.CreateOrderInput) (*gatewayport.Order, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   input.AmountSubunits,
		Currency: input.Currency.String(),
		Receipt:  input.Receipt,
		Notes:    input.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal order request: %s", errs.ErrInternalServer, err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build order request: %s", errs.ErrInternalServer, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Gateway request failed", map[string]any{
			"operation": "create_order",
			"error":     err.Error(),
		})
		return nil, errs.NewGatewayError("create_order", 0, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errs.NewGatewayError("create_order", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		var gwErr gatewayErrorResponse
		description := "unexpected gateway response"
		if json.Unmarshal(respBody, &gwErr) == nil && gwErr.Error.Description != "" {
			description = gwErr.Error.Description
		}
		c.logger.Error("Gateway rejected order creation", map[string]any{
			"status":      resp.StatusCode,
			"description": description,
		})
		return nil, errs.NewGatewayError("create_order", resp.StatusCode, fmt.Errorf("%s", description))
	}

	var orderResp createOrderResponse
	if err := json.Unmarshal(respBody, &orderResp); err != nil {
		return nil, errs.NewGatewayError("create_order", resp.StatusCode, fmt.Errorf("malformed response: %s", err.Error()))
	}
	if orderResp.ID == "" {
		return nil, errs.NewGatewayError("create_order", resp.StatusCode, fmt.Errorf("response missing order id"))
	}

	c.logger.Debug("Gateway order created", map[string]any{
		"order_id": orderResp.ID,
		"amount":   orderResp.Amount,
		"currency": orderResp.Currency,
	})

	return &gatewayport.Order{
		ID:             orderResp.ID,
		AmountSubunits: orderResp.Amount,
		Currency:       orderResp.Currency,
	}, nil
}
