package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmehta6/wallet-ledger/internal/domain/entity"
	errs "github.com/nmehta6/wallet-ledger/internal/domain/error"
	gatewayport "github.com/nmehta6/wallet-ledger/internal/domain/port/gateway"
	mockcore "github.com/nmehta6/wallet-ledger/mocks/port/core"
)

func newTestClient(serverURL string) *RazorpayClient {
	return NewRazorpayClient(Config{
		BaseURL:   serverURL,
		KeyID:     "rzp_test_key",
		KeySecret: "secret",
		Timeout:   2 * time.Second,
	}, mockcore.NoopLogger{})
}

func TestRazorpayClient_CreateOrder(t *testing.T) {
	ctx := context.Background()

	input := gatewayport.CreateOrderInput{
		AmountSubunits: 50000,
		Currency:       entity.CurrencyINR,
		Receipt:        "receipt_1",
		Notes:          map[string]string{"email": "alice@example.com"},
	}

	t.Run("should post order with basic auth and parse response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/orders", r.URL.Path)

			username, password, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "rzp_test_key", username)
			assert.Equal(t, "secret", password)

			var req createOrderRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, int64(50000), req.Amount)
			assert.Equal(t, "INR", req.Currency)
			assert.Equal(t, "receipt_1", req.Receipt)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"order_abc","amount":50000,"currency":"INR","status":"created"}`))
		}))
		defer server.Close()

		order, err := newTestClient(server.URL).CreateOrder(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, "order_abc", order.ID)
		assert.Equal(t, int64(50000), order.AmountSubunits)
		assert.Equal(t, "INR", order.Currency)
	})

	t.Run("should map error envelope on rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount is invalid"}}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).CreateOrder(ctx, input)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrGatewayUnavailable)
		assert.Contains(t, err.Error(), "amount is invalid")
	})

	t.Run("should fail on response missing order id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"amount":50000,"currency":"INR"}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).CreateOrder(ctx, input)

		assert.ErrorIs(t, err, errs.ErrGatewayUnavailable)
	})

	t.Run("should fail when the gateway is unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		_, err := newTestClient(server.URL).CreateOrder(ctx, input)

		assert.ErrorIs(t, err, errs.ErrGatewayUnavailable)
	})
}

func TestStaticGateway_CreateOrder(t *testing.T) {
	order, err := NewStaticGateway().CreateOrder(context.Background(), gatewayport.CreateOrderInput{
		AmountSubunits: 50000,
		Currency:       entity.CurrencyINR,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Contains(t, order.ID, "order_")
	assert.Equal(t, int64(50000), order.AmountSubunits)
	assert.Equal(t, "INR", order.Currency)
}
