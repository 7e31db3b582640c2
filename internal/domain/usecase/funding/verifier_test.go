package funding

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signHex(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifier_VerifyPayment(t *testing.T) {
	v := NewVerifier("key-secret", "webhook-secret")

	t.Run("should accept signature over orderId|paymentId", func(t *testing.T) {
		sig := signHex("key-secret", "order_abc|pay_123")
		assert.True(t, v.VerifyPayment("order_abc", "pay_123", sig))
	})

	t.Run("should reject signature made with wrong secret", func(t *testing.T) {
		sig := signHex("webhook-secret", "order_abc|pay_123")
		assert.False(t, v.VerifyPayment("order_abc", "pay_123", sig))
	})

	t.Run("should reject signature bound to another payment", func(t *testing.T) {
		sig := signHex("key-secret", "order_abc|pay_123")
		assert.False(t, v.VerifyPayment("order_abc", "pay_456", sig))
	})

	t.Run("should reject empty signature", func(t *testing.T) {
		assert.False(t, v.VerifyPayment("order_abc", "pay_123", ""))
	})
}

func TestVerifier_VerifyWebhook(t *testing.T) {
	v := NewVerifier("key-secret", "webhook-secret")
	payload := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"order_id":"order_abc","id":"pay_123"}}}}`)

	t.Run("should accept signature over raw payload bytes", func(t *testing.T) {
		sig := signHex("webhook-secret", string(payload))
		assert.True(t, v.VerifyWebhook(payload, sig))
	})

	t.Run("should reject tampered payload", func(t *testing.T) {
		sig := signHex("webhook-secret", string(payload))
		tampered := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"order_id":"order_xyz","id":"pay_123"}}}}`)
		assert.False(t, v.VerifyWebhook(tampered, sig))
	})

	t.Run("should reject signature made with key secret", func(t *testing.T) {
		sig := signHex("key-secret", string(payload))
		assert.False(t, v.VerifyWebhook(payload, sig))
	})

	t.Run("should reject malformed signature", func(t *testing.T) {
		assert.False(t, v.VerifyWebhook(payload, "not-a-hex-digest"))
		assert.False(t, v.VerifyWebhook(payload, ""))
	})
}
