package funding

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Verifier authenticates payment confirmations and webhook deliveries coming
// from the payment gateway. Both paths use hex-encoded HMAC-SHA256 over a
// canonical message, but with different secrets: the client verification
// path signs "orderId|paymentId" with the API key secret, while webhooks are
// signed over the raw payload bytes with a distinct webhook secret.
type Verifier struct {
	keySecret     []byte
	webhookSecret []byte
}

// NewVerifier creates a Verifier with the gateway's API key secret and
// webhook secret.
func NewVerifier(keySecret, webhookSecret string) *Verifier {
	return &Verifier{
		keySecret:     []byte(keySecret),
		webhookSecret: []byte(webhookSecret),
	}
}

// VerifyPayment checks the signature delivered by the client checkout
// callback. The canonical message is orderID + "|" + paymentID.
func (v *Verifier) VerifyPayment(orderID, paymentID, signature string) bool {
	message := []byte(orderID + "|" + paymentID)
	return verify(v.keySecret, message, signature)
}

// VerifyWebhook checks the signature header of a webhook delivery against
// the raw payload bytes exactly as received. Re-serializing the payload can
// reorder keys and break the hash, so callers must pass the original body.
func (v *Verifier) VerifyWebhook(payload []byte, signature string) bool {
	return verify(v.webhookSecret, payload, signature)
}

// verify computes the expected hex digest and compares in constant time.
func verify(secret, message []byte, signature string) bool {
	if len(signature) == 0 {
		return false
	}
	mac := hmac.New(sha256.New, secret)
	mac.Write(message)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
