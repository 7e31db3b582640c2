package dto

// CreateOrderRequest represents the API request to start a wallet top-up
type CreateOrderRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Amount   string `json:"amount" binding:"required"`
	Currency string `json:"currency"`
}

// CreateOrderResponse carries everything the client needs to open checkout
type CreateOrderResponse struct {
	OrderID  string `json:"orderId"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"keyId"`
}

// VerifyPaymentRequest mirrors the gateway checkout callback fields
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// VerifyPaymentResponse reports the settlement outcome of a verified payment
type VerifyPaymentResponse struct {
	Success        bool   `json:"success"`
	OrderID        string `json:"orderId"`
	PaymentID      string `json:"paymentId"`
	Amount         string `json:"amount"`
	AlreadySettled bool   `json:"alreadySettled"`
}

// WebhookResponse acknowledges a webhook delivery
type WebhookResponse struct {
	Status string `json:"status"`
}

// TransactionResponse represents one funding transaction in history listings
type TransactionResponse struct {
	OrderID     string `json:"orderId"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	Type        string `json:"type"`
	ProductName string `json:"productName"`
	PaymentID   string `json:"paymentId,omitempty"`
	CreatedAt   string `json:"createdAt"`
	ProcessedAt string `json:"processedAt,omitempty"`
}
