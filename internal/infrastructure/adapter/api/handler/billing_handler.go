package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nmehta6/wallet-ledger/internal/domain/entity"
	domainerr "github.com/nmehta6/wallet-ledger/internal/domain/error"
	coreport "github.com/nmehta6/wallet-ledger/internal/domain/port/core"
	"github.com/nmehta6/wallet-ledger/internal/domain/usecase/funding"
	userUseCase "github.com/nmehta6/wallet-ledger/internal/domain/usecase/user"
	"github.com/nmehta6/wallet-ledger/internal/infrastructure/adapter/api/dto"
)

// webhookSignatureHeader carries the gateway's webhook HMAC
const webhookSignatureHeader = "X-Razorpay-Signature"

// BillingHandler handles funding-related HTTP requests
type BillingHandler struct {
	fundingService *funding.Service
	userService    *userUseCase.UserUseCase
	logger         coreport.Logger
}

// NewBillingHandler creates a new billing handler instance
func NewBillingHandler(
	fundingService *funding.Service,
	userService *userUseCase.UserUseCase,
	logger coreport.Logger,
) *BillingHandler {
	return &BillingHandler{
		fundingService: fundingService,
		userService:    userService,
		logger:         logger,
	}
}

// CreateOrder handles the POST /billing/order endpoint
func (h *BillingHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	result, err := h.fundingService.CreateOrder(c.Request.Context(), req.Email, req.Amount, req.Currency)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.CreateOrderResponse{
		OrderID:  result.OrderID,
		Amount:   entity.FormatAmount(result.Amount),
		Currency: result.Currency.String(),
		KeyID:    result.KeyID,
	})
}

// VerifyPayment handles the POST /billing/verify endpoint
func (h *BillingHandler) VerifyPayment(c *gin.Context) {
	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	result, err := h.fundingService.VerifyClientPayment(
		c.Request.Context(),
		req.RazorpayOrderID,
		req.RazorpayPaymentID,
		req.RazorpaySignature,
	)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyPaymentResponse{
		Success:        true,
		OrderID:        result.OrderID,
		PaymentID:      result.PaymentID,
		Amount:         entity.FormatAmount(result.Amount),
		AlreadySettled: result.AlreadySettled,
	})
}

// Webhook handles the POST /billing/webhook endpoint. The body must be read
// raw: the signature covers the exact bytes the gateway sent.
func (h *BillingHandler) Webhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Failed to read request body",
		})
		return
	}

	signature := c.GetHeader(webhookSignatureHeader)
	if signature == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidSignature),
			Message: "Missing signature header",
		})
		return
	}

	if _, err := h.fundingService.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.WebhookResponse{Status: "ok"})
}

// GetTransactions handles the GET /billing/transactions endpoint
func (h *BillingHandler) GetTransactions(c *gin.Context) {
	email := c.Query("email")
	txns, err := h.userService.GetTransactions(c.Request.Context(), email)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	responses := make([]dto.TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		responses = append(responses, toTransactionResponse(txn))
	}
	c.JSON(http.StatusOK, responses)
}

// toTransactionResponse maps a transaction entity to its API representation
func toTransactionResponse(txn *entity.Transaction) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		OrderID:     txn.OrderID,
		Amount:      entity.FormatAmount(txn.Amount),
		Currency:    txn.Currency.String(),
		Status:      string(txn.Status),
		Type:        string(txn.Type),
		ProductName: txn.ProductName,
		PaymentID:   txn.PaymentID,
		CreatedAt:   txn.CreatedAt.Format(time.RFC3339),
	}
	if txn.ProcessedAt != nil {
		resp.ProcessedAt = txn.ProcessedAt.Format(time.RFC3339)
	}
	return resp
}
