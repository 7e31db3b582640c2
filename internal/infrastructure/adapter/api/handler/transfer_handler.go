package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/nmehta6/wallet-ledger/internal/domain/error"
	coreport "github.com/nmehta6/wallet-ledger/internal/domain/port/core"
	"github.com/nmehta6/wallet-ledger/internal/domain/usecase/transfer"
	"github.com/nmehta6/wallet-ledger/internal/infrastructure/adapter/api/dto"
)

// TransferHandler handles sub-wallet transfer HTTP requests
type TransferHandler struct {
	transferService *transfer.Service
	logger          coreport.Logger
}

// NewTransferHandler creates a new transfer handler instance
func NewTransferHandler(transferService *transfer.Service, logger coreport.Logger) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
		logger:          logger,
	}
}

// Transfer handles the POST /transfer endpoint. The response carries the
// user's full balance map so the client sees both affected wallets at once.
func (h *TransferHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	user, err := h.transferService.Transfer(c.Request.Context(), req.Email, req.FromWallet, req.ToWallet, req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}
