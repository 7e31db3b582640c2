package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nmehta6/wallet-ledger/internal/domain/entity"
	domainerr "github.com/nmehta6/wallet-ledger/internal/domain/error"
	coreport "github.com/nmehta6/wallet-ledger/internal/domain/port/core"
	userUseCase "github.com/nmehta6/wallet-ledger/internal/domain/usecase/user"
	"github.com/nmehta6/wallet-ledger/internal/infrastructure/adapter/api/dto"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService *userUseCase.UserUseCase
	logger      coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(userService *userUseCase.UserUseCase, logger coreport.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// CreateUser handles the POST /billing/user endpoint
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req.Email, req.Currency)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// GetUser handles the GET /billing/user endpoint
func (h *UserHandler) GetUser(c *gin.Context) {
	email := c.Query("email")
	user, err := h.userService.GetUser(c.Request.Context(), email)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// toUserResponse maps a user entity to its API representation. Balances are
// keyed by the wallet wire names.
func toUserResponse(user *entity.User) dto.UserResponse {
	balances := make(map[string]string, len(entity.Wallets()))
	for wallet, amount := range user.Balances() {
		balances[wallet.String()] = entity.FormatAmount(amount)
	}

	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Currency:  user.Currency.String(),
		Balances:  balances,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}
