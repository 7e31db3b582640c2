package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/nmehta6/wallet-ledger/internal/domain/error"
	coreport "github.com/nmehta6/wallet-ledger/internal/domain/port/core"
	"github.com/nmehta6/wallet-ledger/internal/infrastructure/adapter/api/dto"
)

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrDuplicateUser),
		errors.Is(err, domainerr.ErrDuplicateOrder),
		errors.Is(err, domainerr.ErrTransactionFinal):
		return http.StatusConflict
	case domainerr.IsValidationError(err),
		errors.Is(err, domainerr.ErrInsufficientBalance),
		errors.Is(err, domainerr.ErrInvalidSignature),
		errors.Is(err, domainerr.ErrInvalidEmail):
		return http.StatusBadRequest
	case errors.Is(err, domainerr.ErrUserLocked):
		return http.StatusLocked
	case errors.Is(err, domainerr.ErrGatewayAmountMismatch),
		errors.Is(err, domainerr.ErrGatewayUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the standard error envelope for a domain error.
// Server-side failures are logged with any structured fields the error
// carries; client errors only produce the response.
func respondError(c *gin.Context, logger coreport.Logger, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"

		fields := map[string]any{
			"path":  c.Request.URL.Path,
			"error": err.Error(),
		}
		var loggable interface{ LogFields() map[string]any }
		if errors.As(err, &loggable) {
			for k, v := range loggable.LogFields() {
				fields[k] = v
			}
		}
		logger.Error("Request failed", fields)
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}
