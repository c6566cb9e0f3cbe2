package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/SscSPs/money_transfer_service/internal/dto"
	"github.com/SscSPs/money_transfer_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	codeInvalidInput   = "INVALID_INPUT_VALUE"
	codeServiceBusy    = "SERVICE_BUSY"
	codeInternalError  = "INTERNAL_SERVER_ERROR"
	lockRetryAfterSecs = "1"
)

// respondBindError reports a request that failed binding or validation.
func respondBindError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Warn("Rejected invalid request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    codeInvalidInput,
		Message: "request validation failed",
		Fields:  dto.ToFieldErrors(err),
	})
}

// respondServiceError maps an error returned by the ledger service to an HTTP response.
func respondServiceError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if bizErr, ok := apperrors.AsBusinessError(err); ok {
		status := http.StatusBadRequest
		if bizErr.Code == apperrors.CodeAccountNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, dto.ErrorResponse{Code: string(bizErr.Code), Message: bizErr.Message})
		return
	}

	if errors.Is(err, apperrors.ErrLockTimeout) {
		logger.Warn("Account lock not granted in time", slog.String("error", err.Error()))
		c.Header("Retry-After", lockRetryAfterSecs)
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Code:    codeServiceBusy,
			Message: "account is busy, please retry",
		})
		return
	}

	logger.Error("Unhandled service error", slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Code:    codeInternalError,
		Message: "an unexpected error occurred",
	})
}
