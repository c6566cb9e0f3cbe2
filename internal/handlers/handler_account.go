package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/money_transfer_service/internal/core/ports/services"
	"github.com/SscSPs/money_transfer_service/internal/dto"
	"github.com/SscSPs/money_transfer_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles account lifecycle and read requests.
type accountHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(ls portssvc.LedgerSvcFacade) *accountHandler {
	return &accountHandler{
		ledgerService: ls,
	}
}

// registerAccountRoutes registers routes related to accounts and the money movements on them.
func registerAccountRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newAccountHandler(ledgerService)
	lh := newLedgerHandler(ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.DELETE("/:accountNumber", h.deleteAccount)
		accounts.GET("/:accountNumber/balance", h.getBalance)
		accounts.GET("/:accountNumber/history", h.getHistory)

		accounts.POST("/deposit", lh.deposit)
		accounts.POST("/withdraw", lh.withdraw)
		accounts.POST("/transfer", lh.transfer)
	}
}

// createAccount godoc
// @Summary Open a new account
// @Description Opens an account under a freshly generated account number. A positive initial balance is recorded as a deposit.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.CreateAccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or negative initial balance"
// @Failure 500 {object} dto.ErrorResponse "Failed to create account"
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	logger.Info("Received request to create account", slog.String("owner_name", req.OwnerName))

	account, err := h.ledgerService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCreateAccountResponse(account))
}

// deleteAccount godoc
// @Summary Close an account
// @Description Soft deletes an account. The balance must be exactly zero.
// @Tags accounts
// @Accept  json
// @Param   accountNumber path string true "Account number" example(110-123-456789)
// @Param   credential body dto.DeleteAccountRequest true "Account password"
// @Success 204 "Account deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid input, wrong password or non-zero balance"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 503 {object} dto.ErrorResponse "Account busy, retry later"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete account"
// @Router /accounts/{accountNumber} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	var uri dto.AccountNumberURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBindError(c, err)
		return
	}
	var req dto.DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	req.AccountNumber = uri.AccountNumber

	if err := h.ledgerService.DeleteAccount(c.Request.Context(), req); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// getBalance godoc
// @Summary Get an account balance
// @Tags accounts
// @Produce  json
// @Param   accountNumber path string true "Account number" example(110-123-456789)
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed account number"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to read balance"
// @Router /accounts/{accountNumber}/balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	var uri dto.AccountNumberURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBindError(c, err)
		return
	}

	snapshot, err := h.ledgerService.GetAccountBalance(c.Request.Context(), uri.AccountNumber)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(snapshot))
}

// getHistory godoc
// @Summary List an account's transactions
// @Description Returns every ledger row of the account, newest first, with the counterparty of transfers.
// @Tags accounts
// @Produce  json
// @Param   accountNumber path string true "Account number" example(110-123-456789)
// @Success 200 {object} dto.HistoryResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed account number"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to read history"
// @Router /accounts/{accountNumber}/history [get]
func (h *accountHandler) getHistory(c *gin.Context) {
	var uri dto.AccountNumberURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBindError(c, err)
		return
	}

	history, err := h.ledgerService.GetHistory(c.Request.Context(), uri.AccountNumber)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHistoryResponse(history))
}
