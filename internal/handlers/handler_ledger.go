package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/money_transfer_service/internal/core/ports/services"
	"github.com/SscSPs/money_transfer_service/internal/dto"
	"github.com/SscSPs/money_transfer_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles requests that move money.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// deposit godoc
// @Summary Deposit into an account
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   deposit body dto.DepositRequest true "Deposit details"
// @Success 200 {object} dto.BalanceChangeResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or amount"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 503 {object} dto.ErrorResponse "Account busy, retry later"
// @Failure 500 {object} dto.ErrorResponse "Failed to deposit"
// @Router /accounts/deposit [post]
func (h *ledgerHandler) deposit(c *gin.Context) {
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	snapshot, err := h.ledgerService.Deposit(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceChangeResponse(snapshot))
}

// withdraw godoc
// @Summary Withdraw from an account
// @Description Debits the account after checking its password and the rolling 24h withdraw limit.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   withdraw body dto.WithdrawRequest true "Withdraw details"
// @Success 200 {object} dto.BalanceChangeResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input, wrong password, insufficient funds or limit exceeded"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 503 {object} dto.ErrorResponse "Account busy, retry later"
// @Failure 500 {object} dto.ErrorResponse "Failed to withdraw"
// @Router /accounts/withdraw [post]
func (h *ledgerHandler) withdraw(c *gin.Context) {
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	snapshot, err := h.ledgerService.Withdraw(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceChangeResponse(snapshot))
}

// transfer godoc
// @Summary Transfer between accounts
// @Description Moves the amount to the destination and charges the fee to the sender.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input, wrong password, insufficient funds, self transfer or limit exceeded"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 503 {object} dto.ErrorResponse "Account busy, retry later"
// @Failure 500 {object} dto.ErrorResponse "Failed to transfer"
// @Router /accounts/transfer [post]
func (h *ledgerHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	logger = logger.With(slog.String("from", req.FromAccountNumber), slog.String("to", req.ToAccountNumber))
	logger.Debug("Received transfer request", slog.String("amount", req.Amount.String()))

	result, err := h.ledgerService.Transfer(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponse(result))
}
