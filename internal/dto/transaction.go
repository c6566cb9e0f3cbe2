package dto

import (
	"time"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DepositRequest defines the data needed to credit an account.
type DepositRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required,account_number" example:"110-123-456789"`
	Amount        decimal.Decimal `json:"amount" binding:"required,whole" swaggertype:"number" example:"100000"`
}

// WithdrawRequest defines the data needed to debit an account.
type WithdrawRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required,account_number" example:"110-123-456789"`
	Password      string          `json:"password" binding:"required,pin" example:"1234"`
	Amount        decimal.Decimal `json:"amount" binding:"required,whole" swaggertype:"number" example:"30000"`
}

// TransferRequest defines the data needed to move money between two accounts.
type TransferRequest struct {
	FromAccountNumber string          `json:"fromAccountNumber" binding:"required,account_number" example:"110-123-456789"`
	Password          string          `json:"password" binding:"required,pin" example:"1234"`
	ToAccountNumber   string          `json:"toAccountNumber" binding:"required,account_number" example:"110-456-789012"`
	Amount            decimal.Decimal `json:"amount" binding:"required,whole" swaggertype:"number" example:"15000"`
}

// BalanceChangeResponse is returned by deposit and withdraw.
type BalanceChangeResponse struct {
	AccountNumber string `json:"accountNumber" example:"110-123-456789"`
	FinalBalance  int64  `json:"finalBalance" example:"70000"`
}

// TransferResponse is returned by a successful transfer. The fee is not echoed.
type TransferResponse struct {
	FromAccountNumber  string `json:"fromAccountNumber" example:"110-123-456789"`
	FromAccountBalance int64  `json:"fromAccountBalance" example:"84850"`
	ToAccountNumber    string `json:"toAccountNumber" example:"110-456-789012"`
	ToAccountBalance   int64  `json:"toAccountBalance" example:"65000"`
	TransferredAmount  int64  `json:"transferredAmount" example:"15000"`
}

// TransactionDetail is a single history row.
type TransactionDetail struct {
	Type                      domain.TransactionType `json:"type" example:"TRANSFER_SEND"`
	Amount                    int64                  `json:"amount" example:"15000"`
	Fee                       int64                  `json:"fee" example:"150"`
	TransactedAt              time.Time              `json:"transactedAt"`
	CounterpartyAccountNumber string                 `json:"counterpartyAccountNumber,omitempty" example:"110-456-789012"`
	CounterpartyOwnerName     string                 `json:"counterpartyOwnerName,omitempty" example:"John Doe"`
}

// HistoryResponse lists an account's history, newest first.
type HistoryResponse struct {
	AccountNumber string              `json:"accountNumber" example:"110-123-456789"`
	Transactions  []TransactionDetail `json:"transactions"`
}

// ToBalanceChangeResponse converts a domain.BalanceSnapshot to BalanceChangeResponse DTO
func ToBalanceChangeResponse(s *domain.BalanceSnapshot) BalanceChangeResponse {
	return BalanceChangeResponse{
		AccountNumber: s.AccountNumber,
		FinalBalance:  int64(s.Balance),
	}
}

// ToTransferResponse converts a domain.TransferResult to TransferResponse DTO
func ToTransferResponse(r *domain.TransferResult) TransferResponse {
	return TransferResponse{
		FromAccountNumber:  r.From.AccountNumber,
		FromAccountBalance: int64(r.From.Balance),
		ToAccountNumber:    r.To.AccountNumber,
		ToAccountBalance:   int64(r.To.Balance),
		TransferredAmount:  int64(r.TransferredAmount),
	}
}

// ToHistoryResponse converts a domain.AccountHistory to HistoryResponse DTO
func ToHistoryResponse(h *domain.AccountHistory) HistoryResponse {
	details := make([]TransactionDetail, len(h.Entries))
	for i, e := range h.Entries {
		details[i] = TransactionDetail{
			Type:         e.Type,
			Amount:       int64(e.Amount),
			Fee:          int64(e.Fee),
			TransactedAt: e.TransactedAt,
		}
		if e.Counterparty != nil {
			details[i].CounterpartyAccountNumber = e.Counterparty.AccountNumber
			details[i].CounterpartyOwnerName = e.Counterparty.OwnerName
		}
	}
	return HistoryResponse{
		AccountNumber: h.AccountNumber,
		Transactions:  details,
	}
}
