package dto

import (
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a new account.
type CreateAccountRequest struct {
	OwnerName      string           `json:"ownerName" binding:"required" example:"Jane Doe"`
	Password       string           `json:"password" binding:"required,pin" example:"1234"`
	InitialBalance *decimal.Decimal `json:"initialBalance" binding:"omitempty,whole" swaggertype:"number" example:"50000"`
}

// CreateAccountResponse defines the data returned for a newly opened account.
type CreateAccountResponse struct {
	AccountID     int64  `json:"accountId" example:"1"`
	AccountNumber string `json:"accountNumber" example:"110-123-456789"`
	OwnerName     string `json:"ownerName" example:"Jane Doe"`
	Balance       int64  `json:"balance" example:"50000"`
}

// DeleteAccountRequest carries the credential needed to close an account.
// AccountNumber comes from the path.
type DeleteAccountRequest struct {
	AccountNumber string `json:"-"`
	Password      string `json:"password" binding:"required,pin" example:"1234"`
}

// BalanceResponse defines the data returned for a balance query.
type BalanceResponse struct {
	OwnerName string `json:"ownerName" example:"Jane Doe"`
	Balance   int64  `json:"balance" example:"100000"`
}

// ToCreateAccountResponse converts a domain.Account to CreateAccountResponse DTO
func ToCreateAccountResponse(acc *domain.Account) CreateAccountResponse {
	return CreateAccountResponse{
		AccountID:     acc.ID,
		AccountNumber: acc.AccountNumber,
		OwnerName:     acc.OwnerName,
		Balance:       int64(acc.Balance()),
	}
}

// ToBalanceResponse converts a domain.BalanceSnapshot to BalanceResponse DTO
func ToBalanceResponse(s *domain.BalanceSnapshot) BalanceResponse {
	return BalanceResponse{
		OwnerName: s.OwnerName,
		Balance:   int64(s.Balance),
	}
}

// AccountNumberURI binds the account number path segment.
type AccountNumberURI struct {
	AccountNumber string `uri:"accountNumber" json:"accountNumber" binding:"required,account_number"`
}
