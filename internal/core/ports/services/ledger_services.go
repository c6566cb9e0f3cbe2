package services

import (
	"context"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	"github.com/SscSPs/money_transfer_service/internal/dto"
)

// LedgerReaderSvc defines read-only ledger operations
type LedgerReaderSvc interface {
	// GetAccountBalance returns the owner and balance of an ACTIVE account.
	GetAccountBalance(ctx context.Context, accountNumber string) (*domain.BalanceSnapshot, error)

	// GetHistory returns every ledger row of the account, newest first, with counterparties resolved.
	GetHistory(ctx context.Context, accountNumber string) (*domain.AccountHistory, error)
}

// LedgerWriterSvc defines single-account mutations
type LedgerWriterSvc interface {
	// CreateAccount opens an account under a freshly generated account number.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// Deposit credits an ACTIVE account. No credential is required.
	Deposit(ctx context.Context, req dto.DepositRequest) (*domain.BalanceSnapshot, error)

	// Withdraw debits an ACTIVE account after checking its credential and the rolling withdraw limit.
	Withdraw(ctx context.Context, req dto.WithdrawRequest) (*domain.BalanceSnapshot, error)

	// DeleteAccount soft deletes an account whose balance is exactly zero.
	DeleteAccount(ctx context.Context, req dto.DeleteAccountRequest) error
}

// LedgerTransferSvc defines the two-account mutation
type LedgerTransferSvc interface {
	// Transfer moves amount from one account to another, charging the fee to the sender.
	Transfer(ctx context.Context, req dto.TransferRequest) (*domain.TransferResult, error)
}

// LedgerSvcFacade combines all ledger service interfaces
// This is a facade for clients that need access to all operations
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
	LedgerTransferSvc
}
