package domain

import (
	"errors"
	"math"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of an account. ACTIVE -> DELETED is the only transition.
type AccountStatus string

const (
	StatusActive  AccountStatus = "ACTIVE"
	StatusDeleted AccountStatus = "DELETED"
)

// Account is the aggregate that owns a balance. Withdraw and Deposit are the only
// ways the balance changes after construction.
type Account struct {
	ID            int64         `json:"id"`
	AccountNumber string        `json:"accountNumber"`
	OwnerName     string        `json:"ownerName"`
	Status        AccountStatus `json:"status"`
	Credential    Credential    `json:"-"`
	AuditFields
	balance Money
}

// AccountState is the persisted shape of an account, used by repositories to rebuild the aggregate.
type AccountState struct {
	ID            int64
	AccountNumber string
	OwnerName     string
	Balance       Money
	Status        AccountStatus
	Credential    Credential
	AuditFields
}

// NewAccount builds an ACTIVE account that has not been persisted yet (ID is zero).
// Fractional initial balances are truncated, negative ones rejected.
func NewAccount(accountNumber, ownerName string, initialBalance decimal.Decimal, credential Credential, now time.Time) (*Account, error) {
	balance, err := ParseInitialBalance(initialBalance)
	if err != nil {
		return nil, err
	}
	if accountNumber == "" || ownerName == "" || credential.PasswordHash == "" || credential.Salt == "" {
		return nil, errors.New("account number, owner name and credential are required")
	}
	return &Account{
		AccountNumber: accountNumber,
		OwnerName:     ownerName,
		Status:        StatusActive,
		Credential:    credential,
		AuditFields:   AuditFields{CreatedAt: now, UpdatedAt: now},
		balance:       balance,
	}, nil
}

// RestoreAccount rebuilds an account from persisted state.
func RestoreAccount(state AccountState) (*Account, error) {
	if state.Balance < 0 {
		return nil, apperrors.ErrInvalidInitialBalance
	}
	status := state.Status
	if status == "" {
		status = StatusActive
	}
	return &Account{
		ID:            state.ID,
		AccountNumber: state.AccountNumber,
		OwnerName:     state.OwnerName,
		Status:        status,
		Credential:    state.Credential,
		AuditFields:   state.AuditFields,
		balance:       state.Balance,
	}, nil
}

// State returns the persisted shape of the account.
func (a *Account) State() AccountState {
	return AccountState{
		ID:            a.ID,
		AccountNumber: a.AccountNumber,
		OwnerName:     a.OwnerName,
		Balance:       a.balance,
		Status:        a.Status,
		Credential:    a.Credential,
		AuditFields:   a.AuditFields,
	}
}

// Balance returns the current balance.
func (a *Account) Balance() Money {
	return a.balance
}

// IsActive reports whether the account has not been soft deleted.
func (a *Account) IsActive() bool {
	return a.Status == StatusActive
}

// VerifyPassword reports whether password matches the stored credential.
func (a *Account) VerifyPassword(password string) bool {
	return a.Credential.Matches(password)
}

// Withdraw removes amount from the balance.
func (a *Account) Withdraw(amount Money) error {
	if amount <= 0 {
		return apperrors.ErrInvalidAmount
	}
	if amount > a.balance {
		return apperrors.ErrInsufficientFunds
	}
	a.balance -= amount
	return nil
}

// Deposit adds amount to the balance.
func (a *Account) Deposit(amount Money) error {
	if amount <= 0 || a.balance > math.MaxInt64-amount {
		return apperrors.ErrInvalidAmount
	}
	a.balance += amount
	return nil
}

// MarkDeleted soft deletes the account. Only an ACTIVE account with a zero balance can be deleted.
func (a *Account) MarkDeleted(now time.Time) error {
	if !a.IsActive() {
		return apperrors.ErrAccountNotFound
	}
	if a.balance != 0 {
		return apperrors.ErrBalanceNotZero
	}
	a.Status = StatusDeleted
	a.UpdatedAt = now
	return nil
}
