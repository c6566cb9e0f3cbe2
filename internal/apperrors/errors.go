package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrLockTimeout indicates that an exclusive row lock could not be granted in time.
// Callers may retry the whole operation.
var ErrLockTimeout = errors.New("lock acquisition timed out")

// ErrorCode identifies a business failure independently of its message.
type ErrorCode string

const (
	CodeAccountNotFound            ErrorCode = "ACCOUNT_NOT_FOUND"
	CodeInvalidCredential          ErrorCode = "INVALID_ACCOUNT_PASSWORD"
	CodeInsufficientFunds          ErrorCode = "INSUFFICIENT_FUNDS"
	CodeInvalidAmount              ErrorCode = "INVALID_AMOUNT"
	CodeInvalidInitialBalance      ErrorCode = "INVALID_INITIAL_BALANCE"
	CodeSelfTransferNotAllowed     ErrorCode = "SELF_TRANSFER_NOT_ALLOWED"
	CodeBalanceNotZero             ErrorCode = "BALANCE_NOT_ZERO"
	CodeDailyLimitExceeded         ErrorCode = "DAILY_LIMIT_EXCEEDED"
	CodeWithdrawDailyLimitExceeded ErrorCode = "WITHDRAW_DAILY_LIMIT_EXCEEDED"
	CodeAccountNumberCollision     ErrorCode = "ACCOUNT_NUMBER_COLLISION"
)

// BusinessError is an expected, caller-recoverable failure of a ledger rule.
type BusinessError struct {
	Code    ErrorCode
	Message string
}

func (e *BusinessError) Error() string {
	return e.Message
}

func newBusinessError(code ErrorCode, message string) *BusinessError {
	return &BusinessError{Code: code, Message: message}
}

var (
	ErrAccountNotFound            = newBusinessError(CodeAccountNotFound, "account not found")
	ErrInvalidCredential          = newBusinessError(CodeInvalidCredential, "account password does not match")
	ErrInsufficientFunds          = newBusinessError(CodeInsufficientFunds, "insufficient funds")
	ErrInvalidAmount              = newBusinessError(CodeInvalidAmount, "amount must be a positive whole number")
	ErrInvalidInitialBalance      = newBusinessError(CodeInvalidInitialBalance, "initial balance must not be negative")
	ErrSelfTransferNotAllowed     = newBusinessError(CodeSelfTransferNotAllowed, "cannot transfer to the same account")
	ErrBalanceNotZero             = newBusinessError(CodeBalanceNotZero, "account balance must be zero to delete")
	ErrDailyLimitExceeded         = newBusinessError(CodeDailyLimitExceeded, "daily transfer limit exceeded")
	ErrWithdrawDailyLimitExceeded = newBusinessError(CodeWithdrawDailyLimitExceeded, "daily withdraw limit exceeded")

	// ErrAccountNumberCollision is only used inside account creation to drive the retry loop.
	ErrAccountNumberCollision = newBusinessError(CodeAccountNumberCollision, "account number already in use")
)

// AsBusinessError reports whether err wraps a BusinessError and returns it.
func AsBusinessError(err error) (*BusinessError, bool) {
	var bizErr *BusinessError
	if errors.As(err, &bizErr) {
		return bizErr, true
	}
	return nil, false
}

// AppError carries an infrastructure failure together with the HTTP status it should surface as.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError wraps err with a status code and a message that is safe to log.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
