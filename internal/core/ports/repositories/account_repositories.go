package repositories

import (
	"context"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account by id regardless of status.
	// Returns apperrors.ErrNotFound when no row exists.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// FindAccountByNumber retrieves an ACTIVE account by its account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ExistsByAccountNumber reports whether any account already uses accountNumber.
	ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount inserts the account when its ID is zero and updates it otherwise.
	// The returned account carries the store-assigned id. A clash on the account
	// number is reported as apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account *domain.Account) (*domain.Account, error)
}

// AccountTransactionSupport defines operations that only make sense inside a unit of work
type AccountTransactionSupport interface {
	// FindAccountByIDForUpdate retrieves an ACTIVE account and takes its exclusive row lock.
	// The lock is held until the enclosing unit of work ends. Blocks until granted or until
	// the store's lock timeout, which surfaces as apperrors.ErrLockTimeout.
	FindAccountByIDForUpdate(ctx context.Context, accountID int64) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
