package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
)

// TransactionHistoryReader defines read operations for ledger rows
type TransactionHistoryReader interface {
	// FindHistoriesByAccountAndTypeSince returns rows of txnType for the account whose
	// timestamp is strictly after since.
	FindHistoriesByAccountAndTypeSince(ctx context.Context, accountID int64, txnType domain.TransactionType, since time.Time) ([]domain.TransactionHistory, error)

	// FindHistoriesByAccountID returns every row of the account, newest first.
	FindHistoriesByAccountID(ctx context.Context, accountID int64) ([]domain.TransactionHistory, error)
}

// TransactionHistoryWriter defines the only write the ledger allows
type TransactionHistoryWriter interface {
	// AppendHistory persists a new row and returns it with its id set.
	AppendHistory(ctx context.Context, history domain.TransactionHistory) (domain.TransactionHistory, error)
}

// TransactionHistoryRepositoryFacade combines all ledger repository interfaces
type TransactionHistoryRepositoryFacade interface {
	TransactionHistoryReader
	TransactionHistoryWriter
}
