package repositories

import (
	"context"
)

// TransactionManager defines methods for unit-of-work management
type TransactionManager interface {
	// RunInTx executes fn inside a single unit of work. The context passed to fn carries the
	// transaction; repository calls made with it join the transaction and any row locks they
	// take are held until fn returns. A non-nil error from fn rolls everything back.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RepositoryWithTx is a marker interface for repositories that support transactions
type RepositoryWithTx interface {
	TransactionManager
}
