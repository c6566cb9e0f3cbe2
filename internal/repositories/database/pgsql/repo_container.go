package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/money_transfer_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres repositories around one pool. All of them join the
// transaction started by the returned TxManager.
func NewRepositoryProvider(dbPool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.RepositoryProvider {
	base := &BaseRepository{Pool: dbPool, LockTimeout: lockTimeout}

	return portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(base),
		HistoryRepo: newPgxTransactionHistoryRepository(base),
		TxManager:   base,
	}
}
