package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portsrepo "github.com/SscSPs/money_transfer_service/internal/core/ports/repositories"
	"github.com/SscSPs/money_transfer_service/internal/models"
	"github.com/SscSPs/money_transfer_service/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const historyColumns = `id, account_id, counterparty_account_id, type, amount, fee, transacted_at`

type PgxTransactionHistoryRepository struct {
	*BaseRepository
}

func newPgxTransactionHistoryRepository(base *BaseRepository) *PgxTransactionHistoryRepository {
	return &PgxTransactionHistoryRepository{BaseRepository: base}
}

var _ portsrepo.TransactionHistoryRepositoryFacade = (*PgxTransactionHistoryRepository)(nil)

// AppendHistory inserts a ledger row and returns it with its id.
func (r *PgxTransactionHistoryRepository) AppendHistory(ctx context.Context, history domain.TransactionHistory) (domain.TransactionHistory, error) {
	m := mapping.ToModelTransactionHistory(history)
	query := `
		INSERT INTO transaction_histories (account_id, counterparty_account_id, type, amount, fee, transacted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`
	if err := r.db(ctx).QueryRow(ctx, query,
		m.AccountID,
		m.CounterpartyAccountID,
		m.Type,
		m.Amount,
		m.Fee,
		m.TransactedAt,
	).Scan(&m.ID); err != nil {
		return domain.TransactionHistory{}, fmt.Errorf("failed to append %s history for account %d: %w", m.Type, m.AccountID, translateError(err))
	}
	return mapping.ToDomainTransactionHistory(m), nil
}

// FindHistoriesByAccountAndTypeSince returns rows of txnType strictly newer than since.
func (r *PgxTransactionHistoryRepository) FindHistoriesByAccountAndTypeSince(ctx context.Context, accountID int64, txnType domain.TransactionType, since time.Time) ([]domain.TransactionHistory, error) {
	query := `
		SELECT ` + historyColumns + `
		FROM transaction_histories
		WHERE account_id = $1 AND type = $2 AND transacted_at > $3;
	`
	return r.list(ctx, query, accountID, string(txnType), since)
}

// FindHistoriesByAccountID returns every row of the account, newest first.
func (r *PgxTransactionHistoryRepository) FindHistoriesByAccountID(ctx context.Context, accountID int64) ([]domain.TransactionHistory, error) {
	query := `
		SELECT ` + historyColumns + `
		FROM transaction_histories
		WHERE account_id = $1
		ORDER BY transacted_at DESC, id DESC;
	`
	return r.list(ctx, query, accountID)
}

func (r *PgxTransactionHistoryRepository) list(ctx context.Context, query string, args ...any) ([]domain.TransactionHistory, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction histories: %w", translateError(err))
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TransactionHistory])
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction histories: %w", err)
	}
	return mapping.ToDomainTransactionHistorySlice(ms), nil
}
