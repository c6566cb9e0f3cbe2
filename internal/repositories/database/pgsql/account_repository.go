package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portsrepo "github.com/SscSPs/money_transfer_service/internal/core/ports/repositories"
	"github.com/SscSPs/money_transfer_service/internal/models"
	"github.com/SscSPs/money_transfer_service/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `id, account_number, owner_name, balance, status, password_hash, salt, created_at, updated_at`

type PgxAccountRepository struct {
	*BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(base *BaseRepository) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: base}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

func (r *PgxAccountRepository) findOne(ctx context.Context, q querier, query string, args ...any) (*domain.Account, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	modelAcc, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, translateError(err)
	}
	return mapping.ToDomainAccount(modelAcc)
}

// FindAccountByID retrieves an account by its ID, whatever its status.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1;`
	acc, err := r.findOne(ctx, r.db(ctx), query, accountID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find account %d: %w", accountID, err)
	}
	return acc, err
}

// FindAccountByNumber retrieves an ACTIVE account by its account number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1 AND status = $2;`
	acc, err := r.findOne(ctx, r.db(ctx), query, accountNumber, string(domain.StatusActive))
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find account %s: %w", accountNumber, err)
	}
	return acc, err
}

// ExistsByAccountNumber reports whether any row, deleted or not, uses the number.
func (r *PgxAccountRepository) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	var exists bool
	err := r.db(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1);`, accountNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account number %s: %w", accountNumber, err)
	}
	return exists, nil
}

// FindAccountByIDForUpdate locks the ACTIVE account row until the surrounding transaction ends.
func (r *PgxAccountRepository) FindAccountByIDForUpdate(ctx context.Context, accountID int64) (*domain.Account, error) {
	tx, ok := txFrom(ctx)
	if !ok {
		return nil, ErrNoTransaction
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND status = $2 FOR UPDATE;`
	acc, err := r.findOne(ctx, tx, query, accountID, string(domain.StatusActive))
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to lock account %d: %w", accountID, err)
	}
	return acc, err
}

// SaveAccount inserts the account when its ID is zero and updates it otherwise.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	modelAcc := mapping.ToModelAccount(account)
	if modelAcc.ID == 0 {
		return r.insert(ctx, modelAcc)
	}

	query := `
		UPDATE accounts
		SET owner_name = $2, balance = $3, status = $4, password_hash = $5, salt = $6, updated_at = $7
		WHERE id = $1;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		modelAcc.ID,
		modelAcc.OwnerName,
		modelAcc.Balance,
		modelAcc.Status,
		modelAcc.PasswordHash,
		modelAcc.Salt,
		modelAcc.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update account %d: %w", modelAcc.ID, translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}
	return mapping.ToDomainAccount(modelAcc)
}

func (r *PgxAccountRepository) insert(ctx context.Context, modelAcc models.Account) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (account_number, owner_name, balance, status, password_hash, salt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;
	`
	err := r.db(ctx).QueryRow(ctx, query,
		modelAcc.AccountNumber,
		modelAcc.OwnerName,
		modelAcc.Balance,
		modelAcc.Status,
		modelAcc.PasswordHash,
		modelAcc.Salt,
		modelAcc.CreatedAt,
		modelAcc.UpdatedAt,
	).Scan(&modelAcc.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: account number %s already exists", apperrors.ErrDuplicate, modelAcc.AccountNumber)
		}
		return nil, fmt.Errorf("failed to save account %s: %w", modelAcc.AccountNumber, err)
	}
	return mapping.ToDomainAccount(modelAcc)
}
