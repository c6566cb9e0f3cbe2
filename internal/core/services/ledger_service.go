package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portsrepo "github.com/SscSPs/money_transfer_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_transfer_service/internal/core/ports/services"
	"github.com/SscSPs/money_transfer_service/internal/dto"
	"github.com/SscSPs/money_transfer_service/internal/utils"
	"github.com/shopspring/decimal"
)

// DefaultMaxAccountNumberAttempts bounds the generate-and-check loop of CreateAccount.
const DefaultMaxAccountNumberAttempts = 10

// ledgerService implements the LedgerSvcFacade interface
type ledgerService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	historyRepo portsrepo.TransactionHistoryRepositoryFacade
	txManager   portsrepo.TransactionManager
	policy      domain.LedgerPolicy

	now                      func() time.Time
	generateAccountNumber    func() (string, error)
	maxAccountNumberAttempts int
}

// LedgerOption is a functional option for configuring the ledger service
type LedgerOption func(*ledgerService)

// WithClock replaces the time source used for history timestamps and limit windows.
func WithClock(now func() time.Time) LedgerOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// WithAccountNumberGenerator replaces the random account number generator.
func WithAccountNumberGenerator(gen func() (string, error)) LedgerOption {
	return func(s *ledgerService) {
		s.generateAccountNumber = gen
	}
}

// WithMaxAccountNumberAttempts bounds how many numbers CreateAccount tries before giving up.
func WithMaxAccountNumberAttempts(n int) LedgerOption {
	return func(s *ledgerService) {
		if n > 0 {
			s.maxAccountNumberAttempts = n
		}
	}
}

// NewLedgerService creates the ledger transaction engine with the provided options
func NewLedgerService(repos portsrepo.RepositoryProvider, policy domain.LedgerPolicy, options ...LedgerOption) (portssvc.LedgerSvcFacade, error) {
	if repos.AccountRepo == nil || repos.HistoryRepo == nil || repos.TxManager == nil {
		return nil, errors.New("account repository, history repository and transaction manager are required")
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ledger policy: %w", err)
	}

	svc := &ledgerService{
		accountRepo:              repos.AccountRepo,
		historyRepo:              repos.HistoryRepo,
		txManager:                repos.TxManager,
		policy:                   policy,
		now:                      time.Now,
		maxAccountNumberAttempts: DefaultMaxAccountNumberAttempts,
	}
	svc.generateAccountNumber = svc.randomAccountNumber

	for _, option := range options {
		option(svc)
	}

	return svc, nil
}

func (s *ledgerService) randomAccountNumber() (string, error) {
	middle, err := utils.SecureRandomInt(1000)
	if err != nil {
		return "", err
	}
	last, err := utils.SecureRandomInt(1000000)
	if err != nil {
		return "", err
	}
	return s.policy.FormatAccountNumber(int(middle), int(last)), nil
}

// CreateAccount opens an account under a freshly generated, unused account number.
// A positive opening balance is recorded as a DEPOSIT row in the same unit of work.
func (s *ledgerService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	if req.InitialBalance == nil {
		s.LogFailure(ctx, apperrors.ErrInvalidInitialBalance, "Account creation rejected")
		return nil, apperrors.ErrInvalidInitialBalance
	}
	initialBalance := *req.InitialBalance
	if _, err := domain.ParseInitialBalance(initialBalance); err != nil {
		s.LogFailure(ctx, err, "Account creation rejected")
		return nil, err
	}

	credential, err := domain.NewCredential(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to derive account credential")
		return nil, fmt.Errorf("failed to derive credential: %w", err)
	}

	for attempt := 1; attempt <= s.maxAccountNumberAttempts; attempt++ {
		account, err := s.tryCreateAccount(ctx, req.OwnerName, initialBalance, credential)
		if errors.Is(err, apperrors.ErrAccountNumberCollision) {
			s.LogDebug(ctx, "Account number collision, retrying", slog.Int("attempt", attempt))
			continue
		}
		if err != nil {
			s.LogFailure(ctx, err, "Failed to create account")
			return nil, err
		}

		s.LogInfo(ctx, "Account created",
			slog.Int64("account_id", account.ID),
			slog.String("account_number", account.AccountNumber),
			slog.Int64("initial_balance", int64(account.Balance())))
		return account, nil
	}

	err = fmt.Errorf("no unused account number found after %d attempts", s.maxAccountNumberAttempts)
	s.LogError(ctx, err, "Failed to allocate account number")
	return nil, err
}

func (s *ledgerService) tryCreateAccount(ctx context.Context, ownerName string, initialBalance decimal.Decimal, credential domain.Credential) (*domain.Account, error) {
	number, err := s.generateAccountNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to generate account number: %w", err)
	}

	exists, err := s.accountRepo.ExistsByAccountNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to check account number: %w", err)
	}
	if exists {
		return nil, apperrors.ErrAccountNumberCollision
	}

	now := s.now()
	account, err := domain.NewAccount(number, ownerName, initialBalance, credential, now)
	if err != nil {
		return nil, err
	}

	var created *domain.Account
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		saved, err := s.accountRepo.SaveAccount(txCtx, account)
		if errors.Is(err, apperrors.ErrDuplicate) {
			return apperrors.ErrAccountNumberCollision
		}
		if err != nil {
			return fmt.Errorf("failed to save account: %w", err)
		}

		if saved.Balance() > 0 {
			if err := s.appendHistory(txCtx, saved.ID, nil, domain.Deposit, saved.Balance(), 0, now); err != nil {
				return err
			}
		}
		created = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetAccountBalance returns the owner and current balance of an ACTIVE account.
func (s *ledgerService) GetAccountBalance(ctx context.Context, accountNumber string) (*domain.BalanceSnapshot, error) {
	account, err := s.findActiveAccount(ctx, accountNumber)
	if err != nil {
		s.LogFailure(ctx, err, "Balance lookup failed", slog.String("account_number", accountNumber))
		return nil, err
	}
	return snapshotOf(account), nil
}

// GetHistory returns every ledger row of an ACTIVE account, newest first. Counterparties that
// were deleted show a placeholder owner, ones that cannot be loaded show placeholder values.
func (s *ledgerService) GetHistory(ctx context.Context, accountNumber string) (*domain.AccountHistory, error) {
	account, err := s.findActiveAccount(ctx, accountNumber)
	if err != nil {
		s.LogFailure(ctx, err, "History lookup failed", slog.String("account_number", accountNumber))
		return nil, err
	}

	rows, err := s.historyRepo.FindHistoriesByAccountID(ctx, account.ID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load history", slog.Int64("account_id", account.ID))
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	resolved := make(map[int64]domain.Counterparty)
	entries := make([]domain.HistoryEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.HistoryEntry{
			Type:         row.Type,
			Amount:       row.Amount,
			Fee:          row.Fee,
			TransactedAt: row.TransactedAt,
		}
		if row.CounterpartyAccountID == nil {
			continue
		}
		id := *row.CounterpartyAccountID
		cp, ok := resolved[id]
		if !ok {
			cp = s.resolveCounterparty(ctx, id)
			resolved[id] = cp
		}
		entries[i].Counterparty = &cp
	}

	return &domain.AccountHistory{AccountNumber: account.AccountNumber, Entries: entries}, nil
}

func (s *ledgerService) resolveCounterparty(ctx context.Context, accountID int64) domain.Counterparty {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve counterparty", slog.Int64("counterparty_id", accountID))
		}
		return domain.ResolveCounterparty(nil)
	}
	return domain.ResolveCounterparty(account)
}

// DeleteAccount soft deletes an account. The zero-balance check runs under the row lock so a
// concurrent deposit cannot land between the check and the status change.
func (s *ledgerService) DeleteAccount(ctx context.Context, req dto.DeleteAccountRequest) error {
	account, err := s.findActiveAccount(ctx, req.AccountNumber)
	if err != nil {
		s.LogFailure(ctx, err, "Account deletion rejected", slog.String("account_number", req.AccountNumber))
		return err
	}
	if !account.VerifyPassword(req.Password) {
		s.LogFailure(ctx, apperrors.ErrInvalidCredential, "Account deletion rejected", slog.String("account_number", req.AccountNumber))
		return apperrors.ErrInvalidCredential
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		locked, err := s.lockAccount(txCtx, account.ID)
		if err != nil {
			return err
		}
		if err := locked.MarkDeleted(s.now()); err != nil {
			return err
		}
		if _, err := s.accountRepo.SaveAccount(txCtx, locked); err != nil {
			return fmt.Errorf("failed to save account: %w", err)
		}
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Account deletion failed", slog.String("account_number", req.AccountNumber))
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.String("account_number", req.AccountNumber))
	return nil
}

// findActiveAccount performs the unlocked lookup by account number.
func (s *ledgerService) findActiveAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
}

// lockAccount re-reads an ACTIVE account under its exclusive row lock. Must run inside RunInTx.
func (s *ledgerService) lockAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to lock account %d: %w", accountID, err)
	}
	return account, nil
}

func (s *ledgerService) appendHistory(ctx context.Context, accountID int64, counterpartyID *int64, txnType domain.TransactionType, amount, fee domain.Money, at time.Time) error {
	row, err := domain.NewTransactionHistory(accountID, counterpartyID, txnType, amount, fee, at)
	if err != nil {
		return fmt.Errorf("invalid %s history row: %w", txnType, err)
	}
	if _, err := s.historyRepo.AppendHistory(ctx, row); err != nil {
		return fmt.Errorf("failed to append %s history: %w", txnType, err)
	}
	return nil
}

func snapshotOf(account *domain.Account) *domain.BalanceSnapshot {
	return &domain.BalanceSnapshot{
		AccountNumber: account.AccountNumber,
		OwnerName:     account.OwnerName,
		Balance:       account.Balance(),
	}
}
