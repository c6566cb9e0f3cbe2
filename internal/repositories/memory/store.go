package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portsrepo "github.com/SscSPs/money_transfer_service/internal/core/ports/repositories"
)

// DefaultLockTimeout is how long a lock-mode lookup waits before giving up.
const DefaultLockTimeout = 5 * time.Second

// ErrNoUnitOfWork is returned by lock-mode lookups made outside RunInTx.
var ErrNoUnitOfWork = errors.New("lock-mode lookup requires a unit of work")

type txKey struct{}

// unitOfWork buffers the writes of one RunInTx call and the row locks it holds.
type unitOfWork struct {
	accounts  map[int64]domain.AccountState
	reserved  []string
	histories []domain.TransactionHistory
	held      map[int64]chan struct{}
}

// Store keeps accounts and ledger rows in process memory. Each account row has an exclusive
// lock that a unit of work holds from its lock-mode lookup until it commits or rolls back.
type Store struct {
	mu            sync.Mutex
	accounts      map[int64]domain.AccountState
	byNumber      map[string]int64
	histories     []domain.TransactionHistory
	rowLocks      map[int64]chan struct{}
	nextAccountID int64
	nextHistoryID int64
	lockTimeout   time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithLockTimeout sets how long FindAccountByIDForUpdate waits for a row lock.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// NewStore creates an empty in-memory store.
func NewStore(options ...Option) *Store {
	s := &Store{
		accounts:    make(map[int64]domain.AccountState),
		byNumber:    make(map[string]int64),
		rowLocks:    make(map[int64]chan struct{}),
		lockTimeout: DefaultLockTimeout,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// NewRepositoryProvider exposes s through the repository ports.
func (s *Store) NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: s,
		HistoryRepo: s,
		TxManager:   s,
	}
}

var (
	_ portsrepo.AccountRepositoryWithTx            = (*Store)(nil)
	_ portsrepo.TransactionHistoryRepositoryFacade = (*Store)(nil)
	_ portsrepo.TransactionManager                 = (*Store)(nil)
)

func uowFrom(ctx context.Context) *unitOfWork {
	uow, _ := ctx.Value(txKey{}).(*unitOfWork)
	return uow
}

// RunInTx runs fn in a unit of work. Nested calls join the outer unit of work.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if uowFrom(ctx) != nil {
		return fn(ctx)
	}

	uow := &unitOfWork{
		accounts: make(map[int64]domain.AccountState),
		held:     make(map[int64]chan struct{}),
	}
	committed := false
	defer func() {
		if !committed {
			s.rollback(uow)
		}
		s.releaseLocks(uow)
	}()

	if err := fn(context.WithValue(ctx, txKey{}, uow)); err != nil {
		return err
	}

	s.commit(uow)
	committed = true
	return nil
}

func (s *Store) commit(uow *unitOfWork) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, state := range uow.accounts {
		s.accounts[id] = state
	}
	s.histories = append(s.histories, uow.histories...)
}

func (s *Store) rollback(uow *unitOfWork) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, number := range uow.reserved {
		id := s.byNumber[number]
		if _, ok := s.accounts[id]; !ok {
			delete(s.byNumber, number)
		}
	}
}

func (s *Store) releaseLocks(uow *unitOfWork) {
	for _, lock := range uow.held {
		<-lock
	}
}

// FindAccountByID retrieves an account by id regardless of status.
func (s *Store) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	state, ok := s.lookup(uowFrom(ctx), accountID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return domain.RestoreAccount(state)
}

// FindAccountByNumber retrieves an ACTIVE account by its account number.
func (s *Store) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	s.mu.Lock()
	id, ok := s.byNumber[accountNumber]
	s.mu.Unlock()
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	state, ok := s.lookup(uowFrom(ctx), id)
	if !ok || state.Status != domain.StatusActive {
		return nil, apperrors.ErrNotFound
	}
	return domain.RestoreAccount(state)
}

// ExistsByAccountNumber reports whether the number is used or reserved by an in-flight insert.
func (s *Store) ExistsByAccountNumber(_ context.Context, accountNumber string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byNumber[accountNumber]
	return ok, nil
}

// FindAccountByIDForUpdate takes the row lock of accountID for the current unit of work and
// returns the ACTIVE account.
func (s *Store) FindAccountByIDForUpdate(ctx context.Context, accountID int64) (*domain.Account, error) {
	uow := uowFrom(ctx)
	if uow == nil {
		return nil, ErrNoUnitOfWork
	}

	if _, held := uow.held[accountID]; !held {
		if err := s.acquire(ctx, uow, accountID); err != nil {
			return nil, err
		}
	}

	state, ok := s.lookup(uow, accountID)
	if !ok || state.Status != domain.StatusActive {
		return nil, apperrors.ErrNotFound
	}
	return domain.RestoreAccount(state)
}

func (s *Store) acquire(ctx context.Context, uow *unitOfWork, accountID int64) error {
	s.mu.Lock()
	lock, ok := s.rowLocks[accountID]
	if !ok {
		lock = make(chan struct{}, 1)
		s.rowLocks[accountID] = lock
	}
	s.mu.Unlock()

	timer := time.NewTimer(s.lockTimeout)
	defer timer.Stop()

	select {
	case lock <- struct{}{}:
		uow.held[accountID] = lock
		return nil
	case <-timer.C:
		return fmt.Errorf("account %d: %w", accountID, apperrors.ErrLockTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// lookup returns the pending state from uow if present, otherwise the committed state.
func (s *Store) lookup(uow *unitOfWork, accountID int64) (domain.AccountState, bool) {
	if uow != nil {
		if state, ok := uow.accounts[accountID]; ok {
			return state, true
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.accounts[accountID]
	return state, ok
}

// SaveAccount inserts the account when its ID is zero and updates it otherwise.
func (s *Store) SaveAccount(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	uow := uowFrom(ctx)
	state := account.State()

	s.mu.Lock()
	if state.ID == 0 {
		if _, taken := s.byNumber[state.AccountNumber]; taken {
			s.mu.Unlock()
			return nil, fmt.Errorf("account number %s: %w", state.AccountNumber, apperrors.ErrDuplicate)
		}
		s.nextAccountID++
		state.ID = s.nextAccountID
		s.byNumber[state.AccountNumber] = state.ID
		if uow != nil {
			uow.reserved = append(uow.reserved, state.AccountNumber)
		}
	} else if _, ok := s.accounts[state.ID]; !ok && (uow == nil || !hasPending(uow, state.ID)) {
		s.mu.Unlock()
		return nil, apperrors.ErrNotFound
	}
	if uow == nil {
		s.accounts[state.ID] = state
	}
	s.mu.Unlock()

	if uow != nil {
		uow.accounts[state.ID] = state
	}
	return domain.RestoreAccount(state)
}

func hasPending(uow *unitOfWork, accountID int64) bool {
	_, ok := uow.accounts[accountID]
	return ok
}

// AppendHistory stores a new ledger row and assigns its id.
func (s *Store) AppendHistory(ctx context.Context, history domain.TransactionHistory) (domain.TransactionHistory, error) {
	uow := uowFrom(ctx)

	s.mu.Lock()
	s.nextHistoryID++
	history.ID = s.nextHistoryID
	if uow == nil {
		s.histories = append(s.histories, history)
	}
	s.mu.Unlock()

	if uow != nil {
		uow.histories = append(uow.histories, history)
	}
	return history, nil
}

// FindHistoriesByAccountAndTypeSince returns rows of txnType strictly newer than since.
func (s *Store) FindHistoriesByAccountAndTypeSince(ctx context.Context, accountID int64, txnType domain.TransactionType, since time.Time) ([]domain.TransactionHistory, error) {
	return s.filterHistories(uowFrom(ctx), func(h domain.TransactionHistory) bool {
		return h.AccountID == accountID && h.Type == txnType && h.TransactedAt.After(since)
	}), nil
}

// FindHistoriesByAccountID returns every row of the account, newest first.
func (s *Store) FindHistoriesByAccountID(ctx context.Context, accountID int64) ([]domain.TransactionHistory, error) {
	rows := s.filterHistories(uowFrom(ctx), func(h domain.TransactionHistory) bool {
		return h.AccountID == accountID
	})
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].TransactedAt.Equal(rows[j].TransactedAt) {
			return rows[i].TransactedAt.After(rows[j].TransactedAt)
		}
		return rows[i].ID > rows[j].ID
	})
	return rows, nil
}

func (s *Store) filterHistories(uow *unitOfWork, keep func(domain.TransactionHistory) bool) []domain.TransactionHistory {
	var rows []domain.TransactionHistory

	s.mu.Lock()
	for _, h := range s.histories {
		if keep(h) {
			rows = append(rows, h)
		}
	}
	s.mu.Unlock()

	if uow != nil {
		for _, h := range uow.histories {
			if keep(h) {
				rows = append(rows, h)
			}
		}
	}
	return rows
}
