package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	"github.com/SscSPs/money_transfer_service/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, s *memory.Store, number string, balance int64) *domain.Account {
	t.Helper()
	acc, err := domain.NewAccount(number, "owner "+number, decimal.NewFromInt(balance),
		domain.Credential{PasswordHash: "hash", Salt: "c2FsdA=="}, time.Now())
	require.NoError(t, err)
	saved, err := s.SaveAccount(context.Background(), acc)
	require.NoError(t, err)
	return saved
}

func TestStore_SaveAndFind(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	saved := seedAccount(t, s, "110-000-000001", 500)
	assert.Equal(t, int64(1), saved.ID)

	byNumber, err := s.FindAccountByNumber(ctx, "110-000-000001")
	require.NoError(t, err)
	assert.Equal(t, domain.Money(500), byNumber.Balance())

	exists, err := s.ExistsByAccountNumber(ctx, "110-000-000001")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = s.FindAccountByNumber(ctx, "110-000-000002")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = s.SaveAccount(ctx, func() *domain.Account {
		dup, _ := domain.NewAccount("110-000-000001", "other", decimal.Zero, domain.Credential{PasswordHash: "h", Salt: "s"}, time.Now())
		return dup
	}())
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestStore_DeletedAccountsOnlyVisibleByID(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	acc := seedAccount(t, s, "110-000-000001", 0)

	require.NoError(t, acc.MarkDeleted(time.Now()))
	_, err := s.SaveAccount(ctx, acc)
	require.NoError(t, err)

	_, err = s.FindAccountByNumber(ctx, acc.AccountNumber)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	found, err := s.FindAccountByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDeleted, found.Status)

	err = s.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := s.FindAccountByIDForUpdate(txCtx, acc.ID)
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_LockRequiresUnitOfWork(t *testing.T) {
	s := memory.NewStore()
	acc := seedAccount(t, s, "110-000-000001", 0)

	_, err := s.FindAccountByIDForUpdate(context.Background(), acc.ID)
	assert.ErrorIs(t, err, memory.ErrNoUnitOfWork)
}

func TestStore_RollbackDiscardsWrites(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	acc := seedAccount(t, s, "110-000-000001", 1000)
	boom := errors.New("boom")

	err := s.RunInTx(ctx, func(txCtx context.Context) error {
		locked, err := s.FindAccountByIDForUpdate(txCtx, acc.ID)
		require.NoError(t, err)
		require.NoError(t, locked.Withdraw(400))
		_, err = s.SaveAccount(txCtx, locked)
		require.NoError(t, err)

		row, err := domain.NewTransactionHistory(acc.ID, nil, domain.Withdraw, 400, 0, time.Now())
		require.NoError(t, err)
		_, err = s.AppendHistory(txCtx, row)
		require.NoError(t, err)

		inTx, err := s.FindAccountByID(txCtx, acc.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.Money(600), inTx.Balance(), "own writes are visible inside the unit of work")

		newAcc, err := domain.NewAccount("110-000-000002", "new", decimal.Zero, domain.Credential{PasswordHash: "h", Salt: "s"}, time.Now())
		require.NoError(t, err)
		_, err = s.SaveAccount(txCtx, newAcc)
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	after, err := s.FindAccountByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Money(1000), after.Balance())

	rows, err := s.FindHistoriesByAccountID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	exists, err := s.ExistsByAccountNumber(ctx, "110-000-000002")
	require.NoError(t, err)
	assert.False(t, exists, "reserved number is released on rollback")
}

func TestStore_LockIsHeldUntilCommit(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	acc := seedAccount(t, s, "110-000-000001", 1000)

	locked := make(chan struct{})
	release := make(chan struct{})
	firstDone := make(chan error, 1)

	go func() {
		firstDone <- s.RunInTx(ctx, func(txCtx context.Context) error {
			a, err := s.FindAccountByIDForUpdate(txCtx, acc.ID)
			if err != nil {
				return err
			}
			close(locked)
			<-release
			if err := a.Withdraw(100); err != nil {
				return err
			}
			_, err = s.SaveAccount(txCtx, a)
			return err
		})
	}()
	<-locked

	secondSaw := make(chan domain.Money, 1)
	secondDone := make(chan error, 1)
	go func() {
		secondDone <- s.RunInTx(ctx, func(txCtx context.Context) error {
			a, err := s.FindAccountByIDForUpdate(txCtx, acc.ID)
			if err != nil {
				return err
			}
			secondSaw <- a.Balance()
			return nil
		})
	}()

	select {
	case <-secondSaw:
		t.Fatal("second unit of work acquired a held lock")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-firstDone)
	require.NoError(t, <-secondDone)
	assert.Equal(t, domain.Money(900), <-secondSaw, "lock holder sees the committed write")
}

func TestStore_LockTimeout(t *testing.T) {
	s := memory.NewStore(memory.WithLockTimeout(20 * time.Millisecond))
	ctx := context.Background()
	acc := seedAccount(t, s, "110-000-000001", 0)

	locked := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- s.RunInTx(ctx, func(txCtx context.Context) error {
			_, err := s.FindAccountByIDForUpdate(txCtx, acc.ID)
			close(locked)
			<-release
			return err
		})
	}()
	<-locked

	err := s.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := s.FindAccountByIDForUpdate(txCtx, acc.ID)
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrLockTimeout)

	close(release)
	require.NoError(t, <-done)
}

func TestStore_HistoryQueries(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	base := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	appendRow := func(accountID int64, txnType domain.TransactionType, amount domain.Money, at time.Time) {
		row, err := domain.NewTransactionHistory(accountID, nil, txnType, amount, 0, at)
		require.NoError(t, err)
		_, err = s.AppendHistory(ctx, row)
		require.NoError(t, err)
	}

	appendRow(1, domain.Withdraw, 100, base.Add(-25*time.Hour))
	appendRow(1, domain.Withdraw, 200, base.Add(-2*time.Hour))
	appendRow(1, domain.Deposit, 300, base.Add(-1*time.Hour))
	appendRow(2, domain.Withdraw, 400, base.Add(-1*time.Hour))
	appendRow(1, domain.Withdraw, 500, base)

	recent, err := s.FindHistoriesByAccountAndTypeSince(ctx, 1, domain.Withdraw, base.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, domain.Money(700), domain.SumAmounts(recent))

	all, err := s.FindHistoriesByAccountID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, domain.Money(500), all[0].Amount)
	assert.Equal(t, domain.Money(300), all[1].Amount)
	assert.Equal(t, domain.Money(200), all[2].Amount)
	assert.Equal(t, domain.Money(100), all[3].Amount)
}
