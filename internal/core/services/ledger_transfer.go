package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	"github.com/SscSPs/money_transfer_service/internal/dto"
)

// Deposit credits an ACTIVE account under its row lock. Deposits are not authenticated.
func (s *ledgerService) Deposit(ctx context.Context, req dto.DepositRequest) (*domain.BalanceSnapshot, error) {
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		s.LogFailure(ctx, err, "Deposit rejected", slog.String("account_number", req.AccountNumber))
		return nil, err
	}

	var result *domain.BalanceSnapshot
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		account, err := s.findActiveAccount(txCtx, req.AccountNumber)
		if err != nil {
			return err
		}
		locked, err := s.lockAccount(txCtx, account.ID)
		if err != nil {
			return err
		}
		if err := locked.Deposit(amount); err != nil {
			return err
		}
		if _, err := s.accountRepo.SaveAccount(txCtx, locked); err != nil {
			return fmt.Errorf("failed to save account: %w", err)
		}
		if err := s.appendHistory(txCtx, locked.ID, nil, domain.Deposit, amount, 0, s.now()); err != nil {
			return err
		}
		result = snapshotOf(locked)
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Deposit failed", slog.String("account_number", req.AccountNumber), slog.Int64("amount", int64(amount)))
		return nil, err
	}

	s.LogInfo(ctx, "Deposit completed",
		slog.String("account_number", result.AccountNumber),
		slog.Int64("amount", int64(amount)),
		slog.Int64("balance", int64(result.Balance)))
	return result, nil
}

// Withdraw debits an ACTIVE account. The credential and the rolling limit are checked on an
// unlocked snapshot first; the limit is checked again and the balance mutated only after the
// row lock is held.
func (s *ledgerService) Withdraw(ctx context.Context, req dto.WithdrawRequest) (*domain.BalanceSnapshot, error) {
	result, amount, err := s.withdraw(ctx, req)
	if err != nil {
		s.LogFailure(ctx, err, "Withdraw failed", slog.String("account_number", req.AccountNumber), slog.String("amount", req.Amount.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Withdraw completed",
		slog.String("account_number", result.AccountNumber),
		slog.Int64("amount", int64(amount)),
		slog.Int64("balance", int64(result.Balance)))
	return result, nil
}

func (s *ledgerService) withdraw(ctx context.Context, req dto.WithdrawRequest) (*domain.BalanceSnapshot, domain.Money, error) {
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return nil, 0, err
	}

	account, err := s.findActiveAccount(ctx, req.AccountNumber)
	if err != nil {
		return nil, 0, err
	}
	if !account.VerifyPassword(req.Password) {
		return nil, 0, apperrors.ErrInvalidCredential
	}

	now := s.now()
	if err := s.checkWithdrawLimit(ctx, account.ID, amount, now); err != nil {
		return nil, 0, err
	}

	var result *domain.BalanceSnapshot
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		locked, err := s.lockAccount(txCtx, account.ID)
		if err != nil {
			return err
		}
		if err := s.checkWithdrawLimit(txCtx, locked.ID, amount, now); err != nil {
			return err
		}
		if err := locked.Withdraw(amount); err != nil {
			return err
		}
		if _, err := s.accountRepo.SaveAccount(txCtx, locked); err != nil {
			return fmt.Errorf("failed to save account: %w", err)
		}
		if err := s.appendHistory(txCtx, locked.ID, nil, domain.Withdraw, amount, 0, now); err != nil {
			return err
		}
		result = snapshotOf(locked)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return result, amount, nil
}

// Transfer moves amount between two accounts and charges floor(amount × fee rate) to the sender.
// Both rows are locked in ascending id order so opposite-direction transfers cannot deadlock.
func (s *ledgerService) Transfer(ctx context.Context, req dto.TransferRequest) (*domain.TransferResult, error) {
	result, fee, err := s.transfer(ctx, req)
	if err != nil {
		s.LogFailure(ctx, err, "Transfer failed",
			slog.String("from_account_number", req.FromAccountNumber),
			slog.String("to_account_number", req.ToAccountNumber),
			slog.String("amount", req.Amount.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Transfer completed",
		slog.String("from_account_number", result.From.AccountNumber),
		slog.String("to_account_number", result.To.AccountNumber),
		slog.Int64("amount", int64(result.TransferredAmount)),
		slog.Int64("fee", int64(fee)))
	return result, nil
}

func (s *ledgerService) transfer(ctx context.Context, req dto.TransferRequest) (*domain.TransferResult, domain.Money, error) {
	if req.FromAccountNumber == req.ToAccountNumber {
		return nil, 0, apperrors.ErrSelfTransferNotAllowed
	}
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return nil, 0, err
	}

	from, err := s.findActiveAccount(ctx, req.FromAccountNumber)
	if err != nil {
		return nil, 0, err
	}
	to, err := s.findActiveAccount(ctx, req.ToAccountNumber)
	if err != nil {
		return nil, 0, err
	}
	if !from.VerifyPassword(req.Password) {
		return nil, 0, apperrors.ErrInvalidCredential
	}

	fee := s.policy.TransferFee(amount)
	totalDebit := amount + fee
	if totalDebit < amount {
		return nil, 0, apperrors.ErrInvalidAmount
	}

	now := s.now()
	if err := s.checkTransferLimit(ctx, from.ID, amount, now); err != nil {
		return nil, 0, err
	}

	var result *domain.TransferResult
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		source, dest, err := s.lockPair(txCtx, from.ID, to.ID)
		if err != nil {
			return err
		}
		if err := s.checkTransferLimit(txCtx, source.ID, amount, now); err != nil {
			return err
		}

		if err := source.Withdraw(totalDebit); err != nil {
			return err
		}
		if err := dest.Deposit(amount); err != nil {
			return err
		}
		if _, err := s.accountRepo.SaveAccount(txCtx, source); err != nil {
			return fmt.Errorf("failed to save source account: %w", err)
		}
		if _, err := s.accountRepo.SaveAccount(txCtx, dest); err != nil {
			return fmt.Errorf("failed to save destination account: %w", err)
		}

		destID, sourceID := dest.ID, source.ID
		if err := s.appendHistory(txCtx, source.ID, &destID, domain.TransferSend, amount, fee, now); err != nil {
			return err
		}
		if err := s.appendHistory(txCtx, dest.ID, &sourceID, domain.TransferReceive, amount, 0, now); err != nil {
			return err
		}

		result = &domain.TransferResult{
			From:              *snapshotOf(source),
			To:                *snapshotOf(dest),
			TransferredAmount: amount,
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return result, fee, nil
}

// lockPair locks both accounts, lower id first, and returns them in (from, to) order.
func (s *ledgerService) lockPair(ctx context.Context, fromID, toID int64) (*domain.Account, *domain.Account, error) {
	firstID, secondID := fromID, toID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := s.lockAccount(ctx, firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := s.lockAccount(ctx, secondID)
	if err != nil {
		return nil, nil, err
	}

	if first.ID == fromID {
		return first, second, nil
	}
	return second, first, nil
}

func (s *ledgerService) checkWithdrawLimit(ctx context.Context, accountID int64, amount domain.Money, now time.Time) error {
	return s.checkDailyLimit(ctx, accountID, domain.Withdraw, amount, s.policy.DailyWithdrawLimit, apperrors.ErrWithdrawDailyLimitExceeded, now)
}

func (s *ledgerService) checkTransferLimit(ctx context.Context, accountID int64, amount domain.Money, now time.Time) error {
	return s.checkDailyLimit(ctx, accountID, domain.TransferSend, amount, s.policy.DailyTransferLimit, apperrors.ErrDailyLimitExceeded, now)
}

// checkDailyLimit fails with limitErr when the principal already moved in the rolling window
// plus amount would exceed limit.
func (s *ledgerService) checkDailyLimit(ctx context.Context, accountID int64, txnType domain.TransactionType, amount, limit domain.Money, limitErr error, now time.Time) error {
	rows, err := s.historyRepo.FindHistoriesByAccountAndTypeSince(ctx, accountID, txnType, domain.WindowStart(now))
	if err != nil {
		return fmt.Errorf("failed to load %s history: %w", txnType, err)
	}
	used := domain.SumAmounts(rows)
	if amount > limit-used {
		s.LogDebug(ctx, "Daily limit reached",
			slog.Int64("account_id", accountID),
			slog.String("type", string(txnType)),
			slog.Int64("used", int64(used)),
			slog.Int64("limit", int64(limit)))
		return limitErr
	}
	return nil
}
