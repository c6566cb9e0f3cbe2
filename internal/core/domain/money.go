package domain

import (
	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Money is an amount in the smallest currency unit. It never carries a fractional part.
type Money int64

// Decimal returns m as a decimal.Decimal for arithmetic with rates.
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(m))
}

// ParseAmount converts a requested amount into Money.
// Zero, negative, fractional and out-of-range amounts fail with ErrInvalidAmount.
func ParseAmount(amount decimal.Decimal) (Money, error) {
	if !amount.IsPositive() {
		return 0, apperrors.ErrInvalidAmount
	}
	whole := amount.IntPart()
	if !amount.Equal(decimal.NewFromInt(whole)) {
		return 0, apperrors.ErrInvalidAmount
	}
	return Money(whole), nil
}

// ParseInitialBalance converts an opening balance into Money, truncating any fractional part.
// Negative balances fail with ErrInvalidInitialBalance.
func ParseInitialBalance(balance decimal.Decimal) (Money, error) {
	if balance.IsNegative() {
		return 0, apperrors.ErrInvalidInitialBalance
	}
	whole := balance.Truncate(0)
	if !whole.Equal(decimal.NewFromInt(whole.IntPart())) {
		return 0, apperrors.ErrInvalidInitialBalance
	}
	return Money(whole.IntPart()), nil
}

// FeeFor returns floor(amount × rate). Amounts are non-negative so floor equals truncation.
func FeeFor(amount Money, rate decimal.Decimal) Money {
	return Money(amount.Decimal().Mul(rate).Floor().IntPart())
}
