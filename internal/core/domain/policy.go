package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// LimitWindow is the trailing window over which daily limits are summed.
const LimitWindow = 24 * time.Hour

var accountPrefixPattern = regexp.MustCompile(`^\d{3}$`)

// LedgerPolicy is the immutable money configuration handed to the ledger engine at construction.
type LedgerPolicy struct {
	FeeRate             decimal.Decimal
	DailyTransferLimit  Money
	DailyWithdrawLimit  Money
	AccountNumberPrefix string
}

// Validate rejects policies that would make the ledger rules meaningless.
func (p LedgerPolicy) Validate() error {
	if p.FeeRate.IsNegative() || p.FeeRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("fee rate must be in [0, 1), got %s", p.FeeRate)
	}
	if p.DailyTransferLimit < 0 {
		return fmt.Errorf("daily transfer limit must not be negative, got %d", p.DailyTransferLimit)
	}
	if p.DailyWithdrawLimit < 0 {
		return fmt.Errorf("daily withdraw limit must not be negative, got %d", p.DailyWithdrawLimit)
	}
	if !accountPrefixPattern.MatchString(p.AccountNumberPrefix) {
		return fmt.Errorf("account number prefix must be three digits, got %q", p.AccountNumberPrefix)
	}
	return nil
}

// TransferFee returns the fee charged on top of a transfer of amount.
func (p LedgerPolicy) TransferFee(amount Money) Money {
	return FeeFor(amount, p.FeeRate)
}

// WindowStart returns the exclusive lower bound of the rolling limit window ending at now.
func WindowStart(now time.Time) time.Time {
	return now.Add(-LimitWindow)
}

// FormatAccountNumber renders PPP-DDD-DDDDDD.
func (p LedgerPolicy) FormatAccountNumber(middle, last int) string {
	return fmt.Sprintf("%s-%03d-%06d", p.AccountNumberPrefix, middle%1000, last%1000000)
}
