package domain

import "time"

// Counterparty placeholders used when a history row points at an account that can no
// longer be displayed normally.
const (
	DeletedOwnerPlaceholder         = "(deleted account)"
	UnknownAccountNumberPlaceholder = "N/A"
	UnknownOwnerPlaceholder         = "unknown"
)

// BalanceSnapshot is the post-operation balance of a single account.
type BalanceSnapshot struct {
	AccountNumber string
	OwnerName     string
	Balance       Money
}

// TransferResult is the outcome of a successful transfer. The fee is not echoed.
type TransferResult struct {
	From              BalanceSnapshot
	To                BalanceSnapshot
	TransferredAmount Money
}

// Counterparty is the display view of a history row's other side.
type Counterparty struct {
	AccountNumber string
	OwnerName     string
}

// HistoryEntry is one ledger row resolved for display.
type HistoryEntry struct {
	Type         TransactionType
	Amount       Money
	Fee          Money
	TransactedAt time.Time
	Counterparty *Counterparty
}

// AccountHistory is the newest-first history of one account.
type AccountHistory struct {
	AccountNumber string
	Entries       []HistoryEntry
}

// ResolveCounterparty renders acc for display on a history row. A nil account means the
// referenced id could not be resolved at all.
func ResolveCounterparty(acc *Account) Counterparty {
	if acc == nil {
		return Counterparty{AccountNumber: UnknownAccountNumberPlaceholder, OwnerName: UnknownOwnerPlaceholder}
	}
	if !acc.IsActive() {
		return Counterparty{AccountNumber: acc.AccountNumber, OwnerName: DeletedOwnerPlaceholder}
	}
	return Counterparty{AccountNumber: acc.AccountNumber, OwnerName: acc.OwnerName}
}
