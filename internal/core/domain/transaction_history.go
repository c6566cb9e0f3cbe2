package domain

import (
	"fmt"
	"time"
)

// TransactionType classifies a balance-affecting event.
type TransactionType string

const (
	Withdraw        TransactionType = "WITHDRAW"
	Deposit         TransactionType = "DEPOSIT"
	TransferSend    TransactionType = "TRANSFER_SEND"
	TransferReceive TransactionType = "TRANSFER_RECEIVE"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case Withdraw, Deposit, TransferSend, TransferReceive:
		return true
	}
	return false
}

// TransactionHistory is one immutable ledger row. CounterpartyAccountID is a weak reference:
// the account it points to may have been deleted since.
type TransactionHistory struct {
	ID                    int64           `json:"id"`
	AccountID             int64           `json:"accountID"`
	CounterpartyAccountID *int64          `json:"counterpartyAccountID,omitempty"`
	Type                  TransactionType `json:"type"`
	Amount                Money           `json:"amount"`
	Fee                   Money           `json:"fee"`
	TransactedAt          time.Time       `json:"transactedAt"`
}

// NewTransactionHistory validates and builds a ledger row that has not been persisted yet.
func NewTransactionHistory(accountID int64, counterpartyID *int64, txnType TransactionType, amount, fee Money, transactedAt time.Time) (TransactionHistory, error) {
	if accountID == 0 {
		return TransactionHistory{}, fmt.Errorf("transaction history requires an account id")
	}
	if !txnType.IsValid() {
		return TransactionHistory{}, fmt.Errorf("unknown transaction type %q", txnType)
	}
	if amount < 0 || fee < 0 {
		return TransactionHistory{}, fmt.Errorf("amount and fee must not be negative (amount=%d, fee=%d)", amount, fee)
	}
	if fee != 0 && txnType != TransferSend {
		return TransactionHistory{}, fmt.Errorf("only %s rows carry a fee, got %s with fee %d", TransferSend, txnType, fee)
	}
	if transactedAt.IsZero() {
		return TransactionHistory{}, fmt.Errorf("transaction history requires a timestamp")
	}
	return TransactionHistory{
		AccountID:             accountID,
		CounterpartyAccountID: counterpartyID,
		Type:                  txnType,
		Amount:                amount,
		Fee:                   fee,
		TransactedAt:          transactedAt,
	}, nil
}

// SumAmounts totals the principal amount of the given rows.
func SumAmounts(histories []TransactionHistory) Money {
	var total Money
	for _, h := range histories {
		total += h.Amount
	}
	return total
}
