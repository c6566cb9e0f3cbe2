package models

import "time"

// TransactionHistory is a row of the transaction_histories table.
// CounterpartyAccountID is NULL for deposits and withdrawals.
type TransactionHistory struct {
	ID                    int64     `db:"id"`
	AccountID             int64     `db:"account_id"`
	CounterpartyAccountID *int64    `db:"counterparty_account_id"`
	Type                  string    `db:"type"`
	Amount                int64     `db:"amount"`
	Fee                   int64     `db:"fee"`
	TransactedAt          time.Time `db:"transacted_at"`
}
