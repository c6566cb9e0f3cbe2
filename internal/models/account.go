package models

import "time"

// AuditFields holds the timestamps every persisted row carries.
type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Account is the row stored in the accounts table. Balance is in minor units.
type Account struct {
	ID            int64  `db:"id"`
	AccountNumber string `db:"account_number"`
	OwnerName     string `db:"owner_name"`
	Balance       int64  `db:"balance"`
	Status        string `db:"status"`
	PasswordHash  string `db:"password_hash"`
	Salt          string `db:"salt"`
	AuditFields          // Embed common audit fields
}
