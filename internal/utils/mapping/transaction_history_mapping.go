package mapping

import (
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	"github.com/SscSPs/money_transfer_service/internal/models"
)

// ToModelTransactionHistory converts a domain TransactionHistory to a model TransactionHistory
func ToModelTransactionHistory(d domain.TransactionHistory) models.TransactionHistory {
	return models.TransactionHistory{
		ID:                    d.ID,
		AccountID:             d.AccountID,
		CounterpartyAccountID: d.CounterpartyAccountID,
		Type:                  string(d.Type),
		Amount:                int64(d.Amount),
		Fee:                   int64(d.Fee),
		TransactedAt:          d.TransactedAt,
	}
}

// ToDomainTransactionHistory converts a model TransactionHistory to a domain TransactionHistory
func ToDomainTransactionHistory(m models.TransactionHistory) domain.TransactionHistory {
	return domain.TransactionHistory{
		ID:                    m.ID,
		AccountID:             m.AccountID,
		CounterpartyAccountID: m.CounterpartyAccountID,
		Type:                  domain.TransactionType(m.Type),
		Amount:                domain.Money(m.Amount),
		Fee:                   domain.Money(m.Fee),
		TransactedAt:          m.TransactedAt,
	}
}

// ToDomainTransactionHistorySlice converts a slice of model rows to domain rows
func ToDomainTransactionHistorySlice(ms []models.TransactionHistory) []domain.TransactionHistory {
	ds := make([]domain.TransactionHistory, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransactionHistory(m)
	}
	return ds
}
