package mapping

import (
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	"github.com/SscSPs/money_transfer_service/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d *domain.Account) models.Account {
	state := d.State()
	return models.Account{
		ID:            state.ID,
		AccountNumber: state.AccountNumber,
		OwnerName:     state.OwnerName,
		Balance:       int64(state.Balance),
		Status:        string(state.Status),
		PasswordHash:  state.Credential.PasswordHash,
		Salt:          state.Credential.Salt,
		AuditFields:   ToModelAuditFields(state.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
// It fails when the stored row violates an account invariant, e.g. a negative balance.
func ToDomainAccount(m models.Account) (*domain.Account, error) {
	return domain.RestoreAccount(domain.AccountState{
		ID:            m.ID,
		AccountNumber: m.AccountNumber,
		OwnerName:     m.OwnerName,
		Balance:       domain.Money(m.Balance),
		Status:        domain.AccountStatus(m.Status),
		Credential: domain.Credential{
			PasswordHash: m.PasswordHash,
			Salt:         m.Salt,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	})
}
