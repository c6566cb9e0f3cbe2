package services

import (
	"fmt"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portsrepo "github.com/SscSPs/money_transfer_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_transfer_service/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(policy domain.LedgerPolicy, repos portsrepo.RepositoryProvider, options ...LedgerOption) (*portssvc.ServiceContainer, error) {
	ledger, err := NewLedgerService(repos, policy, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger service: %w", err)
	}
	return &portssvc.ServiceContainer{Ledger: ledger}, nil
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.LedgerSvcFacade = (*ledgerService)(nil)
)
