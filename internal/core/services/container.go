package services

import (
	portsrepo "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/repositories"
	portssvc "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/services"
)

// NewServiceContainer creates the service container with properly initialized
// dependencies. The capability checker and emitter are collaborators supplied
// by the adapters layer; the reopen hook may be nil.
func NewServiceContainer(
	repos *portsrepo.RepositoryProvider,
	capability portssvc.CapabilityChecker,
	emitter portssvc.EventEmitter,
	reopenHook portssvc.ReopenHook,
) *portssvc.ServiceContainer {
	currencySvc := NewCurrencyService(repos.CurrencyRepo)
	conversionSvc := NewConversionService(repos.CurrencyRepo)
	accountSvc := NewAccountService(repos.AccountRepo, repos.LedgerRepo, currencySvc)
	entrySvc := NewEntryService(repos.EntryRepo, accountSvc, conversionSvc, capability, emitter)
	ledgerSvc := NewLedgerService(repos.LedgerRepo, repos.AccountRepo)
	voidSvc := NewVoidService(repos.VoidRepo, repos.EntryRepo, repos.LedgerRepo, capability, emitter, reopenHook)

	return &portssvc.ServiceContainer{
		Currency:   currencySvc,
		Conversion: conversionSvc,
		Account:    accountSvc,
		Entry:      entrySvc,
		Ledger:     ledgerSvc,
		Void:       voidSvc,
	}
}
