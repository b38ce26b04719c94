package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// Constructed once at startup and handed to the service container.
type RepositoryProvider struct {
	CurrencyRepo CurrencyRepositoryFacade
	AccountRepo  AccountRepositoryFacade
	EntryRepo    EntryRepositoryFacade
	LedgerRepo   LedgerReader
	VoidRepo     VoidRepositoryFacade
}
