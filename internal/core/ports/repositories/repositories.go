package repositories

// RepositoryProvider bundles every repository implementation for injection
// into the service container.
type RepositoryProvider struct {
	AccountRepo      AccountRepository
	CurrencyRepo     CurrencyRepository
	ExchangeRateRepo ExchangeRateRepository
	FiscalRepo       FiscalRepository
	JournalRepo      JournalRepository
	NumberAllocator  EntryNumberAllocator
	ReportingRepo    ReportingRepository
}
