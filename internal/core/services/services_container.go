package services

import (
	portsrepo "github.com/finbooks-io/finbooks/internal/core/ports/repositories"
	portssvc "github.com/finbooks-io/finbooks/internal/core/ports/services"
)

// NewServicesProvider creates the service container with properly wired
// dependencies.
func NewServicesProvider(repos portsrepo.RepositoryProvider) *portssvc.ServicesProvider {
	provider := &portssvc.ServicesProvider{}

	provider.AccountSvc = NewAccountService(repos.AccountRepo)
	provider.CurrencySvc = NewCurrencyService(repos.CurrencyRepo)
	provider.ExchangeRateSvc = NewExchangeRateService(repos.ExchangeRateRepo, provider.CurrencySvc)
	provider.FiscalSvc = NewFiscalService(repos.FiscalRepo)
	provider.JournalSvc = NewJournalService(
		repos.JournalRepo,
		repos.NumberAllocator,
		provider.AccountSvc,
		provider.CurrencySvc,
		provider.ExchangeRateSvc,
		provider.FiscalSvc,
		NewLogEventPublisher(),
	)
	provider.ReportingSvc = NewReportingService(repos.ReportingRepo, provider.AccountSvc)

	return provider
}
