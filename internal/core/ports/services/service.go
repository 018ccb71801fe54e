package services

// ServicesProvider bundles every service facade for injection into handlers.
type ServicesProvider struct {
	AccountSvc      AccountService
	CurrencySvc     CurrencyService
	ExchangeRateSvc ExchangeRateService
	FiscalSvc       FiscalService
	JournalSvc      JournalService
	ReportingSvc    ReportingService
}
