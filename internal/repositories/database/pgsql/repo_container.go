package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/finbooks-io/finbooks/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository against a shared
// connection pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      newPgxAccountRepository(dbPool),
		CurrencyRepo:     newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		FiscalRepo:       newPgxFiscalRepository(dbPool),
		JournalRepo:      newPgxJournalRepository(dbPool),
		NumberAllocator:  newPgxEntryNumberAllocator(dbPool),
		ReportingRepo:    newPgxReportingRepository(dbPool),
	}
}
