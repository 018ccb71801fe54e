package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks-io/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks-io/finbooks/internal/core/ports/repositories"
	portssvc "github.com/finbooks-io/finbooks/internal/core/ports/services"
	"github.com/finbooks-io/finbooks/internal/dto"
)

// reportingService builds read-only financial views over posted entries.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountSvc    portssvc.AccountService
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountSvc portssvc.AccountService) portssvc.ReportingService {
	return &reportingService{reportingRepo: reportingRepo, accountSvc: accountSvc}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance lists every account with posted activity up to asOf. The net
// balance column is signed by each account's normal side, so debit and credit
// totals reconcile while asset and revenue accounts both read positive when
// healthy.
func (s *reportingService) TrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*dto.TrialBalanceResponse, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, tenantID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trial balance data: %w", err)
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i := range rows {
		totalDebit = totalDebit.Add(rows[i].Debit)
		totalCredit = totalCredit.Add(rows[i].Credit)

		switch rows[i].AccountType {
		case domain.Asset, domain.Expense:
			rows[i].NetBalance = rows[i].Debit.Sub(rows[i].Credit)
		default:
			rows[i].NetBalance = rows[i].Credit.Sub(rows[i].Debit)
		}
	}

	return &dto.TrialBalanceResponse{
		AsOf:        asOf,
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
	}, nil
}

// GeneralLedger returns an account's posted lines within [from, to] with a
// running balance threaded from the opening balance.
func (s *reportingService) GeneralLedger(ctx context.Context, tenantID, accountID string, from, to time.Time) (*dto.GeneralLedgerResponse, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	opening, err := s.reportingRepo.GetAccountOpeningBalance(ctx, tenantID, accountID, from)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch opening balance: %w", err)
	}

	rows, err := s.reportingRepo.GetGeneralLedgerRows(ctx, tenantID, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger rows: %w", err)
	}

	running := opening
	debitNormal := account.IsDebitNormal()
	for i := range rows {
		if debitNormal {
			running = running.Add(rows[i].Debit).Sub(rows[i].Credit)
		} else {
			running = running.Add(rows[i].Credit).Sub(rows[i].Debit)
		}
		rows[i].RunningBalance = running
	}

	return &dto.GeneralLedgerResponse{
		AccountID:      accountID,
		From:           from,
		To:             to,
		OpeningBalance: opening,
		Rows:           rows,
	}, nil
}

// ProfitAndLoss nets revenue against expenses over [from, to].
func (s *reportingService) ProfitAndLoss(ctx context.Context, tenantID string, from, to time.Time) (*domain.PAndLReport, error) {
	revenue, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profit and loss data: %w", err)
	}

	totalRevenue := sumAmounts(revenue)
	totalExpenses := sumAmounts(expenses)

	return &domain.PAndLReport{
		Revenue:   revenue,
		Expenses:  expenses,
		NetProfit: totalRevenue.Sub(totalExpenses),
	}, nil
}

// BalanceSheet snapshots assets, liabilities and equity as of a date.
func (s *reportingService) BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	assets, liabilities, equity, err := s.reportingRepo.GetBalanceSheetData(ctx, tenantID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch balance sheet data: %w", err)
	}

	return &domain.BalanceSheetReport{
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      sumAmounts(assets),
		TotalLiabilities: sumAmounts(liabilities),
		TotalEquity:      sumAmounts(equity),
	}, nil
}

func sumAmounts(amounts []domain.AccountAmount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.NetAmount)
	}
	return total
}
