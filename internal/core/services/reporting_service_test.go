package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks-io/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks-io/finbooks/internal/core/ports/repositories"
	portssvc "github.com/finbooks-io/finbooks/internal/core/ports/services"
	"github.com/finbooks-io/finbooks/internal/core/services"
)

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetGeneralLedgerRows(ctx context.Context, tenantID, accountID string, from, to time.Time) ([]domain.GeneralLedgerRow, error) {
	args := m.Called(ctx, tenantID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneralLedgerRow), args.Error(1)
}

func (m *MockReportingRepository) GetAccountOpeningBalance(ctx context.Context, tenantID, accountID string, before time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, accountID, before)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) GetProfitAndLossData(ctx context.Context, tenantID string, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	args := m.Called(ctx, tenantID, from, to)
	var revenue, expenses []domain.AccountAmount
	if args.Get(0) != nil {
		revenue = args.Get(0).([]domain.AccountAmount)
	}
	if args.Get(1) != nil {
		expenses = args.Get(1).([]domain.AccountAmount)
	}
	return revenue, expenses, args.Error(2)
}

func (m *MockReportingRepository) GetBalanceSheetData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error) {
	args := m.Called(ctx, tenantID, asOf)
	var assets, liabilities, equity []domain.AccountAmount
	if args.Get(0) != nil {
		assets = args.Get(0).([]domain.AccountAmount)
	}
	if args.Get(1) != nil {
		liabilities = args.Get(1).([]domain.AccountAmount)
	}
	if args.Get(2) != nil {
		equity = args.Get(2).([]domain.AccountAmount)
	}
	return assets, liabilities, equity, args.Error(3)
}

// --- Test Suite ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockReportingRepository
	mockAccountSvc *MockAccountService
	service        portssvc.ReportingService
	tenantID       string
	asOf           time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewReportingService(suite.mockRepo, suite.mockAccountSvc)
	suite.tenantID = uuid.NewString()
	suite.asOf = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_SignsByNormalSide() {
	ctx := context.Background()
	rows := []domain.TrialBalanceRow{
		{AccountID: "a1", AccountCode: "1000", AccountType: domain.Asset, Debit: decimal.NewFromInt(500), Credit: decimal.NewFromInt(100)},
		{AccountID: "r1", AccountCode: "4000", AccountType: domain.Revenue, Debit: decimal.NewFromInt(0), Credit: decimal.NewFromInt(400)},
	}

	suite.mockRepo.On("GetTrialBalanceData", ctx, suite.tenantID, suite.asOf).Return(rows, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.tenantID, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 2)
	// Debit-normal account nets debit minus credit.
	suite.True(report.Rows[0].NetBalance.Equal(decimal.NewFromInt(400)))
	// Credit-normal account nets credit minus debit.
	suite.True(report.Rows[1].NetBalance.Equal(decimal.NewFromInt(400)))
	// Column totals reconcile: 500 debits, 500 credits.
	suite.True(report.TotalDebit.Equal(decimal.NewFromInt(500)))
	suite.True(report.TotalCredit.Equal(decimal.NewFromInt(500)))
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_RunningBalance() {
	ctx := context.Background()
	accountID := uuid.NewString()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := suite.asOf
	account := &domain.Account{
		AccountID:   accountID,
		TenantID:    suite.tenantID,
		AccountType: domain.Asset,
		IsActive:    true,
	}
	rows := []domain.GeneralLedgerRow{
		{EntryNumber: "JE-000001", Debit: decimal.NewFromInt(200)},
		{EntryNumber: "JE-000002", Credit: decimal.NewFromInt(50)},
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.tenantID, accountID).Return(account, nil).Once()
	suite.mockRepo.On("GetAccountOpeningBalance", ctx, suite.tenantID, accountID, from).Return(decimal.NewFromInt(100), nil).Once()
	suite.mockRepo.On("GetGeneralLedgerRows", ctx, suite.tenantID, accountID, from, to).Return(rows, nil).Once()

	report, err := suite.service.GeneralLedger(ctx, suite.tenantID, accountID, from, to)

	suite.Require().NoError(err)
	suite.True(report.OpeningBalance.Equal(decimal.NewFromInt(100)))
	suite.Require().Len(report.Rows, 2)
	suite.True(report.Rows[0].RunningBalance.Equal(decimal.NewFromInt(300)))
	suite.True(report.Rows[1].RunningBalance.Equal(decimal.NewFromInt(250)))
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_CreditNormalRunningBalance() {
	ctx := context.Background()
	accountID := uuid.NewString()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	account := &domain.Account{
		AccountID:   accountID,
		TenantID:    suite.tenantID,
		AccountType: domain.Liability,
		IsActive:    true,
	}
	rows := []domain.GeneralLedgerRow{
		{EntryNumber: "JE-000003", Credit: decimal.NewFromInt(80)},
		{EntryNumber: "JE-000004", Debit: decimal.NewFromInt(30)},
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.tenantID, accountID).Return(account, nil).Once()
	suite.mockRepo.On("GetAccountOpeningBalance", ctx, suite.tenantID, accountID, from).Return(decimal.Zero, nil).Once()
	suite.mockRepo.On("GetGeneralLedgerRows", ctx, suite.tenantID, accountID, from, suite.asOf).Return(rows, nil).Once()

	report, err := suite.service.GeneralLedger(ctx, suite.tenantID, accountID, from, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.Rows[0].RunningBalance.Equal(decimal.NewFromInt(80)))
	suite.True(report.Rows[1].RunningBalance.Equal(decimal.NewFromInt(50)))
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_NetProfit() {
	ctx := context.Background()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	revenue := []domain.AccountAmount{
		{AccountID: "r1", AccountCode: "4000", Name: "Sales", NetAmount: decimal.NewFromInt(1000)},
	}
	expenses := []domain.AccountAmount{
		{AccountID: "e1", AccountCode: "5000", Name: "Rent", NetAmount: decimal.NewFromInt(300)},
		{AccountID: "e2", AccountCode: "5100", Name: "Utilities", NetAmount: decimal.NewFromInt(100)},
	}

	suite.mockRepo.On("GetProfitAndLossData", ctx, suite.tenantID, from, suite.asOf).Return(revenue, expenses, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.tenantID, from, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.NetProfit.Equal(decimal.NewFromInt(600)))
	suite.Len(report.Expenses, 2)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_Totals() {
	ctx := context.Background()
	assets := []domain.AccountAmount{{AccountID: "a1", NetAmount: decimal.NewFromInt(900)}}
	liabilities := []domain.AccountAmount{{AccountID: "l1", NetAmount: decimal.NewFromInt(400)}}
	equity := []domain.AccountAmount{{AccountID: "q1", NetAmount: decimal.NewFromInt(500)}}

	suite.mockRepo.On("GetBalanceSheetData", ctx, suite.tenantID, suite.asOf).Return(assets, liabilities, equity, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.tenantID, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(900)))
	suite.True(report.TotalLiabilities.Equal(decimal.NewFromInt(400)))
	suite.True(report.TotalEquity.Equal(decimal.NewFromInt(500)))
	// The accounting identity holds: assets = liabilities + equity.
	suite.True(report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity)))
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
