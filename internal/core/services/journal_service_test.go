package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks-io/finbooks/internal/apperrors"
	"github.com/finbooks-io/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks-io/finbooks/internal/core/ports/repositories"
	portssvc "github.com/finbooks-io/finbooks/internal/core/ports/services"
	"github.com/finbooks-io/finbooks/internal/core/services"
	"github.com/finbooks-io/finbooks/internal/dto"
)

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepository = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, tenantID string, limit int, nextToken *string, status *domain.EntryStatus) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken, status)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) UpdateDraft(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteDraft(ctx context.Context, tenantID, entryID string) error {
	args := m.Called(ctx, tenantID, entryID)
	return args.Error(0)
}

func (m *MockJournalRepository) PostEntry(ctx context.Context, tenantID, entryID, posterUserID string, postedAt time.Time) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, posterUserID, postedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock EntryNumberAllocator ---

type MockNumberAllocator struct {
	mock.Mock
}

var _ portsrepo.EntryNumberAllocator = (*MockNumberAllocator)(nil)

func (m *MockNumberAllocator) AllocateEntryNumber(ctx context.Context, tenantID string) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}

// --- Mock AccountService ---

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountService = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, tenantID, accountID, userID string) error {
	args := m.Called(ctx, tenantID, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, tenantID, accountID string) error {
	args := m.Called(ctx, tenantID, accountID)
	return args.Error(0)
}

// --- Mock ExchangeRateService ---

type MockExchangeRateService struct {
	mock.Mock
}

var _ portssvc.ExchangeRateService = (*MockExchangeRateService)(nil)

func (m *MockExchangeRateService) CreateExchangeRate(ctx context.Context, tenantID string, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) RateAt(ctx context.Context, tenantID, currencyCode string, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, currencyCode, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock FiscalService ---

type MockFiscalService struct {
	mock.Mock
}

var _ portssvc.FiscalService = (*MockFiscalService)(nil)

func (m *MockFiscalService) CreateFiscalYear(ctx context.Context, tenantID string, req dto.CreateFiscalYearRequest, creatorUserID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalService) GetFiscalYearByID(ctx context.Context, tenantID, fiscalYearID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, tenantID, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalService) ListFiscalYears(ctx context.Context, tenantID string) ([]domain.FiscalYear, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalService) CloseFiscalYear(ctx context.Context, tenantID, fiscalYearID, userID string) error {
	args := m.Called(ctx, tenantID, fiscalYearID, userID)
	return args.Error(0)
}

func (m *MockFiscalService) CreateFiscalPeriod(ctx context.Context, tenantID, fiscalYearID string, req dto.CreateFiscalPeriodRequest, creatorUserID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, fiscalYearID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalService) ListFiscalPeriods(ctx context.Context, tenantID, fiscalYearID string) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalService) GetFiscalPeriodByID(ctx context.Context, tenantID, fiscalPeriodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, fiscalPeriodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalService) ResolvePeriod(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalService) LockPeriod(ctx context.Context, tenantID, fiscalPeriodID, userID string) error {
	args := m.Called(ctx, tenantID, fiscalPeriodID, userID)
	return args.Error(0)
}

// --- Mock EventPublisher ---

type MockEventPublisher struct {
	mock.Mock
}

var _ portssvc.EventPublisher = (*MockEventPublisher)(nil)

func (m *MockEventPublisher) PublishJournalEntryPosted(ctx context.Context, event domain.JournalEntryPosted) {
	m.Called(ctx, event)
}

// --- Test Suite Setup ---

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockAllocator    *MockNumberAllocator
	mockAccountSvc   *MockAccountService
	mockCurrencySvc  *MockCurrencyService
	mockRateSvc      *MockExchangeRateService
	mockFiscalSvc    *MockFiscalService
	mockPublisher    *MockEventPublisher
	service          portssvc.JournalService
	tenantID         string
	userID           string
	period           domain.FiscalPeriod
	assetAccount     domain.Account
	liabilityAccount domain.Account
	usd              domain.Currency
	entryDate        time.Time
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAllocator = new(MockNumberAllocator)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockCurrencySvc = new(MockCurrencyService)
	suite.mockRateSvc = new(MockExchangeRateService)
	suite.mockFiscalSvc = new(MockFiscalService)
	suite.mockPublisher = new(MockEventPublisher)
	suite.service = services.NewJournalService(
		suite.mockJournalRepo,
		suite.mockAllocator,
		suite.mockAccountSvc,
		suite.mockCurrencySvc,
		suite.mockRateSvc,
		suite.mockFiscalSvc,
		suite.mockPublisher,
	)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.entryDate = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	suite.period = domain.FiscalPeriod{
		FiscalPeriodID: uuid.NewString(),
		TenantID:       suite.tenantID,
		FiscalYearID:   uuid.NewString(),
		Code:           "2025-03",
		StartDate:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		IsActive:       true,
	}
	suite.assetAccount = domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "1000",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.liabilityAccount = domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "2000",
		AccountType: domain.Liability,
		IsActive:    true,
	}
	suite.usd = domain.Currency{
		CurrencyID:     uuid.NewString(),
		TenantID:       suite.tenantID,
		Code:           "USD",
		DecimalPlaces:  2,
		IsBaseCurrency: true,
		IsActive:       true,
	}
}

// expectLineLookups wires the happy-path account, currency and rate lookups
// for a two-line USD entry against the asset and liability accounts.
func (suite *JournalServiceTestSuite) expectLineLookups(ctx context.Context) {
	accountsMap := map[string]domain.Account{
		suite.assetAccount.AccountID:     suite.assetAccount,
		suite.liabilityAccount.AccountID: suite.liabilityAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(accountsMap, nil).Once()
	suite.mockCurrencySvc.On("GetCurrenciesByCodes", ctx, suite.tenantID, []string{"USD"}).
		Return(map[string]domain.Currency{"USD": suite.usd}, nil).Once()
	suite.mockRateSvc.On("RateAt", ctx, suite.tenantID, "USD", suite.entryDate).
		Return(decimal.NewFromInt(1), nil).Once()
}

func (suite *JournalServiceTestSuite) twoLineRequest(debit, credit decimal.Decimal) dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		EntryDate:   suite.entryDate,
		Description: "Office rent accrual",
		Lines: []dto.JournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, CurrencyCode: "USD", Debit: debit},
			{AccountID: suite.liabilityAccount.AccountID, CurrencyCode: "USD", Credit: credit},
		},
	}
}

// --- CreateDraft ---

func (suite *JournalServiceTestSuite) TestCreateDraft_Success() {
	ctx := context.Background()
	req := suite.twoLineRequest(decimal.NewFromInt(100), decimal.NewFromInt(100))

	suite.mockFiscalSvc.On("ResolvePeriod", ctx, suite.tenantID, suite.entryDate).Return(&suite.period, nil).Once()
	suite.expectLineLookups(ctx)
	suite.mockAllocator.On("AllocateEntryNumber", ctx, suite.tenantID).Return("JE-000001", nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	entry, err := suite.service.CreateDraft(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.Draft, entry.Status)
	suite.Equal("JE-000001", entry.EntryNumber)
	suite.Equal(suite.period.FiscalPeriodID, entry.FiscalPeriodID)
	suite.Equal(suite.period.FiscalYearID, entry.FiscalYearID)
	suite.Equal(domain.RefManual, entry.Reference.Kind)
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.Require().Len(entry.Lines, 2)
	suite.Equal(1, entry.Lines[0].LineNumber)
	suite.Equal(2, entry.Lines[1].LineNumber)
	suite.True(entry.Lines[0].AmountBase.Equal(decimal.NewFromInt(100)))

	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAllocator.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateDraft_WithinTolerance() {
	ctx := context.Background()
	// 100.00 vs 100.009 differs by less than a cent.
	req := suite.twoLineRequest(decimal.RequireFromString("100.00"), decimal.RequireFromString("100.009"))

	suite.mockFiscalSvc.On("ResolvePeriod", ctx, suite.tenantID, suite.entryDate).Return(&suite.period, nil).Once()
	suite.expectLineLookups(ctx)
	suite.mockAllocator.On("AllocateEntryNumber", ctx, suite.tenantID).Return("JE-000002", nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.CreateDraft(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(entry)
}

func (suite *JournalServiceTestSuite) TestCreateDraft_Imbalanced() {
	ctx := context.Background()
	req := suite.twoLineRequest(decimal.NewFromInt(100), decimal.RequireFromString("100.02"))

	suite.mockFiscalSvc.On("ResolvePeriod", ctx, suite.tenantID, suite.entryDate).Return(&suite.period, nil).Once()
	suite.expectLineLookups(ctx)

	_, err := suite.service.CreateDraft(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	var imbalanced domain.ImbalancedEntryError
	suite.Require().ErrorAs(err, &imbalanced)
	suite.True(imbalanced.Debits.Equal(decimal.NewFromInt(100)))
	suite.True(imbalanced.Credits.Equal(decimal.RequireFromString("100.02")))
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateDraft_LineWithBothSides() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   suite.entryDate,
		Description: "Broken line",
		Lines: []dto.JournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, CurrencyCode: "USD", Debit: decimal.NewFromInt(50), Credit: decimal.NewFromInt(50)},
			{AccountID: suite.liabilityAccount.AccountID, CurrencyCode: "USD", Credit: decimal.NewFromInt(50)},
		},
	}

	suite.mockFiscalSvc.On("ResolvePeriod", ctx, suite.tenantID, suite.entryDate).Return(&suite.period, nil).Once()

	_, err := suite.service.CreateDraft(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	var unbalanced domain.UnbalancedLineError
	suite.Require().ErrorAs(err, &unbalanced)
	suite.Equal(0, unbalanced.Line)
	// Malformed lines are rejected before any account or currency lookups.
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetAccountsByIDs", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateDraft_UnknownAccount() {
	ctx := context.Background()
	req := suite.twoLineRequest(decimal.NewFromInt(100), decimal.NewFromInt(100))

	suite.mockFiscalSvc.On("ResolvePeriod", ctx, suite.tenantID, suite.entryDate).Return(&suite.period, nil).Once()
	// Only the asset account comes back; the liability ID is foreign.
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.tenantID, mock.Anything).
		Return(map[string]domain.Account{suite.assetAccount.AccountID: suite.assetAccount}, nil).Once()

	_, err := suite.service.CreateDraft(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrCrossTenantReference)
}

func (suite *JournalServiceTestSuite) TestCreateDraft_InactiveAccount() {
	ctx := context.Background()
	req := suite.twoLineRequest(decimal.NewFromInt(100), decimal.NewFromInt(100))

	inactive := suite.liabilityAccount
	inactive.IsActive = false
	accountsMap := map[string]domain.Account{
		suite.assetAccount.AccountID: suite.assetAccount,
		inactive.AccountID:           inactive,
	}
	suite.mockFiscalSvc.On("ResolvePeriod", ctx, suite.tenantID, suite.entryDate).Return(&suite.period, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateDraft(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateDraft_NoPeriodForDate() {
	ctx := context.Background()
	req := suite.twoLineRequest(decimal.NewFromInt(100), decimal.NewFromInt(100))

	suite.mockFiscalSvc.On("ResolvePeriod", ctx, suite.tenantID, suite.entryDate).
		Return(nil, domain.ErrNoPeriodFound).Once()

	_, err := suite.service.CreateDraft(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrNoPeriodFound)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetAccountsByIDs", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateDraft_RateUnavailable() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   suite.entryDate,
		Description: "EUR invoice",
		Lines: []dto.JournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, CurrencyCode: "EUR", Debit: decimal.NewFromInt(100)},
			{AccountID: suite.liabilityAccount.AccountID, CurrencyCode: "EUR", Credit: decimal.NewFromInt(100)},
		},
	}
	eur := domain.Currency{CurrencyID: uuid.NewString(), TenantID: suite.tenantID, Code: "EUR", IsActive: true}

	suite.mockFiscalSvc.On("ResolvePeriod", ctx, suite.tenantID, suite.entryDate).Return(&suite.period, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.tenantID, mock.Anything).
		Return(map[string]domain.Account{
			suite.assetAccount.AccountID:     suite.assetAccount,
			suite.liabilityAccount.AccountID: suite.liabilityAccount,
		}, nil).Once()
	suite.mockCurrencySvc.On("GetCurrenciesByCodes", ctx, suite.tenantID, []string{"EUR"}).
		Return(map[string]domain.Currency{"EUR": eur}, nil).Once()
	suite.mockRateSvc.On("RateAt", ctx, suite.tenantID, "EUR", suite.entryDate).
		Return(decimal.Zero, domain.ErrRateUnavailable).Once()

	_, err := suite.service.CreateDraft(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrRateUnavailable)
}

func (suite *JournalServiceTestSuite) TestCreateDraft_MultiCurrencyBaseConversion() {
	ctx := context.Background()
	// 100 EUR at 1.10 balances 110 USD.
	req := dto.CreateJournalEntryRequest{
		EntryDate:   suite.entryDate,
		Description: "EUR receivable",
		Lines: []dto.JournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, CurrencyCode: "EUR", Debit: decimal.NewFromInt(100)},
			{AccountID: suite.liabilityAccount.AccountID, CurrencyCode: "USD", Credit: decimal.NewFromInt(110)},
		},
	}
	eur := domain.Currency{CurrencyID: uuid.NewString(), TenantID: suite.tenantID, Code: "EUR", IsActive: true}

	suite.mockFiscalSvc.On("ResolvePeriod", ctx, suite.tenantID, suite.entryDate).Return(&suite.period, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.tenantID, mock.Anything).
		Return(map[string]domain.Account{
			suite.assetAccount.AccountID:     suite.assetAccount,
			suite.liabilityAccount.AccountID: suite.liabilityAccount,
		}, nil).Once()
	suite.mockCurrencySvc.On("GetCurrenciesByCodes", ctx, suite.tenantID, []string{"EUR", "USD"}).
		Return(map[string]domain.Currency{"EUR": eur, "USD": suite.usd}, nil).Once()
	suite.mockRateSvc.On("RateAt", ctx, suite.tenantID, "EUR", suite.entryDate).
		Return(decimal.RequireFromString("1.10"), nil).Once()
	suite.mockRateSvc.On("RateAt", ctx, suite.tenantID, "USD", suite.entryDate).
		Return(decimal.NewFromInt(1), nil).Once()
	suite.mockAllocator.On("AllocateEntryNumber", ctx, suite.tenantID).Return("JE-000003", nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.CreateDraft(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(entry.Lines, 2)
	suite.True(entry.Lines[0].AmountBase.Equal(decimal.NewFromInt(110)))
	suite.True(entry.Lines[1].AmountBase.Equal(decimal.NewFromInt(110)))
}

// --- Post ---

func (suite *JournalServiceTestSuite) TestPost_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:      entryID,
		TenantID:     suite.tenantID,
		EntryNumber:  "JE-000001",
		FiscalYearID: suite.period.FiscalYearID,
		Status:       domain.Draft,
	}
	posted := *draft
	posted.Status = domain.Posted
	posted.PostedBy = &suite.userID

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(draft, nil).Once()
	suite.mockFiscalSvc.On("GetFiscalYearByID", ctx, suite.tenantID, suite.period.FiscalYearID).
		Return(&domain.FiscalYear{FiscalYearID: suite.period.FiscalYearID, IsClosed: false}, nil).Once()
	suite.mockJournalRepo.On("PostEntry", ctx, suite.tenantID, entryID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(&posted, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.JournalLine{}, nil).Once()
	suite.mockPublisher.On("PublishJournalEntryPosted", ctx, mock.AnythingOfType("domain.JournalEntryPosted")).Return().Once()

	result, err := suite.service.Post(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, result.Status)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPost_AlreadyPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{
		EntryID:  entryID,
		TenantID: suite.tenantID,
		Status:   domain.Posted,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(entry, nil).Once()

	_, err := suite.service.Post(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrEntryAlreadyPosted)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPost_ClosedFiscalYear() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:      entryID,
		TenantID:     suite.tenantID,
		FiscalYearID: suite.period.FiscalYearID,
		Status:       domain.Draft,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(draft, nil).Once()
	suite.mockFiscalSvc.On("GetFiscalYearByID", ctx, suite.tenantID, suite.period.FiscalYearID).
		Return(&domain.FiscalYear{FiscalYearID: suite.period.FiscalYearID, IsClosed: true}, nil).Once()

	_, err := suite.service.Post(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrFiscalYearClosed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPost_LockedPeriodFromRepo() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:      entryID,
		TenantID:     suite.tenantID,
		FiscalYearID: suite.period.FiscalYearID,
		Status:       domain.Draft,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(draft, nil).Once()
	suite.mockFiscalSvc.On("GetFiscalYearByID", ctx, suite.tenantID, suite.period.FiscalYearID).
		Return(&domain.FiscalYear{FiscalYearID: suite.period.FiscalYearID}, nil).Once()
	suite.mockJournalRepo.On("PostEntry", ctx, suite.tenantID, entryID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil, domain.ErrPeriodLocked).Once()

	_, err := suite.service.Post(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrPeriodLocked)
	suite.mockPublisher.AssertNotCalled(suite.T(), "PublishJournalEntryPosted", mock.Anything, mock.Anything)
}

// --- UpdateDraft ---

func (suite *JournalServiceTestSuite) TestUpdateDraft_PostedEntry() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{
		EntryID:  entryID,
		TenantID: suite.tenantID,
		Status:   domain.Posted,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(entry, nil).Once()

	newDesc := "should not apply"
	_, err := suite.service.UpdateDraft(ctx, suite.tenantID, entryID, dto.UpdateJournalEntryRequest{Description: &newDesc}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrEntryAlreadyPosted)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateDraft", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateDraft_LockedPeriod() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{
		EntryID:   entryID,
		TenantID:  suite.tenantID,
		EntryDate: suite.entryDate,
		Status:    domain.Draft,
	}
	locked := suite.period
	locked.IsLocked = true

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(entry, nil).Once()
	suite.mockFiscalSvc.On("ResolvePeriod", ctx, suite.tenantID, suite.entryDate).Return(&locked, nil).Once()

	newDesc := "edit in locked period"
	_, err := suite.service.UpdateDraft(ctx, suite.tenantID, entryID, dto.UpdateJournalEntryRequest{Description: &newDesc}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrPeriodLocked)
}

func (suite *JournalServiceTestSuite) TestUpdateDraft_HeaderOnly() {
	ctx := context.Background()
	entryID := uuid.NewString()
	existingLines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, Debit: decimal.NewFromInt(40), LineNumber: 1},
		{LineID: uuid.NewString(), EntryID: entryID, Credit: decimal.NewFromInt(40), LineNumber: 2},
	}
	entry := &domain.JournalEntry{
		EntryID:   entryID,
		TenantID:  suite.tenantID,
		EntryDate: suite.entryDate,
		Status:    domain.Draft,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(entry, nil).Once()
	suite.mockFiscalSvc.On("ResolvePeriod", ctx, suite.tenantID, suite.entryDate).Return(&suite.period, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(existingLines, nil).Once()
	suite.mockJournalRepo.On("UpdateDraft", ctx, mock.AnythingOfType("domain.JournalEntry"), existingLines).Return(nil).Once()

	newDesc := "corrected description"
	updated, err := suite.service.UpdateDraft(ctx, suite.tenantID, entryID, dto.UpdateJournalEntryRequest{Description: &newDesc}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newDesc, updated.Description)
	suite.Equal(suite.userID, updated.LastUpdatedBy)
	suite.Len(updated.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// --- Reverse ---

func (suite *JournalServiceTestSuite) TestReverse_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	postedBy := suite.userID
	original := &domain.JournalEntry{
		EntryID:     entryID,
		TenantID:    suite.tenantID,
		EntryNumber: "JE-000001",
		Status:      domain.Posted,
		PostedBy:    &postedBy,
	}
	originalLines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.assetAccount.AccountID, CurrencyCode: "USD", Debit: decimal.NewFromInt(75), AmountBase: decimal.NewFromInt(75), LineNumber: 1},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.liabilityAccount.AccountID, CurrencyCode: "USD", Credit: decimal.NewFromInt(75), AmountBase: decimal.NewFromInt(75), LineNumber: 2},
	}
	reversalDate := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(originalLines, nil).Once()
	suite.mockFiscalSvc.On("ResolvePeriod", ctx, suite.tenantID, reversalDate).Return(&suite.period, nil).Once()
	suite.mockAllocator.On("AllocateEntryNumber", ctx, suite.tenantID).Return("JE-000002", nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	reversal, err := suite.service.Reverse(ctx, suite.tenantID, entryID, reversalDate, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Draft, reversal.Status)
	suite.Equal(domain.RefReversal, reversal.Reference.Kind)
	suite.Equal(entryID, reversal.Reference.ID)
	suite.Require().Len(reversal.Lines, 2)
	// Sides swap, magnitudes stay.
	suite.True(reversal.Lines[0].Credit.Equal(decimal.NewFromInt(75)))
	suite.True(reversal.Lines[0].Debit.IsZero())
	suite.True(reversal.Lines[1].Debit.Equal(decimal.NewFromInt(75)))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverse_DraftEntry() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:  entryID,
		TenantID: suite.tenantID,
		Status:   domain.Draft,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.JournalLine{}, nil).Once()

	_, err := suite.service.Reverse(ctx, suite.tenantID, entryID, suite.entryDate, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- DeleteDraft ---

func (suite *JournalServiceTestSuite) TestDeleteDraft_PostedEntry() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockJournalRepo.On("DeleteDraft", ctx, suite.tenantID, entryID).Return(domain.ErrEntryAlreadyPosted).Once()

	err := suite.service.DeleteDraft(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrEntryAlreadyPosted)
}

// --- ListEntries ---

func (suite *JournalServiceTestSuite) TestListEntries_DefaultLimit() {
	ctx := context.Background()

	suite.mockJournalRepo.On("ListEntries", ctx, suite.tenantID, 20, (*string)(nil), (*domain.EntryStatus)(nil)).
		Return([]domain.JournalEntry{}, nil, nil).Once()

	resp, err := suite.service.ListEntries(ctx, suite.tenantID, dto.ListJournalEntriesParams{})

	suite.Require().NoError(err)
	suite.Empty(resp.Entries)
	suite.Nil(resp.NextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestListEntries_StatusFilter() {
	ctx := context.Background()
	statusStr := "POSTED"
	posted := domain.Posted

	suite.mockJournalRepo.On("ListEntries", ctx, suite.tenantID, 20, (*string)(nil), &posted).
		Return([]domain.JournalEntry{{EntryID: uuid.NewString(), Status: domain.Posted}}, nil, nil).Once()

	resp, err := suite.service.ListEntries(ctx, suite.tenantID, dto.ListJournalEntriesParams{Status: &statusStr})

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 1)
	suite.Equal(domain.Posted, resp.Entries[0].Status)
}

func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
