package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks-io/finbooks/internal/apperrors"
	"github.com/finbooks-io/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks-io/finbooks/internal/core/ports/repositories"
	portssvc "github.com/finbooks-io/finbooks/internal/core/ports/services"
	"github.com/finbooks-io/finbooks/internal/core/services"
	"github.com/finbooks-io/finbooks/internal/dto"
)

// --- Mock CurrencyRepository ---

type MockCurrencyRepository struct {
	mock.Mock
}

var _ portsrepo.CurrencyRepository = (*MockCurrencyRepository)(nil)

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency, markBase bool) error {
	args := m.Called(ctx, currency, markBase)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, tenantID, code string) (*domain.Currency, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindCurrenciesByCodes(ctx context.Context, tenantID string, codes []string) (map[string]domain.Currency, error) {
	args := m.Called(ctx, tenantID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context, tenantID string) ([]domain.Currency, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindBaseCurrency(ctx context.Context, tenantID string) (*domain.Currency, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SetBaseCurrency(ctx context.Context, tenantID, currencyID, userID string, now time.Time) error {
	args := m.Called(ctx, tenantID, currencyID, userID, now)
	return args.Error(0)
}

// --- Test Suite ---

type CurrencyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencyRepository
	service  portssvc.CurrencyService
	tenantID string
	userID   string
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockRepo)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_FirstBecomesBase() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{
		Code:          "USD",
		Name:          "US Dollar",
		Symbol:        "$",
		DecimalPlaces: 2,
	}

	suite.mockRepo.On("FindBaseCurrency", ctx, suite.tenantID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.IsBaseCurrency && c.Code == "USD"
	}), true).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(currency.IsBaseCurrency)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_SecondStaysForeign() {
	ctx := context.Background()
	base := &domain.Currency{CurrencyID: uuid.NewString(), Code: "USD", IsBaseCurrency: true}
	req := dto.CreateCurrencyRequest{
		Code:          "EUR",
		Name:          "Euro",
		Symbol:        "€",
		DecimalPlaces: 2,
	}

	suite.mockRepo.On("FindBaseCurrency", ctx, suite.tenantID).Return(base, nil).Once()
	suite.mockRepo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return !c.IsBaseCurrency && c.Code == "EUR"
	}), false).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.False(currency.IsBaseCurrency)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_ExplicitBaseMove() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{
		Code:           "GBP",
		Name:           "Pound Sterling",
		Symbol:         "£",
		DecimalPlaces:  2,
		IsBaseCurrency: true,
	}

	// The repository moves the base flag in one transaction; no prior lookup
	// is needed when the request asks for base explicitly.
	suite.mockRepo.On("SaveCurrency", ctx, mock.Anything, true).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(currency.IsBaseCurrency)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindBaseCurrency", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestSetBaseCurrency_Delegates() {
	ctx := context.Background()
	currencyID := uuid.NewString()

	suite.mockRepo.On("SetBaseCurrency", ctx, suite.tenantID, currencyID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.SetBaseCurrency(ctx, suite.tenantID, currencyID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestCurrencyService(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
