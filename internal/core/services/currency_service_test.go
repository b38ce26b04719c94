package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/apperrors"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	portssvc "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/services"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/services"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context, includeInactive bool) ([]domain.Currency, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) SetBaseCurrency(ctx context.Context, currencyID string, userID string, now time.Time) error {
	args := m.Called(ctx, currencyID, userID, now)
	return args.Error(0)
}

func (m *MockCurrencyRepository) DeactivateCurrency(ctx context.Context, currencyID string, userID string, now time.Time) error {
	args := m.Called(ctx, currencyID, userID, now)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindLatestRate(ctx context.Context, currencyID string) (*domain.CurrencyRate, error) {
	args := m.Called(ctx, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyRate), args.Error(1)
}

func (m *MockCurrencyRepository) ListLatestRates(ctx context.Context) ([]domain.CurrencyRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyRate), args.Error(1)
}

func (m *MockCurrencyRepository) SaveRate(ctx context.Context, rate domain.CurrencyRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Test Suite ---
type CurrencyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencyRepository
	service  portssvc.CurrencySvcFacade
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateCurrencyRequest{
		Code:   "sar",
		Name:   "Saudi Riyal",
		Symbol: "SR",
	}

	suite.mockRepo.On("FindCurrencyByCode", ctx, "SAR").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.Code == "SAR" && c.Name == req.Name && c.Symbol == req.Symbol &&
			!c.IsBase && c.IsActive && c.CreatedBy == creatorUserID
	})).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(currency)
	suite.Equal("SAR", currency.Code)
	suite.False(currency.IsBase)
	suite.Equal(creatorUserID, currency.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_AsBase() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateCurrencyRequest{Code: "USD", Name: "US Dollar", Symbol: "$", IsBase: true}

	suite.mockRepo.On("FindCurrencyByCode", ctx, "USD").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCurrency", ctx, mock.AnythingOfType("domain.Currency")).Return(nil).Once()
	suite.mockRepo.On("SetBaseCurrency", ctx, mock.AnythingOfType("string"), creatorUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.True(currency.IsBase)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Duplicate() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{Code: "EUR", Name: "Euro"}

	suite.mockRepo.On("FindCurrencyByCode", ctx, "EUR").Return(&domain.Currency{Code: "EUR"}, nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCurrency", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_BadCode() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{Code: "EURO", Name: "Euro"}

	currency, err := suite.service.CreateCurrency(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_SaveError() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{Code: "GBP", Name: "Pound Sterling"}
	expectedErr := assert.AnError

	suite.mockRepo.On("FindCurrencyByCode", ctx, "GBP").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCurrency", ctx, mock.AnythingOfType("domain.Currency")).Return(expectedErr).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestSetBaseCurrency_Inactive() {
	ctx := context.Background()
	currencyID := uuid.NewString()

	suite.mockRepo.On("FindCurrencyByID", ctx, currencyID).Return(&domain.Currency{
		CurrencyID: currencyID, Code: "EGP", IsActive: false,
	}, nil).Once()

	err := suite.service.SetBaseCurrency(ctx, currencyID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SetBaseCurrency", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestSetBaseCurrency_Success() {
	ctx := context.Background()
	currencyID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockRepo.On("FindCurrencyByID", ctx, currencyID).Return(&domain.Currency{
		CurrencyID: currencyID, Code: "EUR", IsActive: true,
	}, nil).Once()
	suite.mockRepo.On("SetBaseCurrency", ctx, currencyID, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.SetBaseCurrency(ctx, currencyID, userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestDeactivateCurrency_Base() {
	ctx := context.Background()
	currencyID := uuid.NewString()

	suite.mockRepo.On("FindCurrencyByID", ctx, currencyID).Return(&domain.Currency{
		CurrencyID: currencyID, Code: "USD", IsBase: true, IsActive: true,
	}, nil).Once()

	err := suite.service.DeactivateCurrency(ctx, currencyID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateCurrency", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestUpsertRate_Success() {
	ctx := context.Background()
	currencyID := uuid.NewString()
	creatorUserID := uuid.NewString()
	req := dto.UpsertRateRequest{
		CurrencyID: currencyID,
		RateToBase: decimal.RequireFromString("3.75"),
		Operator:   "MULTIPLY",
	}

	suite.mockRepo.On("FindCurrencyByID", ctx, currencyID).Return(&domain.Currency{
		CurrencyID: currencyID, Code: "SAR", IsActive: true,
	}, nil).Once()
	suite.mockRepo.On("SaveRate", ctx, mock.MatchedBy(func(r domain.CurrencyRate) bool {
		return r.CurrencyID == currencyID && r.RateToBase.Equal(req.RateToBase) &&
			r.Operator == domain.Multiply && r.CreatedBy == creatorUserID
	})).Return(nil).Once()

	rate, err := suite.service.UpsertRate(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.True(rate.RateToBase.Equal(req.RateToBase))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestUpsertRate_NonPositive() {
	ctx := context.Background()
	req := dto.UpsertRateRequest{
		CurrencyID: uuid.NewString(),
		RateToBase: decimal.Zero,
		Operator:   "MULTIPLY",
	}

	rate, err := suite.service.UpsertRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRate", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestUpsertRate_BaseCurrency() {
	ctx := context.Background()
	currencyID := uuid.NewString()
	req := dto.UpsertRateRequest{
		CurrencyID: currencyID,
		RateToBase: decimal.RequireFromString("1.5"),
		Operator:   "MULTIPLY",
	}

	suite.mockRepo.On("FindCurrencyByID", ctx, currencyID).Return(&domain.Currency{
		CurrencyID: currencyID, Code: "USD", IsBase: true, IsActive: true,
	}, nil).Once()

	rate, err := suite.service.UpsertRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRate", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestGetBaseCurrency_Success() {
	ctx := context.Background()
	expected := &domain.Currency{CurrencyID: uuid.NewString(), Code: "USD", IsBase: true, IsActive: true}

	suite.mockRepo.On("FindBaseCurrency", ctx).Return(expected, nil).Once()

	base, err := suite.service.GetBaseCurrency(ctx)

	suite.Require().NoError(err)
	suite.Equal(expected, base)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestListCurrencies_Success() {
	ctx := context.Background()
	expected := []domain.Currency{{Code: "USD"}, {Code: "SAR"}}

	suite.mockRepo.On("ListCurrencies", ctx, true).Return(expected, nil).Once()

	currencies, err := suite.service.ListCurrencies(ctx, true)

	suite.Require().NoError(err)
	suite.Len(currencies, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestCurrencyService(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
