package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/apperrors"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	portssvc "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/services"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/services"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type ConversionServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencyRepository
	service  portssvc.ConversionSvcFacade

	usdID string
	eurID string
	sarID string
}

func (suite *ConversionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencyRepository)
	suite.service = services.NewConversionService(suite.mockRepo)
	suite.usdID = uuid.NewString()
	suite.eurID = uuid.NewString()
	suite.sarID = uuid.NewString()
}

func (suite *ConversionServiceTestSuite) expectBaseUSD(ctx context.Context) {
	suite.mockRepo.On("FindBaseCurrency", ctx).Return(&domain.Currency{
		CurrencyID: suite.usdID, Code: "USD", IsBase: true, IsActive: true,
	}, nil).Once()
}

func (suite *ConversionServiceTestSuite) rate(currencyID, rateToBase string, op domain.RateOperator) *domain.CurrencyRate {
	return &domain.CurrencyRate{
		RateID:     uuid.NewString(),
		CurrencyID: currencyID,
		RateToBase: decimal.RequireFromString(rateToBase),
		Operator:   op,
	}
}

// --- Test Cases ---

func (suite *ConversionServiceTestSuite) TestConvert_SameCurrency_NoLookup() {
	ctx := context.Background()
	amount := decimal.RequireFromString("123.45")

	result, err := suite.service.Convert(ctx, amount, suite.eurID, suite.eurID)

	suite.Require().NoError(err)
	suite.True(result.Equal(amount))
	// The trivial path never touches the registry.
	suite.mockRepo.AssertNotCalled(suite.T(), "FindBaseCurrency", mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindLatestRate", mock.Anything, mock.Anything)
}

func (suite *ConversionServiceTestSuite) TestConvert_TowardBase_Multiply() {
	ctx := context.Background()
	suite.expectBaseUSD(ctx)
	suite.mockRepo.On("FindLatestRate", ctx, suite.eurID).Return(suite.rate(suite.eurID, "0.90", domain.Multiply), nil).Once()

	// 150 EUR at 0.90 EUR per USD yields 166.67 USD once rounded.
	result, err := suite.service.Convert(ctx, decimal.NewFromInt(150), suite.eurID, suite.usdID)

	suite.Require().NoError(err)
	suite.True(accounting.Round(result).Equal(decimal.RequireFromString("166.67")), "got %s", result)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestConvert_FromBase_Multiply() {
	ctx := context.Background()
	suite.expectBaseUSD(ctx)
	suite.mockRepo.On("FindLatestRate", ctx, suite.sarID).Return(suite.rate(suite.sarID, "3.75", domain.Multiply), nil).Once()

	// 500 USD at 3.75 SAR per USD yields 1875 SAR.
	result, err := suite.service.Convert(ctx, decimal.NewFromInt(500), suite.usdID, suite.sarID)

	suite.Require().NoError(err)
	suite.True(result.Equal(decimal.NewFromInt(1875)), "got %s", result)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestConvert_CrossCurrency_PivotsThroughBase() {
	ctx := context.Background()
	suite.expectBaseUSD(ctx)
	suite.mockRepo.On("FindLatestRate", ctx, suite.eurID).Return(suite.rate(suite.eurID, "0.90", domain.Multiply), nil).Once()
	suite.mockRepo.On("FindLatestRate", ctx, suite.sarID).Return(suite.rate(suite.sarID, "3.75", domain.Multiply), nil).Once()

	// 150 EUR -> 166.66.. USD -> 625 SAR.
	result, err := suite.service.Convert(ctx, decimal.NewFromInt(150), suite.eurID, suite.sarID)

	suite.Require().NoError(err)
	suite.True(accounting.Round(result).Equal(decimal.NewFromInt(625)), "got %s", result)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestConvert_DivideOperator() {
	ctx := context.Background()
	suite.expectBaseUSD(ctx)
	suite.mockRepo.On("FindLatestRate", ctx, suite.eurID).Return(suite.rate(suite.eurID, "1.25", domain.Divide), nil).Once()

	// Divide mirrors Multiply: going into base multiplies by the rate.
	result, err := suite.service.Convert(ctx, decimal.NewFromInt(100), suite.eurID, suite.usdID)

	suite.Require().NoError(err)
	suite.True(result.Equal(decimal.NewFromInt(125)), "got %s", result)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestConvert_RoundTrip_CrossCurrency() {
	ctx := context.Background()
	suite.mockRepo.On("FindBaseCurrency", ctx).Return(&domain.Currency{
		CurrencyID: suite.usdID, Code: "USD", IsBase: true, IsActive: true,
	}, nil).Twice()
	suite.mockRepo.On("FindLatestRate", ctx, suite.eurID).Return(suite.rate(suite.eurID, "0.90", domain.Multiply), nil).Twice()
	suite.mockRepo.On("FindLatestRate", ctx, suite.sarID).Return(suite.rate(suite.sarID, "3.75", domain.Multiply), nil).Twice()

	amount := decimal.NewFromInt(150)
	there, err := suite.service.Convert(ctx, amount, suite.eurID, suite.sarID)
	suite.Require().NoError(err)
	back, err := suite.service.Convert(ctx, there, suite.sarID, suite.eurID)
	suite.Require().NoError(err)

	// Division is capped at 16 decimal places, so converting there and back
	// may drift by a sliver far below the cent boundary, never more.
	suite.True(back.Sub(amount).Abs().LessThan(decimal.New(1, -9)), "got %s", back)
	suite.True(accounting.Round(back).Equal(amount), "got %s", back)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestConvert_RoundTrip_ThroughBaseExact() {
	ctx := context.Background()
	suite.mockRepo.On("FindBaseCurrency", ctx).Return(&domain.Currency{
		CurrencyID: suite.usdID, Code: "USD", IsBase: true, IsActive: true,
	}, nil).Twice()
	suite.mockRepo.On("FindLatestRate", ctx, suite.sarID).Return(suite.rate(suite.sarID, "3.75", domain.Multiply), nil).Twice()

	// 500 USD -> 1875 SAR -> 500 USD, exact in both directions.
	amount := decimal.NewFromInt(500)
	there, err := suite.service.Convert(ctx, amount, suite.usdID, suite.sarID)
	suite.Require().NoError(err)
	back, err := suite.service.Convert(ctx, there, suite.sarID, suite.usdID)
	suite.Require().NoError(err)

	suite.True(back.Equal(amount), "got %s", back)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestConvert_MissingRate() {
	ctx := context.Background()
	suite.expectBaseUSD(ctx)
	suite.mockRepo.On("FindLatestRate", ctx, suite.eurID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Convert(ctx, decimal.NewFromInt(10), suite.eurID, suite.usdID)

	suite.Require().Error(err)
	var convErr *apperrors.ConversionError
	suite.Require().ErrorAs(err, &convErr)
	suite.Equal(suite.eurID, convErr.CurrencyID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestConvert_NonPositiveRate() {
	ctx := context.Background()
	suite.expectBaseUSD(ctx)
	suite.mockRepo.On("FindLatestRate", ctx, suite.eurID).Return(suite.rate(suite.eurID, "0", domain.Multiply), nil).Once()

	_, err := suite.service.Convert(ctx, decimal.NewFromInt(10), suite.eurID, suite.usdID)

	suite.Require().Error(err)
	var convErr *apperrors.ConversionError
	suite.Require().ErrorAs(err, &convErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestConvert_NoBaseConfigured() {
	ctx := context.Background()
	suite.mockRepo.On("FindBaseCurrency", ctx).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Convert(ctx, decimal.NewFromInt(10), suite.eurID, suite.sarID)

	suite.Require().Error(err)
	var convErr *apperrors.ConversionError
	suite.Require().ErrorAs(err, &convErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestConvert_MultipleBases() {
	ctx := context.Background()
	suite.mockRepo.On("FindBaseCurrency", ctx).Return(nil, apperrors.ErrConflict).Once()

	_, err := suite.service.Convert(ctx, decimal.NewFromInt(10), suite.eurID, suite.sarID)

	suite.Require().Error(err)
	var convErr *apperrors.ConversionError
	suite.Require().ErrorAs(err, &convErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestResolveRate_SameCurrency() {
	ctx := context.Background()

	rate, err := suite.service.ResolveRate(ctx, suite.eurID, suite.eurID)

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
}

func (suite *ConversionServiceTestSuite) TestResolveRate_FromBase() {
	ctx := context.Background()
	suite.expectBaseUSD(ctx)
	suite.mockRepo.On("FindLatestRate", ctx, suite.sarID).Return(suite.rate(suite.sarID, "3.75", domain.Multiply), nil).Once()

	rate, err := suite.service.ResolveRate(ctx, suite.usdID, suite.sarID)

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.RequireFromString("3.75")), "got %s", rate)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestConversionService(t *testing.T) {
	suite.Run(t, new(ConversionServiceTestSuite))
}
