package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/KwakuBoohene/ackontant/internal/apperrors"
	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	portssvc "github.com/KwakuBoohene/ackontant/internal/core/ports/services"
	"github.com/KwakuBoohene/ackontant/internal/core/services"
	"github.com/KwakuBoohene/ackontant/internal/dto"
)

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo     *MockExchangeRateRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.ExchangeRateSvcFacade

	userID   string
	rateDate time.Time
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewExchangeRateService(suite.mockRateRepo, suite.mockCurrencyRepo)

	suite.userID = uuid.NewString()
	suite.rateDate = time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
}

func (suite *ExchangeRateServiceTestSuite) expectCurrencies(codes ...string) {
	for _, code := range codes {
		suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, code).
			Return(&domain.Currency{CurrencyCode: code, IsActive: true}, nil)
	}
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_UserOverrideWins() {
	ctx := context.Background()
	overrideID := uuid.NewString()

	suite.mockRateRepo.On("FindActiveUserRate", ctx, suite.userID, "USD", "GHS", suite.rateDate).
		Return(&domain.UserExchangeRate{
			UserExchangeRateID: overrideID,
			UserID:             suite.userID,
			FromCurrencyCode:   "USD",
			ToCurrencyCode:     "GHS",
			Rate:               decimal.RequireFromString("14.50"),
			RateDate:           suite.rateDate,
			IsActive:           true,
		}, nil).Once()

	resolved, err := suite.service.ResolveRate(ctx, suite.userID, "USD", "GHS", suite.rateDate)

	suite.Require().NoError(err)
	suite.Equal(domain.RateSourceUser, resolved.Source)
	suite.True(resolved.Rate.Equal(decimal.RequireFromString("14.50")))
	suite.Require().NotNil(resolved.UserExchangeRateID)
	suite.Equal(overrideID, *resolved.UserExchangeRateID)

	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindPlatformRate")
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_FallsBackToPlatform() {
	ctx := context.Background()

	suite.mockRateRepo.On("FindActiveUserRate", ctx, suite.userID, "USD", "GHS", suite.rateDate).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindPlatformRate", ctx, "USD", "GHS", suite.rateDate).
		Return(&domain.ExchangeRate{
			ExchangeRateID:   uuid.NewString(),
			FromCurrencyCode: "USD",
			ToCurrencyCode:   "GHS",
			Rate:             decimal.RequireFromString("15.00"),
			RateDate:         suite.rateDate,
		}, nil).Once()

	resolved, err := suite.service.ResolveRate(ctx, suite.userID, "USD", "GHS", suite.rateDate)

	suite.Require().NoError(err)
	suite.Equal(domain.RateSourcePlatform, resolved.Source)
	suite.True(resolved.Rate.Equal(decimal.RequireFromString("15.00")))
	suite.Nil(resolved.UserExchangeRateID)

	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_NoRateForDate() {
	ctx := context.Background()

	suite.mockRateRepo.On("FindActiveUserRate", ctx, suite.userID, "USD", "GHS", suite.rateDate).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindPlatformRate", ctx, "USD", "GHS", suite.rateDate).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ResolveRate(ctx, suite.userID, "USD", "GHS", suite.rateDate)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_IdentityPair() {
	ctx := context.Background()

	resolved, err := suite.service.ResolveRate(ctx, suite.userID, "GHS", "GHS", suite.rateDate)

	suite.Require().NoError(err)
	suite.True(resolved.Rate.Equal(decimal.NewFromInt(1)))
	suite.Equal(domain.RateSourcePlatform, resolved.Source)

	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindActiveUserRate")
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindPlatformRate")
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_NormalizesDateToUTC() {
	ctx := context.Background()
	// A timestamp late in the day still resolves on its UTC calendar date.
	noisy := time.Date(2024, 3, 20, 23, 45, 12, 0, time.UTC)

	suite.mockRateRepo.On("FindActiveUserRate", ctx, suite.userID, "USD", "GHS", suite.rateDate).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindPlatformRate", ctx, "USD", "GHS", suite.rateDate).
		Return(&domain.ExchangeRate{
			FromCurrencyCode: "USD",
			ToCurrencyCode:   "GHS",
			Rate:             decimal.RequireFromString("15.00"),
			RateDate:         suite.rateDate,
		}, nil).Once()

	_, err := suite.service.ResolveRate(ctx, suite.userID, "USD", "GHS", noisy)

	suite.Require().NoError(err)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertPlatformRate_RoundsAndPersists() {
	ctx := context.Background()
	suite.expectCurrencies("USD", "GHS")

	suite.mockRateRepo.On("UpsertPlatformRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.FromCurrencyCode == "USD" &&
			r.ToCurrencyCode == "GHS" &&
			r.Rate.Equal(decimal.RequireFromString("15.123457")) &&
			r.RateDate.Equal(suite.rateDate)
	})).Return(nil).Once()

	rate, err := suite.service.UpsertPlatformRate(ctx, dto.UpsertExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "GHS",
		Rate:             decimal.RequireFromString("15.1234567"),
		RateDate:         suite.rateDate.Add(9 * time.Hour),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(rate.Rate.Equal(decimal.RequireFromString("15.123457")))
	suite.True(rate.RateDate.Equal(suite.rateDate))

	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertPlatformRate_RejectsIdenticalPair() {
	ctx := context.Background()

	_, err := suite.service.UpsertPlatformRate(ctx, dto.UpsertExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "USD",
		Rate:             decimal.NewFromInt(1),
		RateDate:         suite.rateDate,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertPlatformRate_RejectsUnknownCurrency() {
	ctx := context.Background()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "USD").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpsertPlatformRate(ctx, dto.UpsertExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "GHS",
		Rate:             decimal.RequireFromString("15.00"),
		RateDate:         suite.rateDate,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateUserRate_SavesActiveOverride() {
	ctx := context.Background()
	suite.expectCurrencies("USD", "GHS")

	suite.mockRateRepo.On("SaveUserExchangeRate", ctx, mock.MatchedBy(func(r domain.UserExchangeRate) bool {
		return r.UserID == suite.userID &&
			r.FromCurrencyCode == "USD" &&
			r.ToCurrencyCode == "GHS" &&
			r.IsActive &&
			r.RateDate.Equal(suite.rateDate)
	})).Return(nil).Once()

	rate, err := suite.service.CreateUserRate(ctx, suite.userID, dto.CreateUserExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "GHS",
		Rate:             decimal.RequireFromString("14.50"),
		RateDate:         suite.rateDate,
		Note:             "bank rate",
	})

	suite.Require().NoError(err)
	suite.True(rate.IsActive)
	suite.Equal("bank rate", rate.Note)

	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetUserRateByID_ReturnsOwnRow() {
	ctx := context.Background()
	rateID := uuid.NewString()

	suite.mockRateRepo.On("FindUserExchangeRateByID", ctx, rateID).
		Return(&domain.UserExchangeRate{
			UserExchangeRateID: rateID,
			UserID:             suite.userID,
			FromCurrencyCode:   "USD",
			ToCurrencyCode:     "GHS",
			Rate:               decimal.RequireFromString("15.00"),
			IsActive:           true,
		}, nil).Once()

	rate, err := suite.service.GetUserRateByID(ctx, suite.userID, rateID)

	suite.Require().NoError(err)
	suite.Equal(rateID, rate.UserExchangeRateID)
	suite.Equal("USD", rate.FromCurrencyCode)
}

func (suite *ExchangeRateServiceTestSuite) TestGetUserRateByID_ForbidsOtherUsersRows() {
	ctx := context.Background()
	rateID := uuid.NewString()

	suite.mockRateRepo.On("FindUserExchangeRateByID", ctx, rateID).
		Return(&domain.UserExchangeRate{
			UserExchangeRateID: rateID,
			UserID:             uuid.NewString(),
			IsActive:           true,
		}, nil).Once()

	_, err := suite.service.GetUserRateByID(ctx, suite.userID, rateID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ExchangeRateServiceTestSuite) TestDeactivateUserRate_HidesOtherUsersRows() {
	ctx := context.Background()
	rateID := uuid.NewString()

	suite.mockRateRepo.On("FindUserExchangeRateByID", ctx, rateID).
		Return(&domain.UserExchangeRate{
			UserExchangeRateID: rateID,
			UserID:             uuid.NewString(),
			IsActive:           true,
		}, nil).Once()

	err := suite.service.DeactivateUserRate(ctx, suite.userID, rateID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "DeactivateUserExchangeRate")
}

func (suite *ExchangeRateServiceTestSuite) TestDeactivateUserRate_AlreadyInactive() {
	ctx := context.Background()
	rateID := uuid.NewString()

	suite.mockRateRepo.On("FindUserExchangeRateByID", ctx, rateID).
		Return(&domain.UserExchangeRate{
			UserExchangeRateID: rateID,
			UserID:             suite.userID,
			IsActive:           false,
		}, nil).Once()

	err := suite.service.DeactivateUserRate(ctx, suite.userID, rateID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *ExchangeRateServiceTestSuite) TestDeactivateUserRate_Success() {
	ctx := context.Background()
	rateID := uuid.NewString()

	suite.mockRateRepo.On("FindUserExchangeRateByID", ctx, rateID).
		Return(&domain.UserExchangeRate{
			UserExchangeRateID: rateID,
			UserID:             suite.userID,
			IsActive:           true,
		}, nil).Once()
	suite.mockRateRepo.On("DeactivateUserExchangeRate", ctx, rateID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.DeactivateUserRate(ctx, suite.userID, rateID)

	suite.Require().NoError(err)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
