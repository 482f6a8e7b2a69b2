package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/KwakuBoohene/ackontant/internal/apperrors"
	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	portssvc "github.com/KwakuBoohene/ackontant/internal/core/ports/services"
	"github.com/KwakuBoohene/ackontant/internal/core/services"
	"github.com/KwakuBoohene/ackontant/internal/dto"
)

type CurrencyServiceTestSuite struct {
	suite.Suite
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.CurrencySvcFacade

	userID string
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockCurrencyRepo)
	suite.userID = uuid.NewString()
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_DefaultsDecimalPlaces() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{
		CurrencyCode: "KES",
		Symbol:       "KSh",
		Name:         "Kenyan Shilling",
	}

	suite.mockCurrencyRepo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.CurrencyCode == "KES" &&
			c.DecimalPlaces == 2 &&
			c.IsActive &&
			!c.IsPlatformCurrency &&
			c.Source == domain.CurrencySourceUser
	})).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("KES", currency.CurrencyCode)
	suite.Equal(suite.userID, currency.CreatedBy)

	suite.mockCurrencyRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_RejectsBadDecimalPlaces() {
	ctx := context.Background()
	places := int16(9)
	req := dto.CreateCurrencyRequest{
		CurrencyCode:  "BTC",
		Symbol:        "₿",
		Name:          "Bitcoin",
		DecimalPlaces: &places,
	}

	_, err := suite.service.CreateCurrency(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCurrencyRepo.AssertNotCalled(suite.T(), "SaveCurrency")
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Duplicate() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{
		CurrencyCode: "USD",
		Symbol:       "$",
		Name:         "US Dollar",
	}

	suite.mockCurrencyRepo.On("SaveCurrency", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateCurrency(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *CurrencyServiceTestSuite) TestUpdateCurrency_OnlyDisplayFields() {
	ctx := context.Background()
	existing := &domain.Currency{
		CurrencyCode:  "GHS",
		Symbol:        "GH₵",
		Name:          "Ghana Cedi",
		DecimalPlaces: 2,
		IsActive:      true,
	}
	newSymbol := "₵"

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "GHS").Return(existing, nil).Once()
	suite.mockCurrencyRepo.On("UpdateCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.Symbol == newSymbol && c.Name == "Ghana Cedi" && c.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	currency, err := suite.service.UpdateCurrency(ctx, "GHS", dto.UpdateCurrencyRequest{Symbol: &newSymbol}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newSymbol, currency.Symbol)
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestUpdateCurrency_NoChangesSkipsWrite() {
	ctx := context.Background()
	existing := &domain.Currency{
		CurrencyCode: "GHS",
		Symbol:       "GH₵",
		Name:         "Ghana Cedi",
	}
	sameName := "Ghana Cedi"

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "GHS").Return(existing, nil).Once()

	_, err := suite.service.UpdateCurrency(ctx, "GHS", dto.UpdateCurrencyRequest{Name: &sameName}, suite.userID)

	suite.Require().NoError(err)
	suite.mockCurrencyRepo.AssertNotCalled(suite.T(), "UpdateCurrency")
}

func (suite *CurrencyServiceTestSuite) TestDeleteCurrency_BlockedByReferences() {
	ctx := context.Background()

	suite.mockCurrencyRepo.On("DeleteCurrency", ctx, "GHS").Return(apperrors.ErrValidation).Once()

	err := suite.service.DeleteCurrency(ctx, "GHS", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CurrencyServiceTestSuite) TestListCurrencies_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockCurrencyRepo.On("ListCurrencies", ctx, suite.userID).Return(nil, nil).Once()

	currencies, err := suite.service.ListCurrencies(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(currencies)
	suite.Empty(currencies)
}

func TestCurrencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
