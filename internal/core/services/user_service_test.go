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

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo     *MockUserRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.UserSvcFacade

	userID string
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockCurrencyRepo, "GHS")
	suite.userID = uuid.NewString()
}

func (suite *UserServiceTestSuite) TestCreateUser_DefaultsBaseCurrency() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Username: "ama"}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "GHS").Return(&domain.Currency{CurrencyCode: "GHS", IsActive: true}, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == suite.userID && u.Username == "ama" && u.BaseCurrencyCode == "GHS"
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal("GHS", user.BaseCurrencyCode)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_ExplicitBaseCurrency() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Username: "kofi", BaseCurrencyCode: "EUR"}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(&domain.Currency{CurrencyCode: "EUR", IsActive: true}, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.BaseCurrencyCode == "EUR"
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal("EUR", user.BaseCurrencyCode)
}

func (suite *UserServiceTestSuite) TestCreateUser_UnknownBaseCurrency() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Username: "ama", BaseCurrencyCode: "ZZZ"}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "ZZZ").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateUser(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser")
}

func (suite *UserServiceTestSuite) TestUpdateUser_ForbiddenForOtherUsers() {
	ctx := context.Background()
	otherID := uuid.NewString()
	name := "impostor"

	_, err := suite.service.UpdateUser(ctx, otherID, dto.UpdateUserRequest{Username: &name}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser")
}

func (suite *UserServiceTestSuite) TestUpdateUser_AppliesUsername() {
	ctx := context.Background()
	existing := &domain.User{UserID: suite.userID, Username: "ama", BaseCurrencyCode: "GHS"}
	newName := "ama.k"

	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).Return(existing, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == newName && u.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	user, err := suite.service.UpdateUser(ctx, suite.userID, dto.UpdateUserRequest{Username: &newName}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newName, user.Username)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetUserByID(ctx, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
