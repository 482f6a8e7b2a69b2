package services_test

import (
	"context"
	"testing"

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

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.AccountSvcFacade

	userID string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockCurrencyRepo)
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) activeCurrency(code string) *domain.Currency {
	return &domain.Currency{
		CurrencyCode:  code,
		Symbol:        "$",
		Name:          code,
		DecimalPlaces: 2,
		IsActive:      true,
	}
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:           "Wallet",
		AccountType:    domain.AccountCash,
		CurrencyCode:   "GHS",
		InitialBalance: decimal.RequireFromString("250.005"),
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "GHS").Return(suite.activeCurrency("GHS"), nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		// All three balances start equal, rounded to two places.
		return a.UserID == suite.userID &&
			a.InitialBalance.Equal(decimal.RequireFromString("250.01")) &&
			a.CurrentBalance.Equal(a.InitialBalance) &&
			a.BaseCurrencyBalance.Equal(a.InitialBalance) &&
			a.IsActive
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal("Wallet", account.Name)
	suite.Equal(suite.userID, account.CreatedBy)

	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownCurrency() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:         "Wallet",
		AccountType:  domain.AccountCash,
		CurrencyCode: "XXX",
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InactiveCurrency() {
	ctx := context.Background()
	inactive := suite.activeCurrency("GHS")
	inactive.IsActive = false
	req := dto.CreateAccountRequest{
		Name:         "Wallet",
		AccountType:  domain.AccountCash,
		CurrencyCode: "GHS",
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "GHS").Return(inactive, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NegativeInitialBalance() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:           "Wallet",
		AccountType:    domain.AccountCash,
		CurrencyCode:   "GHS",
		InitialBalance: decimal.RequireFromString("-1.00"),
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "GHS").Return(suite.activeCurrency("GHS"), nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_HidesOtherUsersAccounts() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID: uuid.NewString(),
		UserID:    uuid.NewString(),
		Name:      "Someone else's",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	_, err := suite.service.GetAccountByID(ctx, suite.userID, account.AccountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NoChangesSkipsWrite() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.userID,
		Name:        "Wallet",
		AccountType: domain.AccountCash,
		IsActive:    true,
	}
	sameName := "Wallet"

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	got, err := suite.service.UpdateAccount(ctx, suite.userID, account.AccountID, dto.UpdateAccountRequest{Name: &sameName})

	suite.Require().NoError(err)
	suite.Equal("Wallet", got.Name)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount")
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_AppliesChanges() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.userID,
		Name:        "Wallet",
		AccountType: domain.AccountCash,
		IsActive:    true,
	}
	newName := "Everyday Wallet"
	newType := domain.AccountMobile

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == newName && a.AccountType == newType && a.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	got, err := suite.service.UpdateAccount(ctx, suite.userID, account.AccountID, dto.UpdateAccountRequest{Name: &newName, AccountType: &newType})

	suite.Require().NoError(err)
	suite.Equal(newName, got.Name)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID: uuid.NewString(),
		UserID:    suite.userID,
		IsActive:  true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", ctx, account.AccountID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.userID, account.AccountID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockAccountRepo.On("ListAccountsByUser", ctx, suite.userID, 100, 0).Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
