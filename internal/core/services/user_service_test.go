package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/dpmarinov/personal_budget_app/internal/apperrors"
	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
	portssvc "github.com/dpmarinov/personal_budget_app/internal/core/ports/services"
	"github.com/dpmarinov/personal_budget_app/internal/core/services"
	"github.com/dpmarinov/personal_budget_app/internal/dto"
	"github.com/dpmarinov/personal_budget_app/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, domain.DefaultCurrencyRegistry)
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username:       "ivan",
		Password:       "correct horse battery",
		Name:           "Ivan Petrov",
		CurrencyCode:   "BGN",
		OpeningBalance: decimal.NewFromInt(1500),
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "ivan" &&
			u.Balance.CurrencyCode() == "BGN" &&
			u.Balance.Amount().Equal(decimal.NewFromInt(1500)) &&
			u.BalanceVersion == 0
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.Equal("BGN", user.CurrencyPreference())
	// The stored hash must verify against the original password.
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_UnsupportedCurrency() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username:     "ivan",
		Password:     "correct horse battery",
		Name:         "Ivan Petrov",
		CurrencyCode: "XXX",
	}

	_, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username:     "ivan",
		Password:     "correct horse battery",
		Name:         "Ivan Petrov",
		CurrencyCode: "BGN",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	password := "s3cret-pass"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)

	balance := mustMoney(suite.T(), "0.00", "BGN")
	user, err := domain.NewUser("maria", "Maria", hash, balance)
	suite.Require().NoError(err)

	suite.mockUserRepo.On("FindUserByUsername", ctx, "maria").Return(user, nil).Once()

	authed, err := suite.service.AuthenticateUser(ctx, "maria", password)

	suite.Require().NoError(err)
	suite.Equal(user.UserID, authed.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("right-password")
	suite.Require().NoError(err)

	balance := mustMoney(suite.T(), "0.00", "BGN")
	user, err := domain.NewUser("maria", "Maria", hash, balance)
	suite.Require().NoError(err)

	suite.mockUserRepo.On("FindUserByUsername", ctx, "maria").Return(user, nil).Once()

	_, err = suite.service.AuthenticateUser(ctx, "maria", "wrong-password")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownUserSameError() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "nobody").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AuthenticateUser(ctx, "nobody", "whatever")

	suite.Require().Error(err)
	// Unknown usernames produce the same error as wrong passwords.
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestDeleteUser_ForbiddenForOthers() {
	ctx := context.Background()

	err := suite.service.DeleteUser(ctx, "someone-else", "me")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "MarkUserDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
