package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/dpmarinov/personal_budget_app/internal/apperrors"
	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
	portssvc "github.com/dpmarinov/personal_budget_app/internal/core/ports/services"
	"github.com/dpmarinov/personal_budget_app/internal/core/services"
	"github.com/dpmarinov/personal_budget_app/internal/dto"
)

type IncomeServiceTestSuite struct {
	suite.Suite
	mockIncomeRepo *MockIncomeRepository
	mockUserRepo   *MockUserRepository
	service        portssvc.IncomeSvcFacade
	user           *domain.User
}

func (suite *IncomeServiceTestSuite) SetupTest() {
	suite.mockIncomeRepo = new(MockIncomeRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewIncomeService(suite.mockIncomeRepo, suite.mockUserRepo, domain.DefaultCurrencyRegistry)

	balance := mustMoney(suite.T(), "500.00", "BGN")
	user, err := domain.NewUser("maria", "Maria Georgieva", "hash", balance)
	suite.Require().NoError(err)
	user.BalanceVersion = 7
	suite.user = user
}

func (suite *IncomeServiceTestSuite) TestAddIncome_DepositsIntoBalance() {
	ctx := context.Background()
	req := dto.CreateIncomeRequest{
		Amount:       decimal.NewFromInt(2000),
		CurrencyCode: "BGN",
		IncomeDate:   time.Now().UTC(),
		Description:  "August salary",
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(suite.user, nil).Once()

	expectedBalance := mustMoney(suite.T(), "2500.00", "BGN")
	suite.mockIncomeRepo.On("SaveIncomeWithBalance", ctx,
		mock.MatchedBy(func(in domain.Income) bool {
			return in.UserID == suite.user.UserID && in.Amount.Amount().Equal(decimal.NewFromInt(2000))
		}),
		mock.MatchedBy(func(b domain.Money) bool { return b.Equal(expectedBalance) }),
		int64(7),
	).Return(nil).Once()

	incomeID, err := suite.service.AddIncome(ctx, suite.user.UserID, req)

	suite.Require().NoError(err)
	suite.NotEmpty(incomeID)
	suite.mockIncomeRepo.AssertExpectations(suite.T())
}

func (suite *IncomeServiceTestSuite) TestAddIncome_CurrencyMismatch() {
	ctx := context.Background()
	req := dto.CreateIncomeRequest{
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "EUR",
		IncomeDate:   time.Now().UTC(),
		Description:  "Freelance invoice",
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(suite.user, nil).Once()

	_, err := suite.service.AddIncome(ctx, suite.user.UserID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrCurrencyMismatch)
	suite.mockIncomeRepo.AssertNotCalled(suite.T(), "SaveIncomeWithBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *IncomeServiceTestSuite) TestAddIncome_ConflictIsDistinct() {
	ctx := context.Background()
	req := dto.CreateIncomeRequest{
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "BGN",
		IncomeDate:   time.Now().UTC(),
		Description:  "Refund",
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(suite.user, nil).Once()
	suite.mockIncomeRepo.On("SaveIncomeWithBalance", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(apperrors.ErrConflict).Once()

	_, err := suite.service.AddIncome(ctx, suite.user.UserID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *IncomeServiceTestSuite) TestDeleteIncome_WithdrawsBalance() {
	ctx := context.Background()

	amount := mustMoney(suite.T(), "200.00", "BGN")
	income, err := domain.NewIncome(amount, time.Now().UTC(), "Sold bike", suite.user.UserID)
	suite.Require().NoError(err)

	suite.mockIncomeRepo.On("FindIncomeByID", ctx, income.IncomeID).Return(income, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(suite.user, nil).Once()

	expectedBalance := mustMoney(suite.T(), "300.00", "BGN")
	suite.mockIncomeRepo.On("MarkIncomeDeletedWithBalance", ctx,
		mock.MatchedBy(func(in domain.Income) bool { return in.IncomeID == income.IncomeID }),
		mock.AnythingOfType("time.Time"),
		mock.MatchedBy(func(b domain.Money) bool { return b.Equal(expectedBalance) }),
		int64(7),
	).Return(nil).Once()

	err = suite.service.DeleteIncome(ctx, suite.user.UserID, income.IncomeID)

	suite.Require().NoError(err)
	suite.mockIncomeRepo.AssertExpectations(suite.T())
}

func (suite *IncomeServiceTestSuite) TestUpdateIncome_AppliesAmountDelta() {
	ctx := context.Background()

	amount := mustMoney(suite.T(), "200.00", "BGN")
	income, err := domain.NewIncome(amount, time.Now().UTC(), "Salary", suite.user.UserID)
	suite.Require().NoError(err)

	newAmount := decimal.NewFromInt(250)
	req := dto.UpdateIncomeRequest{Amount: &newAmount}

	suite.mockIncomeRepo.On("FindIncomeByID", ctx, income.IncomeID).Return(income, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(suite.user, nil).Once()

	// Old amount withdrawn, new amount deposited: 500 - 200 + 250 = 550.
	expectedBalance := mustMoney(suite.T(), "550.00", "BGN")
	suite.mockIncomeRepo.On("UpdateIncomeWithBalance", ctx,
		mock.MatchedBy(func(in domain.Income) bool { return in.Amount.Amount().Equal(newAmount) }),
		mock.MatchedBy(func(b domain.Money) bool { return b.Equal(expectedBalance) }),
		int64(7),
	).Return(nil).Once()

	updated, err := suite.service.UpdateIncome(ctx, suite.user.UserID, income.IncomeID, req)

	suite.Require().NoError(err)
	suite.True(updated.Amount.Amount().Equal(newAmount))
	suite.mockIncomeRepo.AssertExpectations(suite.T())
}

func TestIncomeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IncomeServiceTestSuite))
}
