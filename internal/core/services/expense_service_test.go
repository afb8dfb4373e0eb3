package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/dpmarinov/personal_budget_app/internal/apperrors"
	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
	portssvc "github.com/dpmarinov/personal_budget_app/internal/core/ports/services"
	"github.com/dpmarinov/personal_budget_app/internal/core/services"
	"github.com/dpmarinov/personal_budget_app/internal/dto"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	mockUserRepo    *MockUserRepository
	service         portssvc.ExpenseSvcFacade
	user            *domain.User
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewExpenseService(suite.mockExpenseRepo, suite.mockUserRepo, domain.DefaultCurrencyRegistry)

	balance := mustMoney(suite.T(), "1000.00", "BGN")
	user, err := domain.NewUser("ivan", "Ivan Petrov", "hash", balance)
	suite.Require().NoError(err)
	user.BalanceVersion = 3
	suite.user = user
}

func (suite *ExpenseServiceTestSuite) validRequest() dto.CreateExpenseRequest {
	return dto.CreateExpenseRequest{
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "BGN",
		ExpenseDate:  time.Now().UTC(),
		Description:  "Groceries",
		Category:     "NEEDS",
	}
}

func (suite *ExpenseServiceTestSuite) TestAddExpense_Success() {
	ctx := context.Background()
	req := suite.validRequest()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(suite.user, nil).Once()

	// The repository must receive the recomputed balance and the version the
	// computation was based on.
	expectedBalance := mustMoney(suite.T(), "900.00", "BGN")
	suite.mockExpenseRepo.On("SaveExpenseWithBalance", ctx,
		mock.MatchedBy(func(e domain.Expense) bool {
			return e.UserID == suite.user.UserID &&
				e.Amount.Amount().Equal(decimal.NewFromInt(100)) &&
				e.Category == domain.CategoryNeeds
		}),
		mock.MatchedBy(func(b domain.Money) bool { return b.Equal(expectedBalance) }),
		int64(3),
	).Return(nil).Once()

	expenseID, err := suite.service.AddExpense(ctx, suite.user.UserID, req)

	suite.Require().NoError(err)
	suite.NotEmpty(expenseID)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestAddExpense_CurrencyMismatch() {
	ctx := context.Background()
	req := suite.validRequest()
	req.CurrencyCode = "USD"

	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(suite.user, nil).Once()

	_, err := suite.service.AddExpense(ctx, suite.user.UserID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrCurrencyMismatch)
	// Nothing may be written when the currencies disagree.
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpenseWithBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestAddExpense_ConflictIsDistinct() {
	ctx := context.Background()
	req := suite.validRequest()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(suite.user, nil).Once()
	suite.mockExpenseRepo.On("SaveExpenseWithBalance", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(apperrors.ErrConflict).Once()

	_, err := suite.service.AddExpense(ctx, suite.user.UserID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.NotErrorIs(err, apperrors.ErrValidation)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExpenseServiceTestSuite) TestAddExpense_UnexpectedRepoFailure() {
	ctx := context.Background()
	req := suite.validRequest()

	repoErr := errors.New("write tcp 127.0.0.1:5432: connection reset by peer")
	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(suite.user, nil).Once()
	suite.mockExpenseRepo.On("SaveExpenseWithBalance", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(repoErr).Once()

	_, err := suite.service.AddExpense(ctx, suite.user.UserID, req)

	suite.Require().Error(err)
	// A plain persistence failure keeps its cause but never masquerades as a
	// concurrency conflict or a validation problem.
	suite.ErrorIs(err, repoErr)
	suite.NotErrorIs(err, apperrors.ErrConflict)
	suite.NotErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "failed to save expense")
}

func (suite *ExpenseServiceTestSuite) TestAddExpense_UserNotFound() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AddExpense(ctx, "missing", suite.validRequest())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExpenseServiceTestSuite) TestAddExpense_NonPositiveAmount() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Amount = decimal.Zero

	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(suite.user, nil).Once()

	_, err := suite.service.AddExpense(ctx, suite.user.UserID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpenseWithBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_AppliesAmountDelta() {
	ctx := context.Background()

	amount := mustMoney(suite.T(), "100.00", "BGN")
	expense, err := domain.NewExpense(amount, time.Now().UTC(), "Groceries", domain.CategoryNeeds, suite.user.UserID)
	suite.Require().NoError(err)

	newAmount := decimal.NewFromInt(150)
	req := dto.UpdateExpenseRequest{Amount: &newAmount}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(suite.user, nil).Once()

	// Old amount restored, new amount withdrawn: 1000 + 100 - 150 = 950.
	expectedBalance := mustMoney(suite.T(), "950.00", "BGN")
	suite.mockExpenseRepo.On("UpdateExpenseWithBalance", ctx,
		mock.MatchedBy(func(e domain.Expense) bool {
			return e.ExpenseID == expense.ExpenseID && e.Amount.Amount().Equal(newAmount)
		}),
		mock.MatchedBy(func(b domain.Money) bool { return b.Equal(expectedBalance) }),
		int64(3),
	).Return(nil).Once()

	updated, err := suite.service.UpdateExpense(ctx, suite.user.UserID, expense.ExpenseID, req)

	suite.Require().NoError(err)
	suite.True(updated.Amount.Amount().Equal(newAmount))
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_RestoresBalance() {
	ctx := context.Background()

	amount := mustMoney(suite.T(), "250.00", "BGN")
	expense, err := domain.NewExpense(amount, time.Now().UTC(), "Rent share", domain.CategoryNeeds, suite.user.UserID)
	suite.Require().NoError(err)

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(suite.user, nil).Once()

	expectedBalance := mustMoney(suite.T(), "1250.00", "BGN")
	suite.mockExpenseRepo.On("MarkExpenseDeletedWithBalance", ctx,
		mock.MatchedBy(func(e domain.Expense) bool { return e.ExpenseID == expense.ExpenseID }),
		mock.AnythingOfType("time.Time"),
		mock.MatchedBy(func(b domain.Money) bool { return b.Equal(expectedBalance) }),
		int64(3),
	).Return(nil).Once()

	err = suite.service.DeleteExpense(ctx, suite.user.UserID, expense.ExpenseID)

	suite.Require().NoError(err)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestGetExpense_OtherUsersExpenseHidden() {
	ctx := context.Background()

	amount := mustMoney(suite.T(), "50.00", "BGN")
	otherOwner := uuid.NewString()
	expense, err := domain.NewExpense(amount, time.Now().UTC(), "Cinema", domain.CategoryWants, otherOwner)
	suite.Require().NoError(err)

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	_, err = suite.service.GetExpenseByID(ctx, suite.user.UserID, expense.ExpenseID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_CapsLimit() {
	ctx := context.Background()
	params := dto.ListExpensesParams{Limit: 500}

	suite.mockExpenseRepo.On("ListExpensesByUser", ctx, suite.user.UserID, 100, (*string)(nil), (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domain.Expense{}, nil, nil).Once()

	resp, err := suite.service.ListExpenses(ctx, suite.user.UserID, params)

	suite.Require().NoError(err)
	suite.Empty(resp.Expenses)
	suite.Nil(resp.NextToken)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
