package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/uneural/treasury_backend/internal/apperrors"
	"github.com/uneural/treasury_backend/internal/core/domain"
	portssvc "github.com/uneural/treasury_backend/internal/core/ports/services"
	"github.com/uneural/treasury_backend/internal/core/services"
	"github.com/uneural/treasury_backend/internal/dto"
)

type BudgetServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo *MockBudgetRepository
	service        portssvc.BudgetSvcFacade
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.service = services.NewBudgetService(suite.mockBudgetRepo, "uneural")
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_Success() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		ProjectID: "proj-1",
		Period:    "2026-09",
		CapAmount: decimal.NewFromInt(1000000),
	}

	suite.mockBudgetRepo.On("SaveBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.ProjectID == "proj-1" && b.OrgID == "uneural" && b.SpentAmount.IsZero()
	})).Return(nil).Once()

	budget, err := suite.service.CreateBudget(ctx, req, "johan")

	suite.Require().NoError(err)
	suite.NotEmpty(budget.BudgetID)
	suite.Equal("uneural", budget.OrgID)
	suite.Equal("johan", budget.CreatedBy)
	suite.True(budget.SpentAmount.IsZero())
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_BothScopesRejected() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		ProjectID: "proj-1",
		GroupID:   "operaciones",
		Period:    "2026-09",
		CapAmount: decimal.NewFromInt(1000),
	}

	_, err := suite.service.CreateBudget(ctx, req, "johan")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestApplyExpense_MatchedBudget() {
	ctx := context.Background()
	instruction := domain.LedgerInstruction{
		TransactionID: "txn-1",
		Scope:         domain.Scope{ProjectID: "proj-1"},
		Amount:        decimal.NewFromInt(85000),
	}
	updated := &domain.Budget{
		BudgetID:    "budget-1",
		ProjectID:   "proj-1",
		SpentAmount: decimal.NewFromInt(85000),
	}

	suite.mockBudgetRepo.On("ApplyExpense", ctx, instruction.Scope, instruction.Amount).Return(updated, nil).Once()

	budget, err := suite.service.ApplyExpense(ctx, instruction)

	suite.Require().NoError(err)
	suite.Require().NotNil(budget)
	suite.True(budget.SpentAmount.Equal(decimal.NewFromInt(85000)))
}

func (suite *BudgetServiceTestSuite) TestApplyExpense_NoMatchIsNoOp() {
	ctx := context.Background()
	instruction := domain.LedgerInstruction{
		TransactionID: "txn-1",
		Scope:         domain.Scope{ProjectID: "untracked"},
		Amount:        decimal.NewFromInt(85000),
	}

	suite.mockBudgetRepo.On("ApplyExpense", ctx, instruction.Scope, instruction.Amount).Return(nil, nil).Once()

	budget, err := suite.service.ApplyExpense(ctx, instruction)

	suite.Require().NoError(err)
	suite.Nil(budget)
}

func (suite *BudgetServiceTestSuite) TestApplyExpense_EmptyScopeSkipsRepository() {
	ctx := context.Background()
	instruction := domain.LedgerInstruction{TransactionID: "txn-1", Amount: decimal.NewFromInt(10)}

	budget, err := suite.service.ApplyExpense(ctx, instruction)

	suite.Require().NoError(err)
	suite.Nil(budget)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "ApplyExpense", mock.Anything, mock.Anything, mock.Anything)
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
