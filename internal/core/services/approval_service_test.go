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
)

type ApprovalServiceTestSuite struct {
	suite.Suite
	mockTxnRepo *MockTransactionRepository
	mockLedger  *MockBudgetLedger
	service     portssvc.ApprovalSvcFacade
	pendingTxn  domain.Transaction
}

func (suite *ApprovalServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockLedger = new(MockBudgetLedger)
	suite.service = services.NewApprovalService(suite.mockTxnRepo, suite.mockLedger)

	suite.pendingTxn = domain.Transaction{
		TransactionID: "txn-1",
		OrgID:         "uneural",
		ProjectID:     "proj-1",
		Type:          domain.Expense,
		Amount:        decimal.NewFromInt(120000),
		Currency:      domain.COP,
		Status:        domain.Pending,
		Approvals:     []domain.Approval{},
	}
}

func (suite *ApprovalServiceTestSuite) TestDecide_PostScopedExpenseUpdatesLedger() {
	ctx := context.Background()
	updatedBudget := &domain.Budget{
		BudgetID:    "budget-1",
		ProjectID:   "proj-1",
		CapAmount:   decimal.NewFromInt(1000000),
		SpentAmount: decimal.NewFromInt(120000),
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, "txn-1").Return(&suite.pendingTxn, nil).Once()
	suite.mockTxnRepo.On("UpdateStatusIfPending", ctx, mock.AnythingOfType("domain.Transaction")).Return(true, nil).Once()
	suite.mockLedger.On("ApplyExpense", ctx, mock.MatchedBy(func(instr domain.LedgerInstruction) bool {
		return instr.TransactionID == "txn-1" &&
			instr.Scope.ProjectID == "proj-1" &&
			instr.Amount.Equal(decimal.NewFromInt(120000))
	})).Return(updatedBudget, nil).Once()

	txn, budget, err := suite.service.DecideTransaction(ctx, "txn-1", domain.Posted, "maria")

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, txn.Status)
	suite.Require().Len(txn.Approvals, 1)
	suite.Equal("maria", txn.Approvals[0].By)
	suite.Require().NotNil(budget)
	suite.True(budget.SpentAmount.Equal(decimal.NewFromInt(120000)))

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestDecide_RejectNeverTouchesLedger() {
	ctx := context.Background()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, "txn-1").Return(&suite.pendingTxn, nil).Once()
	suite.mockTxnRepo.On("UpdateStatusIfPending", ctx, mock.AnythingOfType("domain.Transaction")).Return(true, nil).Once()

	txn, budget, err := suite.service.DecideTransaction(ctx, "txn-1", domain.Rejected, "maria")

	suite.Require().NoError(err)
	suite.Equal(domain.Rejected, txn.Status)
	suite.Nil(budget)
	suite.mockLedger.AssertNotCalled(suite.T(), "ApplyExpense", mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestDecide_AlreadyDecidedIsNoOp() {
	ctx := context.Background()
	decided := suite.pendingTxn
	decided.Status = domain.Posted

	suite.mockTxnRepo.On("FindTransactionByID", ctx, "txn-1").Return(&decided, nil).Once()

	txn, budget, err := suite.service.DecideTransaction(ctx, "txn-1", domain.Posted, "maria")

	suite.Require().ErrorIs(err, apperrors.ErrTransactionFinalized)
	suite.Equal(domain.Posted, txn.Status)
	suite.Nil(budget)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateStatusIfPending", mock.Anything, mock.Anything)
	suite.mockLedger.AssertNotCalled(suite.T(), "ApplyExpense", mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestDecide_LostRaceReportsCurrentState() {
	ctx := context.Background()
	// The store says pending at read time, but another decision lands
	// before our conditional write.
	racedTxn := suite.pendingTxn
	racedTxn.Status = domain.Rejected

	suite.mockTxnRepo.On("FindTransactionByID", ctx, "txn-1").Return(&suite.pendingTxn, nil).Once()
	suite.mockTxnRepo.On("UpdateStatusIfPending", ctx, mock.AnythingOfType("domain.Transaction")).Return(false, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, "txn-1").Return(&racedTxn, nil).Once()

	txn, budget, err := suite.service.DecideTransaction(ctx, "txn-1", domain.Posted, "maria")

	suite.Require().ErrorIs(err, apperrors.ErrTransactionFinalized)
	suite.Equal(domain.Rejected, txn.Status)
	suite.Nil(budget)
	suite.mockLedger.AssertNotCalled(suite.T(), "ApplyExpense", mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestDecide_UnscopedExpenseSkipsLedger() {
	ctx := context.Background()
	unscoped := suite.pendingTxn
	unscoped.ProjectID = ""
	unscoped.GroupID = ""

	suite.mockTxnRepo.On("FindTransactionByID", ctx, "txn-1").Return(&unscoped, nil).Once()
	suite.mockTxnRepo.On("UpdateStatusIfPending", ctx, mock.AnythingOfType("domain.Transaction")).Return(true, nil).Once()

	txn, budget, err := suite.service.DecideTransaction(ctx, "txn-1", domain.Posted, "maria")

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, txn.Status)
	suite.Nil(budget)
	suite.mockLedger.AssertNotCalled(suite.T(), "ApplyExpense", mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestDecide_NotFound() {
	ctx := context.Background()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.DecideTransaction(ctx, "missing", domain.Posted, "maria")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ApprovalServiceTestSuite) TestDecide_NonTerminalTargetFails() {
	ctx := context.Background()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, "txn-1").Return(&suite.pendingTxn, nil).Once()

	_, _, err := suite.service.DecideTransaction(ctx, "txn-1", domain.Pending, "maria")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateStatusIfPending", mock.Anything, mock.Anything)
}

func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}
