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

type IngestionServiceTestSuite struct {
	suite.Suite
	mockExtractor  *MockExtractor
	mockTxnRepo    *MockTransactionRepository
	mockBudgetRepo *MockBudgetRepository
	service        portssvc.IngestionSvcFacade
	payload        dto.ExtractedTransaction
}

func (suite *IngestionServiceTestSuite) SetupTest() {
	suite.mockExtractor = new(MockExtractor)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.service = services.NewIngestionService(
		suite.mockExtractor,
		services.NewPolicyService(),
		suite.mockTxnRepo,
		suite.mockBudgetRepo,
		services.IngestionDefaults{OrgID: "uneural", GroupID: "operaciones"},
	)

	suite.payload = dto.ExtractedTransaction{
		Category:    "logistica/alimentos",
		Vendor:      "Panaderia La 45",
		Date:        "2026-08-30",
		Amount:      decimal.NewFromInt(85000),
		Currency:    "COP",
		Tax:         decimal.NewFromInt(0),
		Method:      "efectivo",
		Description: "Refrigerios para el taller",
		Type:        "expense",
	}
}

func (suite *IngestionServiceTestSuite) TestIngest_TextOnlySuccess() {
	ctx := context.Background()
	req := dto.IngestTransactionRequest{Text: "compré refrigerios por 85000"}

	suite.mockExtractor.On("ExtractTransaction", ctx, dto.ExtractionInput{Text: req.Text}).Return(&suite.payload, nil).Once()
	suite.mockBudgetRepo.On("ListBudgets", ctx).Return([]domain.Budget{}, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.IngestTransaction(ctx, req, "johan")

	suite.Require().NoError(err)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal("uneural", txn.OrgID)
	suite.Equal("operaciones", txn.GroupID)
	suite.Equal(domain.Expense, txn.Type)
	suite.Equal(domain.Pending, txn.Status)
	suite.Empty(txn.PolicyViolations)
	suite.Equal("text", txn.Source)
	suite.InDelta(0.85, txn.Confidence, 0.0001)
	suite.NotNil(txn.Approvals)
	suite.Empty(txn.Approvals)
	suite.Equal("johan", txn.CreatedBy)
	suite.Equal("2026-08-30", txn.Date.Format("2006-01-02"))

	suite.mockExtractor.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *IngestionServiceTestSuite) TestIngest_AttachmentSetsSourceAndAttachments() {
	ctx := context.Background()
	req := dto.IngestTransactionRequest{
		Text:       "factura adjunta",
		Attachment: []byte{0xFF, 0xD8},
		MIMEType:   "image/jpeg",
		Filename:   "recibo.jpg",
	}

	suite.mockExtractor.On("ExtractTransaction", ctx, mock.AnythingOfType("dto.ExtractionInput")).Return(&suite.payload, nil).Once()
	suite.mockBudgetRepo.On("ListBudgets", ctx).Return([]domain.Budget{}, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.IngestTransaction(ctx, req, "johan")

	suite.Require().NoError(err)
	suite.Equal("image+text", txn.Source)
	suite.Equal([]string{"recibo.jpg"}, txn.Attachments)
}

func (suite *IngestionServiceTestSuite) TestIngest_ExtractionFailureCommitsNothing() {
	ctx := context.Background()
	req := dto.IngestTransactionRequest{Text: "???"}

	suite.mockExtractor.On("ExtractTransaction", ctx, mock.AnythingOfType("dto.ExtractionInput")).Return(nil, apperrors.ErrExtraction).Once()

	_, err := suite.service.IngestTransaction(ctx, req, "johan")

	suite.Require().ErrorIs(err, apperrors.ErrExtraction)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "ListBudgets", mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *IngestionServiceTestSuite) TestIngest_MalformedPayloadCommitsNothing() {
	ctx := context.Background()
	malformed := suite.payload
	malformed.Currency = "ARS" // not a currency the org operates in

	suite.mockExtractor.On("ExtractTransaction", ctx, mock.AnythingOfType("dto.ExtractionInput")).Return(&malformed, nil).Once()

	_, err := suite.service.IngestTransaction(ctx, dto.IngestTransactionRequest{Text: "x"}, "johan")

	suite.Require().ErrorIs(err, apperrors.ErrExtraction)
	suite.Contains(err.Error(), "currency")
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *IngestionServiceTestSuite) TestIngest_BadDateCommitsNothing() {
	ctx := context.Background()
	malformed := suite.payload
	malformed.Date = "30/08/2026"

	suite.mockExtractor.On("ExtractTransaction", ctx, mock.AnythingOfType("dto.ExtractionInput")).Return(&malformed, nil).Once()

	_, err := suite.service.IngestTransaction(ctx, dto.IngestTransactionRequest{Text: "x"}, "johan")

	suite.Require().ErrorIs(err, apperrors.ErrExtraction)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *IngestionServiceTestSuite) TestIngest_LargeExpenseGetsReviewNote() {
	ctx := context.Background()
	large := suite.payload
	large.Amount = decimal.NewFromInt(450000)

	suite.mockExtractor.On("ExtractTransaction", ctx, mock.AnythingOfType("dto.ExtractionInput")).Return(&large, nil).Once()
	suite.mockBudgetRepo.On("ListBudgets", ctx).Return([]domain.Budget{}, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.IngestTransaction(ctx, dto.IngestTransactionRequest{Text: "x"}, "johan")

	suite.Require().NoError(err)
	suite.Equal(domain.Pending, txn.Status)
	suite.Equal([]string{services.MsgMandatoryReview}, txn.PolicyViolations)
}

func (suite *IngestionServiceTestSuite) TestIngest_OverrunningProjectExpenseIsRejected() {
	ctx := context.Background()
	budgets := []domain.Budget{{
		BudgetID:    "budget-1",
		ProjectID:   "proj-1",
		CapAmount:   decimal.NewFromInt(50000),
		SpentAmount: decimal.NewFromInt(20000),
	}}

	suite.mockExtractor.On("ExtractTransaction", ctx, mock.AnythingOfType("dto.ExtractionInput")).Return(&suite.payload, nil).Once()
	suite.mockBudgetRepo.On("ListBudgets", ctx).Return(budgets, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Status == domain.Rejected
	})).Return(nil).Once()

	txn, err := suite.service.IngestTransaction(ctx, dto.IngestTransactionRequest{Text: "x", ProjectID: "proj-1"}, "johan")

	suite.Require().NoError(err)
	suite.Equal(domain.Rejected, txn.Status)
	suite.Equal([]string{services.MsgBudgetOverrun}, txn.PolicyViolations)
	suite.Equal("proj-1", txn.ProjectID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *IngestionServiceTestSuite) TestIngest_MalformedDueDateIsDropped() {
	ctx := context.Background()
	payload := suite.payload
	payload.PaymentDueDate = "soon"

	suite.mockExtractor.On("ExtractTransaction", ctx, mock.AnythingOfType("dto.ExtractionInput")).Return(&payload, nil).Once()
	suite.mockBudgetRepo.On("ListBudgets", ctx).Return([]domain.Budget{}, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.IngestTransaction(ctx, dto.IngestTransactionRequest{Text: "x"}, "johan")

	suite.Require().NoError(err)
	suite.Nil(txn.PaymentDueDate)
}

func TestIngestionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IngestionServiceTestSuite))
}
