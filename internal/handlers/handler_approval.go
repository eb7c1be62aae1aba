package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uneural/treasury_backend/internal/apperrors"
	portssvc "github.com/uneural/treasury_backend/internal/core/ports/services"
	"github.com/uneural/treasury_backend/internal/dto"
	"github.com/uneural/treasury_backend/internal/middleware"
)

// approvalHandler handles decision requests on pending transactions.
type approvalHandler struct {
	approvalService portssvc.ApprovalSvcFacade
}

// newApprovalHandler creates a new approvalHandler.
func newApprovalHandler(approvalService portssvc.ApprovalSvcFacade) *approvalHandler {
	return &approvalHandler{approvalService: approvalService}
}

// decideTransaction godoc
// @Summary Decide a pending transaction
// @Description Moves a pending transaction to posted or rejected. Posting a project- or group-scoped expense also updates the matching budget ledger. Deciding an already decided transaction returns 409 with its current state.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Param   decision body dto.DecisionRequest true "Target status"
// @Success 200 {object} dto.DecisionResponse "The decided transaction and the budget it updated, if any"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} dto.DecisionResponse "Transaction already decided"
// @Failure 500 {object} map[string]string "Failed to decide transaction"
// @Router /transactions/{transactionID}/decision [post]
func (h *approvalHandler) decideTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	decisionReq := dto.DecisionRequest{}
	if err := c.ShouldBindJSON(&decisionReq); err != nil {
		logger.Error("Failed to bind JSON for DecideTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: status must be posted or rejected"})
		return
	}

	deciderUserID, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve acting user"})
		return
	}

	logger = logger.With(slog.String("transaction_id", transactionID), slog.String("decider_user_id", deciderUserID))

	txn, budget, err := h.approvalService.DecideTransaction(c.Request.Context(), transactionID, decisionReq.Status, deciderUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Transaction not found for decision")
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, apperrors.ErrTransactionFinalized):
			// The no-op case: report the stored state without touching it.
			logger.Info("Decision on already decided transaction", slog.String("status", string(txn.Status)))
			c.JSON(http.StatusConflict, dto.DecisionResponse{Transaction: dto.ToTransactionResponse(txn)})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error deciding transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to decide transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decide transaction"})
		}
		return
	}

	resp := dto.DecisionResponse{Transaction: dto.ToTransactionResponse(txn)}
	if budget != nil {
		budgetResp := dto.ToBudgetResponse(budget)
		resp.Budget = &budgetResp
	}

	logger.Info("Transaction decided successfully", slog.String("status", string(txn.Status)))
	c.JSON(http.StatusOK, resp)
}
