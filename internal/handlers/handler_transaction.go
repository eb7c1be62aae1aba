package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uneural/treasury_backend/internal/apperrors"
	portssvc "github.com/uneural/treasury_backend/internal/core/ports/services"
	"github.com/uneural/treasury_backend/internal/dto"
	"github.com/uneural/treasury_backend/internal/middleware"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	ingestionService   portssvc.IngestionSvcFacade
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ingestionService portssvc.IngestionSvcFacade, transactionService portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		ingestionService:   ingestionService,
		transactionService: transactionService,
	}
}

// ingestTransaction godoc
// @Summary Ingest a raw capture into a transaction
// @Description Extracts structured data from the uploaded attachment and/or free text, evaluates policy and commits the resulting transaction
// @Tags transactions
// @Accept  multipart/form-data
// @Produce  json
// @Param   text formData string false "Free text describing the transaction"
// @Param   attachment formData file false "Receipt or invoice image"
// @Param   projectId formData string false "Project to scope the transaction to"
// @Success 201 {object} dto.TransactionResponse "The committed transaction"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 422 {object} map[string]string "Extraction failed"
// @Failure 500 {object} map[string]string "Failed to ingest transaction"
// @Router /transactions/ingest [post]
func (h *transactionHandler) ingestTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.IngestTransactionRequest{
		Text:      c.PostForm("text"),
		ProjectID: c.PostForm("projectId"),
	}

	fileHeader, err := c.FormFile("attachment")
	if err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			logger.Error("Failed to open uploaded attachment", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment"})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			logger.Error("Failed to read uploaded attachment", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment"})
			return
		}
		req.Attachment = data
		req.MIMEType = fileHeader.Header.Get("Content-Type")
		req.Filename = fileHeader.Filename
	}

	if req.Text == "" && len(req.Attachment) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide text, an attachment, or both"})
		return
	}

	creatorUserID, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve acting user"})
		return
	}

	txn, err := h.ingestionService.IngestTransaction(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrExtraction) {
			logger.Warn("Extraction failed during ingestion", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to ingest transaction in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest transaction"})
		return
	}

	logger.Info("Transaction ingested successfully",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("status", string(txn.Status)),
	)
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Retrieves transactions, most recent first
// @Tags transactions
// @Produce  json
// @Param   limit query int false "Maximum number of transactions to return" default(20)
// @Param   offset query int false "Number of transactions to skip" default(0)
// @Success 200 {object} dto.ListTransactionsResponse "Transactions"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list transactions from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns))
}

// listPendingTransactions godoc
// @Summary List the approval queue
// @Description Retrieves pending transactions awaiting a decision, most recent first
// @Tags transactions
// @Produce  json
// @Param   limit query int false "Maximum number of transactions to return" default(20)
// @Param   offset query int false "Number of transactions to skip" default(0)
// @Success 200 {object} dto.ListTransactionsResponse "Pending transactions"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Router /transactions/pending [get]
func (h *transactionHandler) listPendingTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for ListPendingTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	txns, err := h.transactionService.ListPendingTransactions(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list pending transactions from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns))
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Retrieves a transaction by its ID
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse "The transaction"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Transaction not found", slog.String("transaction_id", transactionID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logger.Error("Failed to get transaction from service", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// registerTransactionRoutes registers transaction specific routes.
// The ingestion route carries the rate limiter: every ingestion triggers
// an external extraction round-trip.
func registerTransactionRoutes(group *gin.RouterGroup, services *portssvc.ServiceContainer, ingestRateLimit gin.HandlerFunc) {
	transactionHandler := newTransactionHandler(services.Ingestion, services.Transaction)
	approvalHandler := newApprovalHandler(services.Approval)

	transactions := group.Group("/transactions")
	{
		transactions.POST("/ingest", ingestRateLimit, transactionHandler.ingestTransaction)
		transactions.GET("", transactionHandler.listTransactions)
		transactions.GET("/pending", transactionHandler.listPendingTransactions)
		transactions.GET("/:transactionID", transactionHandler.getTransaction)
		transactions.POST("/:transactionID/decision", approvalHandler.decideTransaction)
	}
}
