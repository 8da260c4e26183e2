package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfdesk/shelfdesk_backend/internal/apperrors"
	portssvc "github.com/shelfdesk/shelfdesk_backend/internal/core/ports/services"
	"github.com/shelfdesk/shelfdesk_backend/internal/dto"
	"github.com/shelfdesk/shelfdesk_backend/internal/middleware"
)

// transactionHandler handles the branch ledger surface: snack sales and
// transaction listings.
type transactionHandler struct {
	salesService portssvc.SalesSvcFacade
	txnService   portssvc.TransactionSvcFacade
}

func newTransactionHandler(ss portssvc.SalesSvcFacade, ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		salesService: ss,
		txnService:   ts,
	}
}

// registerTransactionRoutes registers ledger routes under branches.
func registerTransactionRoutes(rg *gin.RouterGroup, salesService portssvc.SalesSvcFacade, txnService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(salesService, txnService)

	branches := rg.Group("/branches/:branchID")
	{
		branches.POST("/snack-sales", h.recordSnackSale)
		branches.GET("/transactions", h.listTransactions)
	}
}

func (h *transactionHandler) recordSnackSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")

	var req dto.SnackSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SnackSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.salesService.RecordSnackSale(c.Request.Context(), branchID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrSplitMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record snack sale", slog.String("branch_id", branchID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record snack sale"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(*txn))
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txns, err := h.txnService.ListByBranch(c.Request.Context(), branchID, params)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("branch_id", branchID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": dto.ToTransactionResponses(txns)})
}
