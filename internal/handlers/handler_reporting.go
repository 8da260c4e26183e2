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

// reportingHandler handles revenue report requests.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers report routes under branches.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/branches/:branchID/reports")
	{
		reports.GET("/revenue-summary", h.revenueSummary)
		reports.GET("/daily-revenue", h.dailyRevenue)
	}
}

func (h *reportingHandler) bindParams(c *gin.Context) (dto.ReportingParams, bool) {
	var params dto.ReportingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return params, false
	}
	return params, true
}

func (h *reportingHandler) respondReportError(c *gin.Context, logger *slog.Logger, branchID string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to build report", slog.String("branch_id", branchID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
	}
}

func (h *reportingHandler) revenueSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")

	params, ok := h.bindParams(c)
	if !ok {
		return
	}

	report, err := h.reportingService.RevenueSummary(c.Request.Context(), branchID, params)
	if err != nil {
		h.respondReportError(c, logger, branchID, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) dailyRevenue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")

	params, ok := h.bindParams(c)
	if !ok {
		return
	}

	report, err := h.reportingService.DailyRevenue(c.Request.Context(), branchID, params)
	if err != nil {
		h.respondReportError(c, logger, branchID, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
