package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfdesk/shelfdesk_backend/internal/apperrors"
	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
	portssvc "github.com/shelfdesk/shelfdesk_backend/internal/core/ports/services"
	"github.com/shelfdesk/shelfdesk_backend/internal/dto"
	"github.com/shelfdesk/shelfdesk_backend/internal/middleware"
)

// branchHandler handles HTTP requests related to branches, resource
// availability and stock levels.
type branchHandler struct {
	branchService   portssvc.BranchSvcFacade
	ledgerService   portssvc.ResourceLedgerSvcFacade
	capacityService portssvc.CapacitySvcFacade
}

func newBranchHandler(bs portssvc.BranchSvcFacade, ls portssvc.ResourceLedgerSvcFacade, cs portssvc.CapacitySvcFacade) *branchHandler {
	return &branchHandler{
		branchService:   bs,
		ledgerService:   ls,
		capacityService: cs,
	}
}

// registerBranchRoutes registers routes related to branches.
func registerBranchRoutes(rg *gin.RouterGroup, branchService portssvc.BranchSvcFacade, ledgerService portssvc.ResourceLedgerSvcFacade, capacityService portssvc.CapacitySvcFacade) {
	h := newBranchHandler(branchService, ledgerService, capacityService)

	branches := rg.Group("/branches")
	{
		branches.POST("", h.createBranch)
		branches.GET("/:branchID", h.getBranch)
		branches.PUT("/:branchID/capacity", h.updateCapacity)
		branches.GET("/:branchID/availability", h.checkAvailability)
		branches.GET("/:branchID/capacity/cards", h.cardStats)
		branches.GET("/:branchID/capacity/lockers", h.lockerStats)
	}
}

func (h *branchHandler) createBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBranch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to create branch", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create branch"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToBranchResponse(branch))
}

func (h *branchHandler) getBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")

	branch, err := h.branchService.GetBranch(c.Request.Context(), branchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		} else {
			logger.Error("Failed to get branch", slog.String("branch_id", branchID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve branch"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBranchResponse(branch))
}

func (h *branchHandler) updateCapacity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")

	var req dto.UpdateCapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCapacity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	branch, err := h.branchService.UpdateCapacity(c.Request.Context(), branchID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		} else {
			logger.Error("Failed to update capacity", slog.String("branch_id", branchID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update capacity"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBranchResponse(branch))
}

// checkAvailability answers whether a locker or seat key can be assigned
// right now. The front desk calls this before committing an allocation.
func (h *branchHandler) checkAvailability(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")

	kind := domain.ResourceKind(c.Query("kind"))
	key := c.Query("key")
	if (kind != domain.ResourceLocker && kind != domain.ResourceSeat) || key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be LOCKER or SEAT and key must be set"})
		return
	}

	avail, err := h.ledgerService.CheckAvailability(c.Request.Context(), branchID, kind, key, c.Query("excludeMemberID"))
	if err != nil {
		logger.Error("Availability check failed", slog.String("branch_id", branchID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check availability"})
		return
	}

	c.JSON(http.StatusOK, dto.AvailabilityResponse{
		Available:    avail.Available,
		OccupantName: avail.OccupantName,
		Note:         avail.Note,
	})
}

func (h *branchHandler) cardStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")

	stats, err := h.capacityService.CardStats(c.Request.Context(), branchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		} else {
			logger.Error("Failed to compute card stats", slog.String("branch_id", branchID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute card stats"})
		}
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *branchHandler) lockerStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")

	stats, err := h.capacityService.LockerStats(c.Request.Context(), branchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		} else {
			logger.Error("Failed to compute locker stats", slog.String("branch_id", branchID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute locker stats"})
		}
		return
	}

	c.JSON(http.StatusOK, stats)
}
