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
	"github.com/shelfdesk/shelfdesk_backend/internal/platform/clock"
)

// memberHandler handles HTTP requests related to members and their
// membership transitions.
type memberHandler struct {
	memberService portssvc.MemberSvcFacade
	txnService    portssvc.TransactionSvcFacade
	clock         clock.Clock
}

func newMemberHandler(ms portssvc.MemberSvcFacade, ts portssvc.TransactionSvcFacade, clk clock.Clock) *memberHandler {
	return &memberHandler{
		memberService: ms,
		txnService:    ts,
		clock:         clk,
	}
}

// registerMemberRoutes registers routes related to members.
func registerMemberRoutes(rg *gin.RouterGroup, memberService portssvc.MemberSvcFacade, txnService portssvc.TransactionSvcFacade, clk clock.Clock) {
	h := newMemberHandler(memberService, txnService, clk)

	branches := rg.Group("/branches/:branchID")
	{
		branches.POST("/members", h.registerMember)
		branches.GET("/members", h.listMembers)
	}

	members := rg.Group("/members/:memberID")
	{
		members.GET("", h.getMember)
		members.DELETE("", h.deleteMember)
		members.POST("/plan", h.activatePlan)
		members.POST("/card", h.issueCard)
		members.POST("/card/return", h.returnCard)
		members.POST("/locker", h.assignLocker)
		members.GET("/transactions", h.listMemberTransactions)
	}
}

// registerAdminRoutes registers destructive batch member operations.
func registerAdminRoutes(rg *gin.RouterGroup, memberService portssvc.MemberSvcFacade) {
	h := newMemberHandler(memberService, nil, nil)
	rg.POST("/members/clear-plan", h.clearPlan)
}

// respondTransitionError maps transition failures onto HTTP statuses. Every
// membership operation fails the same way, so the mapping lives in one place.
func respondTransitionError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Member not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrSplitMismatch),
		errors.Is(err, apperrors.ErrNoCardIssued):
		logger.Warn("Transition rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrResourceUnavailable),
		errors.Is(err, apperrors.ErrInsufficientStock):
		logger.Warn("Transition conflicts with current state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Transition failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (h *memberHandler) transitionResponse(member dto.MemberResponse, txns []dto.TransactionResponse) dto.TransitionResponse {
	return dto.TransitionResponse{Member: member, Transactions: txns}
}

func (h *memberHandler) registerMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")

	var req dto.RegisterMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	member, err := h.memberService.RegisterMember(c.Request.Context(), branchID, req)
	if err != nil {
		respondTransitionError(c, logger, err)
		return
	}

	logger.Info("Member registered", slog.String("member_id", member.MemberID), slog.String("branch_id", branchID))
	c.JSON(http.StatusCreated, dto.ToMemberResponse(member, h.clock.Now()))
}

func (h *memberHandler) getMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("memberID")

	member, err := h.memberService.GetMember(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else {
			logger.Error("Failed to get member", slog.String("member_id", memberID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberResponse(member, h.clock.Now()))
}

func (h *memberHandler) listMembers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")

	var params dto.ListMembersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	members, err := h.memberService.ListMembers(c.Request.Context(), branchID, params)
	if err != nil {
		logger.Error("Failed to list members", slog.String("branch_id", branchID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list members"})
		return
	}

	now := h.clock.Now()
	responses := make([]dto.MemberResponse, len(members))
	for i := range members {
		responses[i] = dto.ToMemberResponse(&members[i], now)
	}
	c.JSON(http.StatusOK, gin.H{"members": responses})
}

func (h *memberHandler) activatePlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("memberID")

	var req dto.ActivatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ActivatePlan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	member, txns, err := h.memberService.ActivateOrRenewPlan(c.Request.Context(), memberID, req)
	if err != nil {
		respondTransitionError(c, logger, err)
		return
	}

	logger.Info("Plan activated", slog.String("member_id", memberID), slog.String("plan", string(req.Plan.Plan)))
	c.JSON(http.StatusOK, h.transitionResponse(dto.ToMemberResponse(member, h.clock.Now()), dto.ToTransactionResponses(txns)))
}

func (h *memberHandler) issueCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("memberID")

	var req dto.IssueCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	member, txns, err := h.memberService.IssueCard(c.Request.Context(), memberID, req)
	if err != nil {
		respondTransitionError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, h.transitionResponse(dto.ToMemberResponse(member, h.clock.Now()), dto.ToTransactionResponses(txns)))
}

func (h *memberHandler) returnCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("memberID")

	var req dto.ReturnCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	member, txns, err := h.memberService.ReturnCard(c.Request.Context(), memberID, req)
	if err != nil {
		respondTransitionError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, h.transitionResponse(dto.ToMemberResponse(member, h.clock.Now()), dto.ToTransactionResponses(txns)))
}

func (h *memberHandler) assignLocker(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("memberID")

	var req dto.AssignLockerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	member, txns, err := h.memberService.AssignLocker(c.Request.Context(), memberID, req)
	if err != nil {
		respondTransitionError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, h.transitionResponse(dto.ToMemberResponse(member, h.clock.Now()), dto.ToTransactionResponses(txns)))
}

func (h *memberHandler) listMemberTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("memberID")

	txns, err := h.txnService.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		logger.Error("Failed to list member transactions", slog.String("member_id", memberID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": dto.ToTransactionResponses(txns)})
}

func (h *memberHandler) clearPlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ClearPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ClearPlan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.memberService.ClearPlan(c.Request.Context(), req); err != nil {
		respondTransitionError(c, logger, err)
		return
	}

	logger.Info("Plan cleared", slog.Int("members", len(req.MemberIDs)))
	c.JSON(http.StatusOK, gin.H{"cleared": len(req.MemberIDs)})
}

func (h *memberHandler) deleteMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("memberID")

	if err := h.memberService.DeleteMember(c.Request.Context(), memberID); err != nil {
		respondTransitionError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": memberID})
}
