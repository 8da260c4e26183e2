package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
	portsrepo "github.com/shelfdesk/shelfdesk_backend/internal/core/ports/repositories"
	portssvc "github.com/shelfdesk/shelfdesk_backend/internal/core/ports/services"
	"github.com/shelfdesk/shelfdesk_backend/internal/dto"
	"github.com/shelfdesk/shelfdesk_backend/internal/middleware"
	"github.com/shelfdesk/shelfdesk_backend/internal/platform/clock"
)

type branchService struct {
	branchRepo portsrepo.BranchRepositoryFacade
	clock      clock.Clock
}

// NewBranchService creates a new branch service.
func NewBranchService(branchRepo portsrepo.BranchRepositoryFacade, clk clock.Clock) portssvc.BranchSvcFacade {
	return &branchService{branchRepo: branchRepo, clock: clk}
}

var _ portssvc.BranchSvcFacade = (*branchService)(nil)

func (s *branchService) CreateBranch(ctx context.Context, req dto.CreateBranchRequest) (*domain.Branch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := s.clock.Now()
	branch := domain.Branch{
		BranchID:     uuid.NewString(),
		Name:         req.Name,
		TotalCards:   req.TotalCards,
		TotalLockers: req.TotalLockers,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.OperatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: req.OperatorID,
		},
	}

	if err := s.branchRepo.SaveBranch(ctx, branch); err != nil {
		logger.Error("Failed to create branch", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}

	logger.Info("Branch created", slog.String("branch_id", branch.BranchID), slog.String("name", branch.Name))
	return &branch, nil
}

func (s *branchService) GetBranch(ctx context.Context, branchID string) (*domain.Branch, error) {
	return s.branchRepo.FindBranchByID(ctx, branchID)
}

func (s *branchService) UpdateCapacity(ctx context.Context, branchID string, req dto.UpdateCapacityRequest) (*domain.Branch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := s.clock.Now()
	if err := s.branchRepo.UpdateCapacity(ctx, branchID, req.TotalCards, req.TotalLockers, req.OperatorID, now); err != nil {
		logger.Error("Failed to update capacity", slog.String("branch_id", branchID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update capacity for branch %s: %w", branchID, err)
	}

	logger.Info("Capacity updated",
		slog.String("branch_id", branchID),
		slog.Int("total_cards", req.TotalCards),
		slog.Int("total_lockers", req.TotalLockers),
	)
	return s.branchRepo.FindBranchByID(ctx, branchID)
}
