package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
	portsrepo "github.com/shelfdesk/shelfdesk_backend/internal/core/ports/repositories"
	portssvc "github.com/shelfdesk/shelfdesk_backend/internal/core/ports/services"
	"github.com/shelfdesk/shelfdesk_backend/internal/middleware"
	"github.com/shelfdesk/shelfdesk_backend/internal/platform/clock"
)

// capacityService computes a branch's card and locker stock position from
// the configured totals and the current grant holders.
type capacityService struct {
	branchRepo portsrepo.BranchRepositoryFacade
	memberRepo portsrepo.MemberReader
	clock      clock.Clock
}

// NewCapacityService creates a new capacity tracker.
func NewCapacityService(branchRepo portsrepo.BranchRepositoryFacade, memberRepo portsrepo.MemberReader, clk clock.Clock) portssvc.CapacitySvcFacade {
	return &capacityService{branchRepo: branchRepo, memberRepo: memberRepo, clock: clk}
}

var _ portssvc.CapacitySvcFacade = (*capacityService)(nil)

func (s *capacityService) fetch(ctx context.Context, branchID string) (*domain.Branch, []domain.Member, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	branch, err := s.branchRepo.FindBranchByID(ctx, branchID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find branch %s: %w", branchID, err)
	}

	holders, err := s.memberRepo.FindGrantHolders(ctx, branchID)
	if err != nil {
		logger.Error("Failed to fetch grant holders", slog.String("branch_id", branchID), slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to fetch grant holders: %w", err)
	}
	return branch, holders, nil
}

func (s *capacityService) CardStats(ctx context.Context, branchID string) (domain.CardStats, error) {
	branch, holders, err := s.fetch(ctx, branchID)
	if err != nil {
		return domain.CardStats{}, err
	}
	return domain.ComputeCardStats(branch.TotalCards, holders, s.clock.Now()), nil
}

func (s *capacityService) LockerStats(ctx context.Context, branchID string) (domain.LockerStats, error) {
	branch, holders, err := s.fetch(ctx, branchID)
	if err != nil {
		return domain.LockerStats{}, err
	}
	return domain.ComputeLockerStats(branch.TotalLockers, holders, s.clock.Now()), nil
}
