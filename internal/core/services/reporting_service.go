package services

import (
	"context"
	"fmt"

	"github.com/shelfdesk/shelfdesk_backend/internal/apperrors"
	portsrepo "github.com/shelfdesk/shelfdesk_backend/internal/core/ports/repositories"
	portssvc "github.com/shelfdesk/shelfdesk_backend/internal/core/ports/services"
	"github.com/shelfdesk/shelfdesk_backend/internal/dto"
)

type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	branchRepo    portsrepo.BranchRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, branchRepo portsrepo.BranchRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo, branchRepo: branchRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) validateRange(params dto.ReportingParams) error {
	if params.To.Before(params.From) {
		return fmt.Errorf("%w: report range ends before it starts", apperrors.ErrValidation)
	}
	return nil
}

func (s *reportingService) RevenueSummary(ctx context.Context, branchID string, params dto.ReportingParams) (*dto.RevenueSummaryResponse, error) {
	if err := s.validateRange(params); err != nil {
		return nil, err
	}
	if _, err := s.branchRepo.FindBranchByID(ctx, branchID); err != nil {
		return nil, fmt.Errorf("failed to resolve branch %s: %w", branchID, err)
	}

	rows, err := s.reportingRepo.RevenueSummary(ctx, branchID, params.From, params.To)
	if err != nil {
		return nil, fmt.Errorf("failed to build revenue summary: %w", err)
	}
	return &dto.RevenueSummaryResponse{
		BranchID: branchID,
		From:     params.From,
		To:       params.To,
		Rows:     rows,
	}, nil
}

func (s *reportingService) DailyRevenue(ctx context.Context, branchID string, params dto.ReportingParams) (*dto.DailyRevenueResponse, error) {
	if err := s.validateRange(params); err != nil {
		return nil, err
	}
	if _, err := s.branchRepo.FindBranchByID(ctx, branchID); err != nil {
		return nil, fmt.Errorf("failed to resolve branch %s: %w", branchID, err)
	}

	days, err := s.reportingRepo.DailyRevenue(ctx, branchID, params.From, params.To)
	if err != nil {
		return nil, fmt.Errorf("failed to build daily revenue: %w", err)
	}
	return &dto.DailyRevenueResponse{
		BranchID: branchID,
		From:     params.From,
		To:       params.To,
		Days:     days,
	}, nil
}
