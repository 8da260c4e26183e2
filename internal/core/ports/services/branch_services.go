package services

import (
	"context"

	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
	"github.com/shelfdesk/shelfdesk_backend/internal/dto"
)

// BranchSvcFacade manages branches and their stock configuration.
type BranchSvcFacade interface {
	CreateBranch(ctx context.Context, req dto.CreateBranchRequest) (*domain.Branch, error)
	GetBranch(ctx context.Context, branchID string) (*domain.Branch, error)

	// UpdateCapacity is the explicit capacity-edit operation; stock counts
	// never change implicitly.
	UpdateCapacity(ctx context.Context, branchID string, req dto.UpdateCapacityRequest) (*domain.Branch, error)
}
