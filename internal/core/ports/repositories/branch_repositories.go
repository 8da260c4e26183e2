package repositories

import (
	"context"
	"time"

	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
)

// BranchRepositoryFacade defines persistence operations for branches.
type BranchRepositoryFacade interface {
	// SaveBranch inserts a new branch.
	SaveBranch(ctx context.Context, branch domain.Branch) error

	// FindBranchByID retrieves a branch by its unique identifier.
	FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)

	// UpdateCapacity sets a branch's total card and locker stock. This is the
	// only mutation path for stock counts.
	UpdateCapacity(ctx context.Context, branchID string, totalCards, totalLockers int, updatedBy string, now time.Time) error
}
