package dto

import (
	"time"

	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
)

// CreateBranchRequest defines the data needed to create a branch.
type CreateBranchRequest struct {
	Name         string `json:"name" binding:"required"`
	TotalCards   int    `json:"totalCards" binding:"min=0"`
	TotalLockers int    `json:"totalLockers" binding:"min=0"`
	OperatorID   string `json:"operatorID" binding:"required"`
}

// UpdateCapacityRequest is the explicit capacity-edit operation, the only
// way branch stock counts change.
type UpdateCapacityRequest struct {
	TotalCards   int    `json:"totalCards" binding:"min=0"`
	TotalLockers int    `json:"totalLockers" binding:"min=0"`
	OperatorID   string `json:"operatorID" binding:"required"`
}

// BranchResponse defines the data returned for a branch.
type BranchResponse struct {
	BranchID      string    `json:"branchID"`
	Name          string    `json:"name"`
	TotalCards    int       `json:"totalCards"`
	TotalLockers  int       `json:"totalLockers"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToBranchResponse converts a domain.Branch to a BranchResponse.
func ToBranchResponse(b *domain.Branch) BranchResponse {
	return BranchResponse{
		BranchID:      b.BranchID,
		Name:          b.Name,
		TotalCards:    b.TotalCards,
		TotalLockers:  b.TotalLockers,
		CreatedAt:     b.CreatedAt,
		LastUpdatedAt: b.LastUpdatedAt,
	}
}

// AvailabilityResponse reports whether a locker or seat can be assigned.
type AvailabilityResponse struct {
	Available    bool   `json:"available"`
	OccupantName string `json:"occupantName,omitempty"`
	Note         string `json:"note,omitempty"`
}
