package services

import (
	"context"

	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
)

// Availability is the result of a resource availability check.
type Availability struct {
	Available    bool
	OccupantName string // first active or expiring holder, when unavailable
	Note         string
}

// ResourceLedgerSvcFacade decides whether a locker or seat can be assigned,
// based solely on its current holders' derived status.
type ResourceLedgerSvcFacade interface {
	// CheckAvailability reports whether the branch's resource key is free.
	// excludeMemberID skips a member's own holding when re-checking during a
	// renewal; pass "" to exclude nobody.
	CheckAvailability(ctx context.Context, branchID string, kind domain.ResourceKind, key string, excludeMemberID string) (Availability, error)
}

// CapacitySvcFacade computes a branch's card and locker stock position.
type CapacitySvcFacade interface {
	CardStats(ctx context.Context, branchID string) (domain.CardStats, error)
	LockerStats(ctx context.Context, branchID string) (domain.LockerStats, error)
}
