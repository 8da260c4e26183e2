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

// resourceLedgerService decides resource availability from the current
// holders' derived status. Seats release automatically when their holder
// expires; lockers and cards carry a refundable deposit, so they stay held
// until an explicit return records the refund.
type resourceLedgerService struct {
	memberRepo portsrepo.MemberReader
	clock      clock.Clock
}

// NewResourceLedgerService creates a new resource ledger.
func NewResourceLedgerService(memberRepo portsrepo.MemberReader, clk clock.Clock) portssvc.ResourceLedgerSvcFacade {
	return &resourceLedgerService{memberRepo: memberRepo, clock: clk}
}

var _ portssvc.ResourceLedgerSvcFacade = (*resourceLedgerService)(nil)

func (s *resourceLedgerService) CheckAvailability(ctx context.Context, branchID string, kind domain.ResourceKind, key string, excludeMemberID string) (portssvc.Availability, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	holders, err := s.memberRepo.FindMembersByResourceKey(ctx, branchID, kind, key)
	if err != nil {
		logger.Error("Failed to fetch resource holders", slog.String("kind", string(kind)), slog.String("key", key), slog.String("error", err.Error()))
		return portssvc.Availability{}, fmt.Errorf("failed to check %s %s: %w", kind, key, err)
	}

	now := s.clock.Now()
	expiredHolders := 0
	for _, holder := range holders {
		if holder.MemberID == excludeMemberID {
			continue
		}
		if holder.Status(now) != domain.StatusExpired {
			return portssvc.Availability{
				Available:    false,
				OccupantName: holder.Name,
			}, nil
		}
		expiredHolders++
	}

	result := portssvc.Availability{Available: true}
	if expiredHolders > 0 {
		result.Note = fmt.Sprintf("previously held by %d expired member(s)", expiredHolders)
	}
	return result, nil
}
