package services

import (
	"context"

	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
	"github.com/shelfdesk/shelfdesk_backend/internal/dto"
)

// MemberSvcFacade is the membership transition engine: the only component
// with side effects, all of them through the persistence ports. Every
// operation validates its invariants before any write, and multi-write
// transitions are applied atomically.
type MemberSvcFacade interface {
	// RegisterMember creates a member with no plan (expiry == join date) and
	// charges the registration fee. Duplicate phone or email within the
	// branch fails with apperrors.ErrDuplicate.
	RegisterMember(ctx context.Context, branchID string, req dto.RegisterMemberRequest) (*domain.Member, error)

	// GetMember retrieves a single member.
	GetMember(ctx context.Context, memberID string) (*domain.Member, error)

	// ListMembers retrieves a branch's members.
	ListMembers(ctx context.Context, branchID string, params dto.ListMembersParams) ([]domain.Member, error)

	// ActivateOrRenewPlan purchases or renews a plan, optionally granting a
	// card, locker, or seat, and returns the updated member plus the ledger
	// entries produced.
	ActivateOrRenewPlan(ctx context.Context, memberID string, req dto.ActivatePlanRequest) (*domain.Member, []domain.Transaction, error)

	// IssueCard issues a physical card, charging the deposit.
	IssueCard(ctx context.Context, memberID string, req dto.IssueCardRequest) (*domain.Member, []domain.Transaction, error)

	// ReturnCard records a card return and refunds the deposit. Fails with
	// apperrors.ErrNoCardIssued when the member holds no card.
	ReturnCard(ctx context.Context, memberID string, req dto.ReturnCardRequest) (*domain.Member, []domain.Transaction, error)

	// AssignLocker assigns a locker after an availability check. Payment mode
	// INCLUDED records no ledger entry.
	AssignLocker(ctx context.Context, memberID string, req dto.AssignLockerRequest) (*domain.Member, []domain.Transaction, error)

	// ClearPlan bulk-resets plan state and deletes the members'
	// MEMBERSHIP/CARD/LOCKER ledger entries. REGISTRATION entries survive.
	ClearPlan(ctx context.Context, req dto.ClearPlanRequest) error

	// DeleteMember removes a member, cascading to all its transactions.
	DeleteMember(ctx context.Context, memberID string) error
}
