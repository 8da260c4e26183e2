package repositories

import (
	"context"
	"time"

	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
)

// MemberReader defines read operations for member data.
type MemberReader interface {
	// FindMemberByID retrieves a member by its unique identifier.
	FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// FindMemberByContact retrieves a member of the branch whose phone or
	// email matches. Returns nil, ErrNotFound when no member matches.
	FindMemberByContact(ctx context.Context, branchID, phone, email string) (*domain.Member, error)

	// FindMembersByResourceKey retrieves every member of the branch currently
	// recorded against the given locker number or seat string.
	FindMembersByResourceKey(ctx context.Context, branchID string, kind domain.ResourceKind, key string) ([]domain.Member, error)

	// ListMembersByBranch retrieves members of a branch with limit/offset paging.
	ListMembersByBranch(ctx context.Context, branchID string, limit, offset int) ([]domain.Member, error)

	// FindGrantHolders retrieves every member of the branch holding a card
	// (issued, whatever its return state) or an assigned locker, for stock
	// computations.
	FindGrantHolders(ctx context.Context, branchID string) ([]domain.Member, error)
}

// MemberWriter defines write operations for member data.
type MemberWriter interface {
	// CreateMember inserts a new member and its registration transaction in
	// one database transaction. A unique-constraint violation on the branch's
	// phone or email surfaces as ErrDuplicate.
	CreateMember(ctx context.Context, member domain.Member, registration domain.Transaction) error

	// ApplyTransition updates a member and inserts the accompanying ledger
	// entries as a single atomic unit: all writes land or none do. When the
	// update grants a locker, expired holders of the same key are released
	// inside the same transaction. A unique-constraint violation from a live
	// holder of the locker surfaces as ErrResourceUnavailable.
	ApplyTransition(ctx context.Context, member domain.Member, txns []domain.Transaction) error

	// ClearPlanFields resets plan state for the given members: expiry back to
	// join date, plan and locker fields cleared, card forced returned, and
	// deletes their MEMBERSHIP/CARD/LOCKER transactions, all atomically.
	// REGISTRATION and SNACK entries are untouched.
	ClearPlanFields(ctx context.Context, memberIDs []string, updatedBy string, now time.Time) error

	// DeleteMembers hard-deletes members, cascading to their transactions.
	DeleteMembers(ctx context.Context, memberIDs []string) error
}

// MemberRepositoryFacade combines all member repository interfaces.
type MemberRepositoryFacade interface {
	MemberReader
	MemberWriter
}
