package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shelfdesk/shelfdesk_backend/internal/apperrors"
	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
	portsrepo "github.com/shelfdesk/shelfdesk_backend/internal/core/ports/repositories"
	portssvc "github.com/shelfdesk/shelfdesk_backend/internal/core/ports/services"
	"github.com/shelfdesk/shelfdesk_backend/internal/dto"
	"github.com/shelfdesk/shelfdesk_backend/internal/middleware"
	"github.com/shelfdesk/shelfdesk_backend/internal/platform/clock"
	"github.com/shelfdesk/shelfdesk_backend/internal/platform/lock"
)

// lockTTL bounds how long a crashed terminal can hold an assignment lock.
const lockTTL = 10 * time.Second

// membershipService is the membership transition engine. It validates every
// invariant before any write and hands multi-write transitions to the
// repository as one atomic unit.
type membershipService struct {
	memberRepo portsrepo.MemberRepositoryFacade
	branchRepo portsrepo.BranchRepositoryFacade
	ledger     portssvc.ResourceLedgerSvcFacade
	capacity   portssvc.CapacitySvcFacade
	clock      clock.Clock
	locker     lock.Locker
	fees       domain.FeeSchedule
}

// NewMembershipService creates the membership transition engine.
func NewMembershipService(
	memberRepo portsrepo.MemberRepositoryFacade,
	branchRepo portsrepo.BranchRepositoryFacade,
	ledger portssvc.ResourceLedgerSvcFacade,
	capacity portssvc.CapacitySvcFacade,
	clk clock.Clock,
	locker lock.Locker,
) portssvc.MemberSvcFacade {
	return &membershipService{
		memberRepo: memberRepo,
		branchRepo: branchRepo,
		ledger:     ledger,
		capacity:   capacity,
		clock:      clk,
		locker:     locker,
		fees:       domain.DefaultFees(),
	}
}

var _ portssvc.MemberSvcFacade = (*membershipService)(nil)

// newTransaction builds a ledger entry stamped with the engine's clock.
func (s *membershipService) newTransaction(branchID string, memberID *string, txnType domain.TransactionType, amount decimal.Decimal, operatorID string, now time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		BranchID:      branchID,
		MemberID:      memberID,
		Type:          txnType,
		Amount:        amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorID,
		},
	}
}

// settle validates the payment against the checkout total and distributes it
// over the produced entries. A SPLIT checkout allocates cash to entries in
// order; an entry covered entirely by one instrument is recorded under that
// instrument, so every stored entry satisfies cash + upi == amount exactly.
func settle(entries []*domain.Transaction, payment dto.PaymentRequest, total decimal.Decimal, splitMode domain.SplitMode) error {
	switch payment.Mode {
	case domain.PaymentCash, domain.PaymentUPI:
		for _, e := range entries {
			e.PaymentMode = payment.Mode
		}
		return nil
	case domain.PaymentSplit:
		cash, upi := payment.SplitParts()
		if err := domain.ValidateSplit(total, cash, upi, splitMode); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrSplitMismatch, err)
		}
		cashLeft := cash
		for _, e := range entries {
			switch {
			case cashLeft.GreaterThanOrEqual(e.Amount):
				e.PaymentMode = domain.PaymentCash
				cashLeft = cashLeft.Sub(e.Amount)
			case cashLeft.IsPositive():
				entryCash := cashLeft
				entryUpi := e.Amount.Sub(cashLeft)
				e.PaymentMode = domain.PaymentSplit
				e.CashAmount = &entryCash
				e.UpiAmount = &entryUpi
				cashLeft = decimal.Zero
			default:
				e.PaymentMode = domain.PaymentUPI
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: payment mode %s not valid here", apperrors.ErrValidation, payment.Mode)
	}
}

func (s *membershipService) RegisterMember(ctx context.Context, branchID string, req dto.RegisterMemberRequest) (*domain.Member, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.branchRepo.FindBranchByID(ctx, branchID); err != nil {
		return nil, fmt.Errorf("failed to resolve branch %s: %w", branchID, err)
	}

	// Serialize concurrent registrations of the same phone across terminals.
	// Duplicate detection is a precondition, so a retried register finds the
	// first attempt's member and stops instead of double-charging.
	release, err := s.locker.Acquire(ctx, "contact:"+branchID+":"+req.Phone, lockTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to acquire registration lock: %v", apperrors.ErrPersistence, err)
	}
	defer release(ctx)

	existing, err := s.memberRepo.FindMemberByContact(ctx, branchID, req.Phone, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Duplicate check failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check duplicates: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: phone or email already registered in branch", apperrors.ErrDuplicate)
	}

	now := s.clock.Now()
	member := domain.Member{
		MemberID: uuid.NewString(),
		BranchID: branchID,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
		// No plan yet: expiry equals join date.
		JoinDate:   now,
		ExpiryDate: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.OperatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: req.OperatorID,
		},
	}

	registration := s.newTransaction(branchID, &member.MemberID, domain.TxnRegistration, s.fees.Registration, req.OperatorID, now)
	if err := settle([]*domain.Transaction{&registration}, req.Payment, s.fees.Registration, domain.SplitStrict); err != nil {
		return nil, err
	}

	if err := s.memberRepo.CreateMember(ctx, member, registration); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// The database constraint caught a racing registration that our
			// check missed.
			return nil, fmt.Errorf("%w: phone or email already registered in branch", apperrors.ErrDuplicate)
		}
		logger.Error("Failed to persist registration", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Member registered", slog.String("member_id", member.MemberID), slog.String("branch_id", branchID))
	return &member, nil
}

func (s *membershipService) GetMember(ctx context.Context, memberID string) (*domain.Member, error) {
	return s.memberRepo.FindMemberByID(ctx, memberID)
}

func (s *membershipService) ListMembers(ctx context.Context, branchID string, params dto.ListMembersParams) ([]domain.Member, error) {
	limit := params.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.memberRepo.ListMembersByBranch(ctx, branchID, limit, params.Offset)
}

func (s *membershipService) ActivateOrRenewPlan(ctx context.Context, memberID string, req dto.ActivatePlanRequest) (*domain.Member, []domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find member %s: %w", memberID, err)
	}

	if req.Plan.PlanFee.IsNegative() {
		return nil, nil, fmt.Errorf("%w: plan fee cannot be negative", apperrors.ErrValidation)
	}

	duration, err := domain.PlanDuration(req.Plan.Plan, req.Plan.CustomValue, req.Plan.CustomUnit)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	alloc := req.Allocation
	alreadyHasCard := member.HoldsCard()
	alreadyHasLocker := member.LockerAssigned
	newCard := alloc.WantsCard && !alreadyHasCard
	newLockerKey := ""
	if alloc.WantsLocker {
		if alloc.LockerNumber == nil || *alloc.LockerNumber == "" {
			return nil, nil, fmt.Errorf("%w: locker number required when requesting a locker", apperrors.ErrValidation)
		}
		if !member.Holds(domain.ResourceLocker, *alloc.LockerNumber) {
			newLockerKey = *alloc.LockerNumber
		}
	}
	newSeatKey := ""
	if alloc.SeatNo != nil && *alloc.SeatNo != "" && !member.Holds(domain.ResourceSeat, *alloc.SeatNo) {
		newSeatKey = *alloc.SeatNo
	}

	// Serialize the check-then-assign window for each newly requested key.
	if newLockerKey != "" {
		release, err := s.locker.Acquire(ctx, "resource:"+member.BranchID+":LOCKER:"+newLockerKey, lockTTL)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: failed to acquire locker lock: %v", apperrors.ErrPersistence, err)
		}
		defer release(ctx)

		if err := s.ensureAvailable(ctx, member.BranchID, domain.ResourceLocker, newLockerKey, memberID); err != nil {
			return nil, nil, err
		}
		if !alreadyHasLocker {
			stats, err := s.capacity.LockerStats(ctx, member.BranchID)
			if err != nil {
				return nil, nil, err
			}
			if stats.Available == 0 {
				return nil, nil, fmt.Errorf("%w: no lockers left to issue", apperrors.ErrInsufficientStock)
			}
		}
	}
	if newSeatKey != "" {
		release, err := s.locker.Acquire(ctx, "resource:"+member.BranchID+":SEAT:"+newSeatKey, lockTTL)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: failed to acquire seat lock: %v", apperrors.ErrPersistence, err)
		}
		defer release(ctx)

		if err := s.ensureAvailable(ctx, member.BranchID, domain.ResourceSeat, newSeatKey, memberID); err != nil {
			return nil, nil, err
		}
	}
	if newCard {
		stats, err := s.capacity.CardStats(ctx, member.BranchID)
		if err != nil {
			return nil, nil, err
		}
		if stats.Available == 0 {
			return nil, nil, fmt.Errorf("%w: no cards left to issue", apperrors.ErrInsufficientStock)
		}
	}

	now := s.clock.Now()
	total := s.fees.ComputeTotal(req.Plan.PlanFee,
		alloc.WantsCard, alreadyHasCard,
		alloc.WantsLocker, alreadyHasLocker,
		req.Plan.LockerFreeWithPlan,
	)

	// One MEMBERSHIP entry for the plan amount, plus CARD/LOCKER entries
	// only for newly granted resources; existing grants are never
	// re-charged.
	membershipTxn := s.newTransaction(member.BranchID, &member.MemberID, domain.TxnMembership, req.Plan.PlanFee, req.OperatorID, now)
	entries := []*domain.Transaction{&membershipTxn}
	if newCard {
		cardTxn := s.newTransaction(member.BranchID, &member.MemberID, domain.TxnCard, s.fees.Card, req.OperatorID, now)
		entries = append(entries, &cardTxn)
	}
	if newLockerKey != "" && !alreadyHasLocker && !req.Plan.LockerFreeWithPlan {
		lockerTxn := s.newTransaction(member.BranchID, &member.MemberID, domain.TxnLocker, s.fees.Locker, req.OperatorID, now)
		entries = append(entries, &lockerTxn)
	}

	splitMode := domain.SplitStrict
	if req.LegacyBackfill {
		splitMode = domain.SplitLegacyTolerant
	}
	if err := settle(entries, req.Payment, total, splitMode); err != nil {
		return nil, nil, err
	}

	updated := *member
	plan := req.Plan.Plan
	updated.SubscriptionPlan = &plan
	updated.PlanStartDate = &now
	updated.ExpiryDate = now.Add(duration)
	if newCard {
		mode := entries[1].PaymentMode
		updated.CardIssued = true
		updated.CardReturned = false
		updated.CardPaymentMode = &mode
	}
	if alloc.WantsLocker {
		key := *alloc.LockerNumber
		mode := domain.PaymentIncluded
		if !req.Plan.LockerFreeWithPlan && len(entries) > 1 {
			mode = entries[len(entries)-1].PaymentMode
		}
		updated.LockerAssigned = true
		updated.LockerNumber = &key
		if !alreadyHasLocker {
			updated.LockerPaymentMode = &mode
		}
	}
	if alloc.SeatNo != nil && *alloc.SeatNo != "" {
		seat := *alloc.SeatNo
		updated.SeatNo = &seat
	}
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = req.OperatorID

	txns := make([]domain.Transaction, len(entries))
	for i, e := range entries {
		txns[i] = *e
	}

	if err := s.applyTransition(ctx, updated, txns); err != nil {
		return nil, nil, err
	}

	logger.Info("Plan activated",
		slog.String("member_id", memberID),
		slog.String("plan", string(plan)),
		slog.String("total", total.String()),
		slog.Int("transactions", len(txns)),
	)
	return &updated, txns, nil
}

// ensureAvailable runs the ledger check and folds an occupied result into a
// typed error carrying the occupant's name.
func (s *membershipService) ensureAvailable(ctx context.Context, branchID string, kind domain.ResourceKind, key, excludeMemberID string) error {
	avail, err := s.ledger.CheckAvailability(ctx, branchID, kind, key, excludeMemberID)
	if err != nil {
		return err
	}
	if !avail.Available {
		return fmt.Errorf("%w: %s %s is held by %s", apperrors.ErrResourceUnavailable, kind, key, avail.OccupantName)
	}
	return nil
}

// applyTransition persists a member update plus its ledger entries and
// escalates a partial-application failure. The repository applies both in
// one database transaction; anything else reaching the caller as a partial
// write would be an inconsistency, never silently logged away.
func (s *membershipService) applyTransition(ctx context.Context, member domain.Member, txns []domain.Transaction) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.memberRepo.ApplyTransition(ctx, member, txns); err != nil {
		if errors.Is(err, apperrors.ErrResourceUnavailable) || errors.Is(err, apperrors.ErrDuplicate) || errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		logger.Error("Transition persistence failed", slog.String("member_id", member.MemberID), slog.String("error", err.Error()))
		return fmt.Errorf("%w: transition for member %s: %v", apperrors.ErrPersistence, member.MemberID, err)
	}
	return nil
}

func (s *membershipService) IssueCard(ctx context.Context, memberID string, req dto.IssueCardRequest) (*domain.Member, []domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find member %s: %w", memberID, err)
	}
	if member.HoldsCard() {
		return nil, nil, fmt.Errorf("%w: member already holds a card", apperrors.ErrValidation)
	}

	stats, err := s.capacity.CardStats(ctx, member.BranchID)
	if err != nil {
		return nil, nil, err
	}
	if stats.Available == 0 {
		return nil, nil, fmt.Errorf("%w: no cards left to issue", apperrors.ErrInsufficientStock)
	}

	now := s.clock.Now()
	cardTxn := s.newTransaction(member.BranchID, &member.MemberID, domain.TxnCard, s.fees.Card, req.OperatorID, now)
	if err := settle([]*domain.Transaction{&cardTxn}, req.Payment, s.fees.Card, domain.SplitStrict); err != nil {
		return nil, nil, err
	}

	updated := *member
	updated.CardIssued = true
	updated.CardReturned = false
	updated.CardPaymentMode = &cardTxn.PaymentMode
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = req.OperatorID

	txns := []domain.Transaction{cardTxn}
	if err := s.applyTransition(ctx, updated, txns); err != nil {
		return nil, nil, err
	}

	logger.Info("Card issued", slog.String("member_id", memberID))
	return &updated, txns, nil
}

func (s *membershipService) ReturnCard(ctx context.Context, memberID string, req dto.ReturnCardRequest) (*domain.Member, []domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find member %s: %w", memberID, err)
	}
	if !member.HoldsCard() {
		return nil, nil, fmt.Errorf("%w: member %s has no outstanding card", apperrors.ErrNoCardIssued, memberID)
	}

	now := s.clock.Now()
	// Deposit refund goes out as cash at the desk.
	refund := s.newTransaction(member.BranchID, &member.MemberID, domain.TxnCard, s.fees.Card.Neg(), req.OperatorID, now)
	refund.PaymentMode = domain.PaymentCash
	refund.Notes = "card deposit refund"

	updated := *member
	updated.CardReturned = true
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = req.OperatorID

	txns := []domain.Transaction{refund}
	if err := s.applyTransition(ctx, updated, txns); err != nil {
		return nil, nil, err
	}

	logger.Info("Card returned", slog.String("member_id", memberID))
	return &updated, txns, nil
}

func (s *membershipService) AssignLocker(ctx context.Context, memberID string, req dto.AssignLockerRequest) (*domain.Member, []domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find member %s: %w", memberID, err)
	}
	if member.LockerAssigned {
		return nil, nil, fmt.Errorf("%w: member already has locker %s assigned", apperrors.ErrValidation, *member.LockerNumber)
	}

	release, err := s.locker.Acquire(ctx, "resource:"+member.BranchID+":LOCKER:"+req.LockerNumber, lockTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to acquire locker lock: %v", apperrors.ErrPersistence, err)
	}
	defer release(ctx)

	if err := s.ensureAvailable(ctx, member.BranchID, domain.ResourceLocker, req.LockerNumber, memberID); err != nil {
		return nil, nil, err
	}
	stats, err := s.capacity.LockerStats(ctx, member.BranchID)
	if err != nil {
		return nil, nil, err
	}
	if stats.Available == 0 {
		return nil, nil, fmt.Errorf("%w: no lockers left to issue", apperrors.ErrInsufficientStock)
	}

	now := s.clock.Now()
	var txns []domain.Transaction
	mode := req.Payment.Mode
	if mode != domain.PaymentIncluded {
		lockerTxn := s.newTransaction(member.BranchID, &member.MemberID, domain.TxnLocker, s.fees.Locker, req.OperatorID, now)
		if err := settle([]*domain.Transaction{&lockerTxn}, req.Payment, s.fees.Locker, domain.SplitStrict); err != nil {
			return nil, nil, err
		}
		mode = lockerTxn.PaymentMode
		txns = append(txns, lockerTxn)
	}

	key := req.LockerNumber
	updated := *member
	updated.LockerAssigned = true
	updated.LockerNumber = &key
	updated.LockerPaymentMode = &mode
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = req.OperatorID

	if err := s.applyTransition(ctx, updated, txns); err != nil {
		return nil, nil, err
	}

	logger.Info("Locker assigned", slog.String("member_id", memberID), slog.String("locker", key))
	return &updated, txns, nil
}

// ClearPlan is a destructive administrative batch reset. Plan fields go back
// to the registered-only state, the physical card is treated as returned,
// and the members' MEMBERSHIP/CARD/LOCKER ledger entries are deleted.
// REGISTRATION entries stay.
func (s *membershipService) ClearPlan(ctx context.Context, req dto.ClearPlanRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.memberRepo.ClearPlanFields(ctx, req.MemberIDs, req.OperatorID, s.clock.Now()); err != nil {
		logger.Error("Bulk plan reset failed", slog.Int("members", len(req.MemberIDs)), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Plan cleared", slog.Int("members", len(req.MemberIDs)))
	return nil
}

func (s *membershipService) DeleteMember(ctx context.Context, memberID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.memberRepo.FindMemberByID(ctx, memberID); err != nil {
		return fmt.Errorf("failed to find member %s: %w", memberID, err)
	}
	if err := s.memberRepo.DeleteMembers(ctx, []string{memberID}); err != nil {
		logger.Error("Member deletion failed", slog.String("member_id", memberID), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Member deleted", slog.String("member_id", memberID))
	return nil
}
