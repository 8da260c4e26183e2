package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/shelfdesk/shelfdesk_backend/internal/apperrors"
	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
	portssvc "github.com/shelfdesk/shelfdesk_backend/internal/core/ports/services"
	"github.com/shelfdesk/shelfdesk_backend/internal/core/services"
	"github.com/shelfdesk/shelfdesk_backend/internal/dto"
	"github.com/shelfdesk/shelfdesk_backend/internal/platform/clock"
	"github.com/shelfdesk/shelfdesk_backend/internal/platform/lock"
)

// MockMemberRepository is a mock type for the MemberRepositoryFacade interface
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) FindMemberByContact(ctx context.Context, branchID, phone, email string) (*domain.Member, error) {
	args := m.Called(ctx, branchID, phone, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) FindMembersByResourceKey(ctx context.Context, branchID string, kind domain.ResourceKind, key string) ([]domain.Member, error) {
	args := m.Called(ctx, branchID, kind, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

func (m *MockMemberRepository) ListMembersByBranch(ctx context.Context, branchID string, limit, offset int) ([]domain.Member, error) {
	args := m.Called(ctx, branchID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

func (m *MockMemberRepository) FindGrantHolders(ctx context.Context, branchID string) ([]domain.Member, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

func (m *MockMemberRepository) CreateMember(ctx context.Context, member domain.Member, registration domain.Transaction) error {
	args := m.Called(ctx, member, registration)
	return args.Error(0)
}

func (m *MockMemberRepository) ApplyTransition(ctx context.Context, member domain.Member, txns []domain.Transaction) error {
	args := m.Called(ctx, member, txns)
	return args.Error(0)
}

func (m *MockMemberRepository) ClearPlanFields(ctx context.Context, memberIDs []string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, memberIDs, updatedBy, now)
	return args.Error(0)
}

func (m *MockMemberRepository) DeleteMembers(ctx context.Context, memberIDs []string) error {
	args := m.Called(ctx, memberIDs)
	return args.Error(0)
}

// MockBranchRepository is a mock type for the BranchRepositoryFacade interface
type MockBranchRepository struct {
	mock.Mock
}

func (m *MockBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) UpdateCapacity(ctx context.Context, branchID string, totalCards, totalLockers int, updatedBy string, now time.Time) error {
	args := m.Called(ctx, branchID, totalCards, totalLockers, updatedBy, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type MembershipServiceTestSuite struct {
	suite.Suite
	mockMemberRepo *MockMemberRepository
	mockBranchRepo *MockBranchRepository
	now            time.Time
	branch         domain.Branch
	service        portssvc.MemberSvcFacade
}

func (suite *MembershipServiceTestSuite) SetupTest() {
	suite.mockMemberRepo = new(MockMemberRepository)
	suite.mockBranchRepo = new(MockBranchRepository)
	suite.now = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	suite.branch = domain.Branch{
		BranchID:     uuid.NewString(),
		Name:         "Main Branch",
		TotalCards:   10,
		TotalLockers: 10,
	}

	clk := clock.Fixed(suite.now)
	ledger := services.NewResourceLedgerService(suite.mockMemberRepo, clk)
	capacity := services.NewCapacityService(suite.mockBranchRepo, suite.mockMemberRepo, clk)
	suite.service = services.NewMembershipService(suite.mockMemberRepo, suite.mockBranchRepo, ledger, capacity, clk, lock.Noop{})
}

func (suite *MembershipServiceTestSuite) member(mutate func(*domain.Member)) *domain.Member {
	m := &domain.Member{
		MemberID:   uuid.NewString(),
		BranchID:   suite.branch.BranchID,
		Name:       "Asha Verma",
		Phone:      "9876543210",
		Email:      "asha@example.com",
		JoinDate:   suite.now.AddDate(0, -2, 0),
		ExpiryDate: suite.now.AddDate(0, -2, 0),
	}
	if mutate != nil {
		mutate(m)
	}
	return m
}

func ptr[T any](v T) *T { return &v }

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func cashPayment() dto.PaymentRequest {
	return dto.PaymentRequest{Mode: domain.PaymentCash}
}

func splitPayment(cash, upi int64) dto.PaymentRequest {
	c, u := dec(cash), dec(upi)
	return dto.PaymentRequest{Mode: domain.PaymentSplit, CashAmount: &c, UpiAmount: &u}
}

// --- Register ---

func (suite *MembershipServiceTestSuite) TestRegisterMember_Success() {
	ctx := context.Background()
	req := dto.RegisterMemberRequest{
		Name:       "Asha Verma",
		Phone:      "9876543210",
		Email:      "asha@example.com",
		Payment:    cashPayment(),
		OperatorID: "op-1",
	}

	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil)
	suite.mockMemberRepo.On("FindMemberByContact", ctx, suite.branch.BranchID, req.Phone, req.Email).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockMemberRepo.On("CreateMember", ctx, mock.AnythingOfType("domain.Member"), mock.AnythingOfType("domain.Transaction")).
		Return(nil).Once()

	member, err := suite.service.RegisterMember(ctx, suite.branch.BranchID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(member)
	suite.NotEmpty(member.MemberID)
	suite.Equal(suite.now, member.JoinDate)
	suite.Equal(suite.now, member.ExpiryDate)
	suite.Nil(member.SubscriptionPlan)
	suite.Equal(domain.StatusExpired, member.Status(suite.now.Add(time.Nanosecond)))

	registration := suite.mockMemberRepo.Calls[1].Arguments.Get(2).(domain.Transaction)
	suite.Equal(domain.TxnRegistration, registration.Type)
	suite.True(registration.Amount.Equal(dec(50)))
	suite.Equal(domain.PaymentCash, registration.PaymentMode)

	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func (suite *MembershipServiceTestSuite) TestRegisterMember_DuplicatePhone() {
	ctx := context.Background()
	existing := suite.member(nil)
	req := dto.RegisterMemberRequest{
		Name:       "Someone Else",
		Phone:      existing.Phone,
		Email:      "other@example.com",
		Payment:    cashPayment(),
		OperatorID: "op-1",
	}

	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil)
	suite.mockMemberRepo.On("FindMemberByContact", ctx, suite.branch.BranchID, req.Phone, req.Email).
		Return(existing, nil).Once()

	member, err := suite.service.RegisterMember(ctx, suite.branch.BranchID, req)

	suite.Require().Error(err)
	suite.Nil(member)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockMemberRepo.AssertNotCalled(suite.T(), "CreateMember", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MembershipServiceTestSuite) TestRegisterMember_RaceCaughtByConstraint() {
	ctx := context.Background()
	req := dto.RegisterMemberRequest{
		Name:       "Asha Verma",
		Phone:      "9876543210",
		Payment:    cashPayment(),
		OperatorID: "op-1",
	}

	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil)
	suite.mockMemberRepo.On("FindMemberByContact", ctx, suite.branch.BranchID, req.Phone, "").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockMemberRepo.On("CreateMember", ctx, mock.Anything, mock.Anything).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.RegisterMember(ctx, suite.branch.BranchID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

// --- Plan activation ---

func (suite *MembershipServiceTestSuite) TestActivatePlan_BundleWithCardAndLocker() {
	ctx := context.Background()
	member := suite.member(nil)

	suite.mockMemberRepo.On("FindMemberByID", ctx, member.MemberID).Return(member, nil)
	// Locker L5 was held by a member whose plan lapsed ten days ago, so the
	// key is assignable.
	expiredHolder := suite.member(func(m *domain.Member) {
		m.Name = "Previous Holder"
		m.ExpiryDate = suite.now.AddDate(0, 0, -10)
		m.LockerAssigned = true
		m.LockerNumber = ptr("L5")
	})
	suite.mockMemberRepo.On("FindMembersByResourceKey", ctx, suite.branch.BranchID, domain.ResourceLocker, "L5").
		Return([]domain.Member{*expiredHolder}, nil)
	suite.mockMemberRepo.On("FindMembersByResourceKey", ctx, suite.branch.BranchID, domain.ResourceSeat, "S1").
		Return([]domain.Member{}, nil)
	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil)
	suite.mockMemberRepo.On("FindGrantHolders", ctx, suite.branch.BranchID).
		Return([]domain.Member{*expiredHolder}, nil)
	suite.mockMemberRepo.On("ApplyTransition", ctx, mock.AnythingOfType("domain.Member"), mock.AnythingOfType("[]domain.Transaction")).
		Return(nil).Once()

	req := dto.ActivatePlanRequest{
		Plan: dto.PlanSelection{Plan: domain.PlanMonthly, PlanFee: dec(1200)},
		Allocation: dto.AllocationRequest{
			WantsCard:    true,
			WantsLocker:  true,
			LockerNumber: ptr("L5"),
			SeatNo:       ptr("S1"),
		},
		Payment:    splitPayment(800, 700),
		OperatorID: "op-1",
	}

	updated, txns, err := suite.service.ActivateOrRenewPlan(ctx, member.MemberID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Require().Len(txns, 3)

	suite.Equal(suite.now.Add(30*24*time.Hour), updated.ExpiryDate)
	suite.Equal(domain.PlanMonthly, *updated.SubscriptionPlan)
	suite.True(updated.CardIssued)
	suite.True(updated.LockerAssigned)
	suite.Equal("L5", *updated.LockerNumber)
	suite.Equal("S1", *updated.SeatNo)

	// Cash is allocated to entries in order: the 1200 plan fee absorbs all
	// 800 cash plus 400 upi, so the deposits settle as pure upi.
	suite.Equal(domain.TxnMembership, txns[0].Type)
	suite.Equal(domain.PaymentSplit, txns[0].PaymentMode)
	suite.True(txns[0].CashAmount.Equal(dec(800)))
	suite.True(txns[0].UpiAmount.Equal(dec(400)))
	suite.Equal(domain.TxnCard, txns[1].Type)
	suite.Equal(domain.PaymentUPI, txns[1].PaymentMode)
	suite.True(txns[1].Amount.Equal(dec(100)))
	suite.Equal(domain.TxnLocker, txns[2].Type)
	suite.Equal(domain.PaymentUPI, txns[2].PaymentMode)
	suite.True(txns[2].Amount.Equal(dec(200)))

	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func (suite *MembershipServiceTestSuite) TestActivatePlan_SplitMismatch() {
	ctx := context.Background()
	member := suite.member(nil)

	suite.mockMemberRepo.On("FindMemberByID", ctx, member.MemberID).Return(member, nil)
	suite.mockMemberRepo.On("FindMembersByResourceKey", ctx, suite.branch.BranchID, domain.ResourceLocker, "L5").
		Return([]domain.Member{}, nil)
	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil)
	suite.mockMemberRepo.On("FindGrantHolders", ctx, suite.branch.BranchID).Return([]domain.Member{}, nil)

	req := dto.ActivatePlanRequest{
		Plan: dto.PlanSelection{Plan: domain.PlanMonthly, PlanFee: dec(1200)},
		Allocation: dto.AllocationRequest{
			WantsCard:    true,
			WantsLocker:  true,
			LockerNumber: ptr("L5"),
		},
		Payment:    splitPayment(800, 600), // 1400 against a 1500 total
		OperatorID: "op-1",
	}

	_, _, err := suite.service.ActivateOrRenewPlan(ctx, member.MemberID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrSplitMismatch)
	suite.mockMemberRepo.AssertNotCalled(suite.T(), "ApplyTransition", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MembershipServiceTestSuite) TestActivatePlan_LegacyBackfillToleratesOneRupee() {
	ctx := context.Background()
	member := suite.member(nil)

	suite.mockMemberRepo.On("FindMemberByID", ctx, member.MemberID).Return(member, nil)
	suite.mockMemberRepo.On("ApplyTransition", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	req := dto.ActivatePlanRequest{
		Plan:           dto.PlanSelection{Plan: domain.PlanMonthly, PlanFee: dec(1200)},
		Payment:        splitPayment(800, 399), // off by one rupee
		LegacyBackfill: true,
		OperatorID:     "op-1",
	}

	_, txns, err := suite.service.ActivateOrRenewPlan(ctx, member.MemberID, req)

	suite.Require().NoError(err)
	suite.Require().Len(txns, 1)
	suite.Equal(domain.TxnMembership, txns[0].Type)
}

func (suite *MembershipServiceTestSuite) TestActivatePlan_LockerHeldByActiveMember() {
	ctx := context.Background()
	member := suite.member(nil)
	activeHolder := suite.member(func(m *domain.Member) {
		m.Name = "Ravi Kumar"
		m.ExpiryDate = suite.now.AddDate(0, 1, 0)
		m.LockerAssigned = true
		m.LockerNumber = ptr("L5")
	})

	suite.mockMemberRepo.On("FindMemberByID", ctx, member.MemberID).Return(member, nil)
	suite.mockMemberRepo.On("FindMembersByResourceKey", ctx, suite.branch.BranchID, domain.ResourceLocker, "L5").
		Return([]domain.Member{*activeHolder}, nil)

	req := dto.ActivatePlanRequest{
		Plan: dto.PlanSelection{Plan: domain.PlanMonthly, PlanFee: dec(1200)},
		Allocation: dto.AllocationRequest{
			WantsLocker:  true,
			LockerNumber: ptr("L5"),
		},
		Payment:    cashPayment(),
		OperatorID: "op-1",
	}

	_, _, err := suite.service.ActivateOrRenewPlan(ctx, member.MemberID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrResourceUnavailable)
	suite.Contains(err.Error(), "Ravi Kumar")
}

func (suite *MembershipServiceTestSuite) TestActivatePlan_NoCardsLeft() {
	ctx := context.Background()
	member := suite.member(nil)
	tinyBranch := suite.branch
	tinyBranch.TotalCards = 1
	holder := suite.member(func(m *domain.Member) {
		m.ExpiryDate = suite.now.AddDate(0, 1, 0)
		m.CardIssued = true
	})

	suite.mockMemberRepo.On("FindMemberByID", ctx, member.MemberID).Return(member, nil)
	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&tinyBranch, nil)
	suite.mockMemberRepo.On("FindGrantHolders", ctx, suite.branch.BranchID).Return([]domain.Member{*holder}, nil)

	req := dto.ActivatePlanRequest{
		Plan:       dto.PlanSelection{Plan: domain.PlanMonthly, PlanFee: dec(1200)},
		Allocation: dto.AllocationRequest{WantsCard: true},
		Payment:    cashPayment(),
		OperatorID: "op-1",
	}

	_, _, err := suite.service.ActivateOrRenewPlan(ctx, member.MemberID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
}

func (suite *MembershipServiceTestSuite) TestRenewPlan_ExistingCardNotRecharged() {
	ctx := context.Background()
	member := suite.member(func(m *domain.Member) {
		m.ExpiryDate = suite.now.AddDate(0, 0, 1)
		m.CardIssued = true
	})

	suite.mockMemberRepo.On("FindMemberByID", ctx, member.MemberID).Return(member, nil)
	suite.mockMemberRepo.On("ApplyTransition", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	req := dto.ActivatePlanRequest{
		Plan:       dto.PlanSelection{Plan: domain.PlanQuarterly, PlanFee: dec(3000)},
		Allocation: dto.AllocationRequest{WantsCard: true},
		Payment:    cashPayment(),
		OperatorID: "op-1",
	}

	_, txns, err := suite.service.ActivateOrRenewPlan(ctx, member.MemberID, req)

	suite.Require().NoError(err)
	suite.Require().Len(txns, 1)
	suite.Equal(domain.TxnMembership, txns[0].Type)
	suite.True(txns[0].Amount.Equal(dec(3000)))
}

func (suite *MembershipServiceTestSuite) TestActivatePlan_LockerFreeWithPlan() {
	ctx := context.Background()
	member := suite.member(nil)

	suite.mockMemberRepo.On("FindMemberByID", ctx, member.MemberID).Return(member, nil)
	suite.mockMemberRepo.On("FindMembersByResourceKey", ctx, suite.branch.BranchID, domain.ResourceLocker, "L7").
		Return([]domain.Member{}, nil)
	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil)
	suite.mockMemberRepo.On("FindGrantHolders", ctx, suite.branch.BranchID).Return([]domain.Member{}, nil)
	suite.mockMemberRepo.On("ApplyTransition", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	req := dto.ActivatePlanRequest{
		Plan: dto.PlanSelection{Plan: domain.PlanAnnual, PlanFee: dec(12000), LockerFreeWithPlan: true},
		Allocation: dto.AllocationRequest{
			WantsLocker:  true,
			LockerNumber: ptr("L7"),
		},
		Payment:    cashPayment(),
		OperatorID: "op-1",
	}

	updated, txns, err := suite.service.ActivateOrRenewPlan(ctx, member.MemberID, req)

	suite.Require().NoError(err)
	suite.Require().Len(txns, 1) // no LOCKER entry for a bundled locker
	suite.True(updated.LockerAssigned)
	suite.Equal(domain.PaymentIncluded, *updated.LockerPaymentMode)
}

// --- Card lifecycle ---

func (suite *MembershipServiceTestSuite) TestIssueCard_AlreadyHeld() {
	ctx := context.Background()
	member := suite.member(func(m *domain.Member) { m.CardIssued = true })

	suite.mockMemberRepo.On("FindMemberByID", ctx, member.MemberID).Return(member, nil)

	_, _, err := suite.service.IssueCard(ctx, member.MemberID, dto.IssueCardRequest{
		Payment:    cashPayment(),
		OperatorID: "op-1",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MembershipServiceTestSuite) TestReturnCard_RefundsDeposit() {
	ctx := context.Background()
	member := suite.member(func(m *domain.Member) { m.CardIssued = true })

	suite.mockMemberRepo.On("FindMemberByID", ctx, member.MemberID).Return(member, nil)
	suite.mockMemberRepo.On("ApplyTransition", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	updated, txns, err := suite.service.ReturnCard(ctx, member.MemberID, dto.ReturnCardRequest{OperatorID: "op-1"})

	suite.Require().NoError(err)
	suite.True(updated.CardReturned)
	suite.Require().Len(txns, 1)
	suite.True(txns[0].Amount.Equal(dec(-100)))
	suite.True(txns[0].IsRefund())
	suite.Equal(domain.PaymentCash, txns[0].PaymentMode)
}

func (suite *MembershipServiceTestSuite) TestReturnCard_NoCardOutstanding() {
	ctx := context.Background()
	member := suite.member(func(m *domain.Member) {
		m.CardIssued = true
		m.CardReturned = true
	})

	suite.mockMemberRepo.On("FindMemberByID", ctx, member.MemberID).Return(member, nil)

	_, _, err := suite.service.ReturnCard(ctx, member.MemberID, dto.ReturnCardRequest{OperatorID: "op-1"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoCardIssued)
}

// --- Locker assignment ---

func (suite *MembershipServiceTestSuite) TestAssignLocker_IncludedWritesNoLedgerEntry() {
	ctx := context.Background()
	member := suite.member(nil)

	suite.mockMemberRepo.On("FindMemberByID", ctx, member.MemberID).Return(member, nil)
	suite.mockMemberRepo.On("FindMembersByResourceKey", ctx, suite.branch.BranchID, domain.ResourceLocker, "L3").
		Return([]domain.Member{}, nil)
	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil)
	suite.mockMemberRepo.On("FindGrantHolders", ctx, suite.branch.BranchID).Return([]domain.Member{}, nil)
	suite.mockMemberRepo.On("ApplyTransition", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	updated, txns, err := suite.service.AssignLocker(ctx, member.MemberID, dto.AssignLockerRequest{
		LockerNumber: "L3",
		Payment:      dto.PaymentRequest{Mode: domain.PaymentIncluded},
		OperatorID:   "op-1",
	})

	suite.Require().NoError(err)
	suite.Empty(txns)
	suite.True(updated.LockerAssigned)
	suite.Equal("L3", *updated.LockerNumber)
	suite.Equal(domain.PaymentIncluded, *updated.LockerPaymentMode)
}

func (suite *MembershipServiceTestSuite) TestAssignLocker_ChargesDeposit() {
	ctx := context.Background()
	member := suite.member(nil)

	suite.mockMemberRepo.On("FindMemberByID", ctx, member.MemberID).Return(member, nil)
	suite.mockMemberRepo.On("FindMembersByResourceKey", ctx, suite.branch.BranchID, domain.ResourceLocker, "L3").
		Return([]domain.Member{}, nil)
	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil)
	suite.mockMemberRepo.On("FindGrantHolders", ctx, suite.branch.BranchID).Return([]domain.Member{}, nil)
	suite.mockMemberRepo.On("ApplyTransition", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	_, txns, err := suite.service.AssignLocker(ctx, member.MemberID, dto.AssignLockerRequest{
		LockerNumber: "L3",
		Payment:      cashPayment(),
		OperatorID:   "op-1",
	})

	suite.Require().NoError(err)
	suite.Require().Len(txns, 1)
	suite.Equal(domain.TxnLocker, txns[0].Type)
	suite.True(txns[0].Amount.Equal(dec(200)))
}

func (suite *MembershipServiceTestSuite) TestAssignLocker_ExpiredHolderDoesNotBlockRegrant() {
	ctx := context.Background()
	member := suite.member(nil)
	// L5's only holder lapsed ten days ago. Regranting goes through a single
	// ApplyTransition call; the repository releases the lapsed assignment
	// inside that transaction, keyed on the new holder's update timestamp, so
	// no separate ClearPlanFields pass is needed.
	expiredHolder := suite.member(func(m *domain.Member) {
		m.Name = "Previous Holder"
		m.ExpiryDate = suite.now.AddDate(0, 0, -10)
		m.LockerAssigned = true
		m.LockerNumber = ptr("L5")
	})

	suite.mockMemberRepo.On("FindMemberByID", ctx, member.MemberID).Return(member, nil)
	suite.mockMemberRepo.On("FindMembersByResourceKey", ctx, suite.branch.BranchID, domain.ResourceLocker, "L5").
		Return([]domain.Member{*expiredHolder}, nil)
	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil)
	suite.mockMemberRepo.On("FindGrantHolders", ctx, suite.branch.BranchID).
		Return([]domain.Member{*expiredHolder}, nil)
	suite.mockMemberRepo.On("ApplyTransition", ctx, mock.MatchedBy(func(m domain.Member) bool {
		return m.MemberID == member.MemberID &&
			m.LockerAssigned && m.LockerNumber != nil && *m.LockerNumber == "L5" &&
			m.LastUpdatedAt.Equal(suite.now)
	}), mock.AnythingOfType("[]domain.Transaction")).Return(nil).Once()

	updated, _, err := suite.service.AssignLocker(ctx, member.MemberID, dto.AssignLockerRequest{
		LockerNumber: "L5",
		Payment:      cashPayment(),
		OperatorID:   "op-1",
	})

	suite.Require().NoError(err)
	suite.True(updated.LockerAssigned)
	suite.Equal("L5", *updated.LockerNumber)
	suite.mockMemberRepo.AssertNotCalled(suite.T(), "ClearPlanFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

// --- Admin ---

func (suite *MembershipServiceTestSuite) TestClearPlan_DelegatesToRepo() {
	ctx := context.Background()
	ids := []string{uuid.NewString(), uuid.NewString()}

	suite.mockMemberRepo.On("ClearPlanFields", ctx, ids, "op-1", suite.now).Return(nil).Once()

	err := suite.service.ClearPlan(ctx, dto.ClearPlanRequest{MemberIDs: ids, OperatorID: "op-1"})

	suite.Require().NoError(err)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func (suite *MembershipServiceTestSuite) TestDeleteMember_NotFound() {
	ctx := context.Background()
	memberID := uuid.NewString()

	suite.mockMemberRepo.On("FindMemberByID", ctx, memberID).Return(nil, apperrors.ErrNotFound)

	err := suite.service.DeleteMember(ctx, memberID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockMemberRepo.AssertNotCalled(suite.T(), "DeleteMembers", mock.Anything, mock.Anything)
}

func TestMembershipServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MembershipServiceTestSuite))
}
