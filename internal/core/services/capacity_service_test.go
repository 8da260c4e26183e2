package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
	portssvc "github.com/shelfdesk/shelfdesk_backend/internal/core/ports/services"
	"github.com/shelfdesk/shelfdesk_backend/internal/core/services"
	"github.com/shelfdesk/shelfdesk_backend/internal/platform/clock"
)

type CapacityServiceTestSuite struct {
	suite.Suite
	mockMemberRepo *MockMemberRepository
	mockBranchRepo *MockBranchRepository
	now            time.Time
	branch         domain.Branch
	service        portssvc.CapacitySvcFacade
}

func (suite *CapacityServiceTestSuite) SetupTest() {
	suite.mockMemberRepo = new(MockMemberRepository)
	suite.mockBranchRepo = new(MockBranchRepository)
	suite.now = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	suite.branch = domain.Branch{
		BranchID:     uuid.NewString(),
		Name:         "Main Branch",
		TotalCards:   5,
		TotalLockers: 3,
	}
	suite.service = services.NewCapacityService(suite.mockBranchRepo, suite.mockMemberRepo, clock.Fixed(suite.now))
}

func (suite *CapacityServiceTestSuite) carded(expiry time.Time, returned bool) domain.Member {
	return domain.Member{
		MemberID:     uuid.NewString(),
		BranchID:     suite.branch.BranchID,
		ExpiryDate:   expiry,
		CardIssued:   true,
		CardReturned: returned,
	}
}

func (suite *CapacityServiceTestSuite) TestCardStats() {
	ctx := context.Background()
	holders := []domain.Member{
		suite.carded(suite.now.AddDate(0, 1, 0), false),  // active, in circulation
		suite.carded(suite.now.Add(48*time.Hour), false), // expiring, in circulation
		suite.carded(suite.now.AddDate(0, 0, -5), false), // expired, not returned
		suite.carded(suite.now.AddDate(0, 0, -5), true),  // expired, returned
	}
	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil)
	suite.mockMemberRepo.On("FindGrantHolders", ctx, suite.branch.BranchID).Return(holders, nil)

	stats, err := suite.service.CardStats(ctx, suite.branch.BranchID)

	suite.Require().NoError(err)
	suite.Equal(5, stats.Total)
	suite.Equal(2, stats.InCirculation)
	suite.Equal(1, stats.NotReturned)
	suite.Equal(2, stats.Available)
}

func (suite *CapacityServiceTestSuite) TestLockerStats() {
	ctx := context.Background()
	locker := func(expiry time.Time) domain.Member {
		return domain.Member{
			MemberID:       uuid.NewString(),
			BranchID:       suite.branch.BranchID,
			ExpiryDate:     expiry,
			LockerAssigned: true,
			LockerNumber:   ptr("L1"),
		}
	}
	holders := []domain.Member{
		locker(suite.now.AddDate(0, 1, 0)),  // active occupant
		locker(suite.now.AddDate(0, 0, -5)), // expired, assignment stays recorded
	}
	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil)
	suite.mockMemberRepo.On("FindGrantHolders", ctx, suite.branch.BranchID).Return(holders, nil)

	stats, err := suite.service.LockerStats(ctx, suite.branch.BranchID)

	suite.Require().NoError(err)
	suite.Equal(3, stats.Total)
	suite.Equal(1, stats.InCirculation)
	suite.Equal(2, stats.Available)
}

func TestCapacityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CapacityServiceTestSuite))
}
