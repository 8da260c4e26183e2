package dto

import (
	"time"

	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
)

// RegisterMemberRequest defines the data needed to register a new member.
// Registration charges the fixed registration fee; the member has no plan
// until one is purchased.
type RegisterMemberRequest struct {
	Name       string         `json:"name" binding:"required"`
	Phone      string         `json:"phone" binding:"required,min=10,max=15,phonedigits"`
	Email      string         `json:"email" binding:"omitempty,email"`
	Address    string         `json:"address"`
	Payment    PaymentRequest `json:"payment" binding:"required"`
	OperatorID string         `json:"operatorID" binding:"required"` // front-desk operator, for audit fields
}

// MemberResponse defines the data returned for a member, including the
// status derived at response time.
type MemberResponse struct {
	MemberID         string               `json:"memberID"`
	BranchID         string               `json:"branchID"`
	Name             string               `json:"name"`
	Phone            string               `json:"phone"`
	Email            string               `json:"email"`
	Address          string               `json:"address"`
	JoinDate         time.Time            `json:"joinDate"`
	ExpiryDate       time.Time            `json:"expiryDate"`
	Status           domain.MemberStatus  `json:"status"`
	SubscriptionPlan *domain.PlanType     `json:"subscriptionPlan"`
	PlanStartDate    *time.Time           `json:"planStartDate"`
	CardIssued       bool                 `json:"cardIssued"`
	CardReturned     bool                 `json:"cardReturned"`
	LockerAssigned   bool                 `json:"lockerAssigned"`
	LockerNumber     *string              `json:"lockerNumber"`
	SeatNo           *string              `json:"seatNo"`
	CreatedAt        time.Time            `json:"createdAt"`
	LastUpdatedAt    time.Time            `json:"lastUpdatedAt"`
}

// ToMemberResponse converts a domain.Member to a MemberResponse, deriving
// status at the given instant.
func ToMemberResponse(m *domain.Member, now time.Time) MemberResponse {
	return MemberResponse{
		MemberID:         m.MemberID,
		BranchID:         m.BranchID,
		Name:             m.Name,
		Phone:            m.Phone,
		Email:            m.Email,
		Address:          m.Address,
		JoinDate:         m.JoinDate,
		ExpiryDate:       m.ExpiryDate,
		Status:           m.Status(now),
		SubscriptionPlan: m.SubscriptionPlan,
		PlanStartDate:    m.PlanStartDate,
		CardIssued:       m.CardIssued,
		CardReturned:     m.CardReturned,
		LockerAssigned:   m.LockerAssigned,
		LockerNumber:     m.LockerNumber,
		SeatNo:           m.SeatNo,
		CreatedAt:        m.CreatedAt,
		LastUpdatedAt:    m.LastUpdatedAt,
	}
}

// ListMembersParams holds paging parameters for member listings.
type ListMembersParams struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}
