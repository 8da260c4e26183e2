package dto

import (
	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PlanSelection identifies the plan being purchased or renewed. CustomValue
// and CustomUnit are required only for CUSTOM plans. PlanFee is the amount
// actually charged; the front desk may apply a reduced fee.
type PlanSelection struct {
	Plan               domain.PlanType   `json:"plan" binding:"required,oneof=MONTHLY QUARTERLY HALF_YEARLY ANNUAL CUSTOM"`
	CustomValue        int               `json:"customValue"`
	CustomUnit         domain.CustomUnit `json:"customUnit" binding:"omitempty,oneof=DAY MONTH YEAR"`
	PlanFee            decimal.Decimal   `json:"planFee"`
	LockerFreeWithPlan bool              `json:"lockerFreeWithPlan"`
}

// AllocationRequest layers resource grants onto a plan purchase. Card and
// locker fees apply only when the grant is new.
type AllocationRequest struct {
	WantsCard    bool    `json:"wantsCard"`
	WantsLocker  bool    `json:"wantsLocker"`
	LockerNumber *string `json:"lockerNumber"`
	SeatNo       *string `json:"seatNo"`
}

// ActivatePlanRequest bundles a plan purchase or renewal with optional
// allocations into one checkout.
type ActivatePlanRequest struct {
	Plan           PlanSelection     `json:"plan" binding:"required"`
	Allocation     AllocationRequest `json:"allocation"`
	Payment        PaymentRequest    `json:"payment" binding:"required"`
	LegacyBackfill bool              `json:"legacyBackfill"` // relaxes split validation to ±₹1 for historical corrections
	OperatorID     string            `json:"operatorID" binding:"required"`
}

// TransitionResponse returns the updated member together with the ledger
// entries the transition produced.
type TransitionResponse struct {
	Member       MemberResponse        `json:"member"`
	Transactions []TransactionResponse `json:"transactions"`
}

// IssueCardRequest issues a physical card to a member.
type IssueCardRequest struct {
	Payment    PaymentRequest `json:"payment" binding:"required"`
	OperatorID string         `json:"operatorID" binding:"required"`
}

// ReturnCardRequest records a card return and its deposit refund.
type ReturnCardRequest struct {
	OperatorID string `json:"operatorID" binding:"required"`
}

// AssignLockerRequest assigns a locker to a member. Payment mode INCLUDED
// records the assignment without a ledger entry.
type AssignLockerRequest struct {
	LockerNumber string         `json:"lockerNumber" binding:"required"`
	Payment      PaymentRequest `json:"payment" binding:"required"`
	OperatorID   string         `json:"operatorID" binding:"required"`
}

// ClearPlanRequest bulk-resets plan state for the given members. Destructive
// and irreversible: their MEMBERSHIP/CARD/LOCKER ledger entries are deleted.
type ClearPlanRequest struct {
	MemberIDs  []string `json:"memberIDs" binding:"required,min=1"`
	OperatorID string   `json:"operatorID" binding:"required"`
}
