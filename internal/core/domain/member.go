package domain

import "time"

// ResourceKind identifies an allocatable unit with at most one active holder.
type ResourceKind string

const (
	ResourceLocker ResourceKind = "LOCKER"
	ResourceSeat   ResourceKind = "SEAT"
)

// Member is a registered library member. A member with ExpiryDate equal to
// JoinDate has never purchased a plan ("registered only").
//
// CardReturned is only meaningful when CardIssued is true. LockerNumber is
// required whenever LockerAssigned is true.
type Member struct {
	MemberID string `json:"memberID"` // Primary Key (UUID)
	BranchID string `json:"branchID"` // FK -> Branch (Not Null)
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`

	JoinDate         time.Time    `json:"joinDate"`
	ExpiryDate       time.Time    `json:"expiryDate"`
	SubscriptionPlan *PlanType    `json:"subscriptionPlan"` // nil until a plan is purchased
	PlanStartDate    *time.Time   `json:"planStartDate"`

	CardIssued        bool         `json:"cardIssued"`
	CardPaymentMode   *PaymentMode `json:"cardPaymentMode"`
	CardReturned      bool         `json:"cardReturned"`
	LockerAssigned    bool         `json:"lockerAssigned"`
	LockerPaymentMode *PaymentMode `json:"lockerPaymentMode"`
	LockerNumber      *string      `json:"lockerNumber"`
	SeatNo            *string      `json:"seatNo"`

	AuditFields
}

// Status derives the member's lifecycle state at the given instant.
func (m Member) Status(now time.Time) MemberStatus {
	return ClassifyStatus(m.ExpiryDate, now)
}

// HasPlan reports whether the member has ever purchased a plan.
func (m Member) HasPlan() bool {
	return m.SubscriptionPlan != nil
}

// HoldsCard reports whether the member currently holds a physical card,
// i.e. one was issued and has not been returned.
func (m Member) HoldsCard() bool {
	return m.CardIssued && !m.CardReturned
}

// Holds reports whether the member currently holds the given resource key.
// Lockers count only while assigned; seats count until reassigned.
func (m Member) Holds(kind ResourceKind, key string) bool {
	switch kind {
	case ResourceLocker:
		return m.LockerAssigned && m.LockerNumber != nil && *m.LockerNumber == key
	case ResourceSeat:
		return m.SeatNo != nil && *m.SeatNo == key
	}
	return false
}
