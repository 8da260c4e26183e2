package models

import "time"

// Member mirrors the members table row.
type Member struct {
	MemberID string
	BranchID string
	Name     string
	Phone    string
	Email    string
	Address  string

	JoinDate         time.Time
	ExpiryDate       time.Time
	SubscriptionPlan *string
	PlanStartDate    *time.Time

	CardIssued        bool
	CardPaymentMode   *string
	CardReturned      bool
	LockerAssigned    bool
	LockerPaymentMode *string
	LockerNumber      *string
	SeatNo            *string

	AuditFields
}
