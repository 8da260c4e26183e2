package mapping

import (
	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
	"github.com/shelfdesk/shelfdesk_backend/internal/models"
)

// ToModelMember converts a domain Member to a model Member.
func ToModelMember(d domain.Member) models.Member {
	m := models.Member{
		MemberID:       d.MemberID,
		BranchID:       d.BranchID,
		Name:           d.Name,
		Phone:          d.Phone,
		Email:          d.Email,
		Address:        d.Address,
		JoinDate:       d.JoinDate,
		ExpiryDate:     d.ExpiryDate,
		PlanStartDate:  d.PlanStartDate,
		CardIssued:     d.CardIssued,
		CardReturned:   d.CardReturned,
		LockerAssigned: d.LockerAssigned,
		LockerNumber:   d.LockerNumber,
		SeatNo:         d.SeatNo,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if d.SubscriptionPlan != nil {
		plan := string(*d.SubscriptionPlan)
		m.SubscriptionPlan = &plan
	}
	if d.CardPaymentMode != nil {
		mode := string(*d.CardPaymentMode)
		m.CardPaymentMode = &mode
	}
	if d.LockerPaymentMode != nil {
		mode := string(*d.LockerPaymentMode)
		m.LockerPaymentMode = &mode
	}
	return m
}

// ToDomainMember converts a model Member to a domain Member.
func ToDomainMember(m models.Member) domain.Member {
	d := domain.Member{
		MemberID:       m.MemberID,
		BranchID:       m.BranchID,
		Name:           m.Name,
		Phone:          m.Phone,
		Email:          m.Email,
		Address:        m.Address,
		JoinDate:       m.JoinDate,
		ExpiryDate:     m.ExpiryDate,
		PlanStartDate:  m.PlanStartDate,
		CardIssued:     m.CardIssued,
		CardReturned:   m.CardReturned,
		LockerAssigned: m.LockerAssigned,
		LockerNumber:   m.LockerNumber,
		SeatNo:         m.SeatNo,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.SubscriptionPlan != nil {
		plan := domain.PlanType(*m.SubscriptionPlan)
		d.SubscriptionPlan = &plan
	}
	if m.CardPaymentMode != nil {
		mode := domain.PaymentMode(*m.CardPaymentMode)
		d.CardPaymentMode = &mode
	}
	if m.LockerPaymentMode != nil {
		mode := domain.PaymentMode(*m.LockerPaymentMode)
		d.LockerPaymentMode = &mode
	}
	return d
}

// ToDomainMemberSlice converts a slice of model Members to domain Members.
func ToDomainMemberSlice(ms []models.Member) []domain.Member {
	ds := make([]domain.Member, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMember(m)
	}
	return ds
}
