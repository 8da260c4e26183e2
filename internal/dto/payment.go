package dto

import (
	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentRequest describes how a checkout is settled. CashAmount and
// UpiAmount are required when Mode is SPLIT and ignored otherwise.
type PaymentRequest struct {
	Mode       domain.PaymentMode `json:"mode" binding:"required,oneof=CASH UPI SPLIT INCLUDED"`
	CashAmount *decimal.Decimal   `json:"cashAmount"`
	UpiAmount  *decimal.Decimal   `json:"upiAmount"`
}

// SplitParts returns the cash and upi portions, defaulting absent parts to zero.
func (p PaymentRequest) SplitParts() (cash, upi decimal.Decimal) {
	if p.CashAmount != nil {
		cash = *p.CashAmount
	}
	if p.UpiAmount != nil {
		upi = *p.UpiAmount
	}
	return cash, upi
}
