package dto

import (
	"time"

	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	BranchID      string                 `json:"branchID"`
	MemberID      *string                `json:"memberID"`
	Type          domain.TransactionType `json:"type"`
	Amount        decimal.Decimal        `json:"amount"`
	PaymentMode   domain.PaymentMode     `json:"paymentMode"`
	CashAmount    *decimal.Decimal       `json:"cashAmount,omitempty"`
	UpiAmount     *decimal.Decimal       `json:"upiAmount,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	CreatedBy     string                 `json:"createdBy"`
}

// ToTransactionResponse converts a domain.Transaction to a TransactionResponse.
func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		BranchID:      t.BranchID,
		MemberID:      t.MemberID,
		Type:          t.Type,
		Amount:        t.Amount,
		PaymentMode:   t.PaymentMode,
		CashAmount:    t.CashAmount,
		UpiAmount:     t.UpiAmount,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
		CreatedBy:     t.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain Transactions.
func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	rs := make([]TransactionResponse, len(ts))
	for i, t := range ts {
		rs[i] = ToTransactionResponse(t)
	}
	return rs
}

// SnackSaleRequest records a snack counter sale. Snack sales reference no
// member.
type SnackSaleRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Payment    PaymentRequest  `json:"payment" binding:"required"`
	Notes      string          `json:"notes"`
	OperatorID string          `json:"operatorID" binding:"required"`
}

// ListTransactionsParams holds paging parameters for ledger listings.
type ListTransactionsParams struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}
