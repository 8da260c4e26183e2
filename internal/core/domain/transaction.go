package domain

import "github.com/shopspring/decimal"

// TransactionType identifies the monetary event a ledger entry records.
type TransactionType string

const (
	TxnRegistration TransactionType = "REGISTRATION"
	TxnMembership   TransactionType = "MEMBERSHIP"
	TxnCard         TransactionType = "CARD"
	TxnLocker       TransactionType = "LOCKER"
	TxnSnack        TransactionType = "SNACK"
)

// PaymentMode identifies how a transaction was settled.
// PaymentIncluded marks a locker bundled free with an access-hour plan tier;
// no ledger entry is written for it.
type PaymentMode string

const (
	PaymentCash     PaymentMode = "CASH"
	PaymentUPI      PaymentMode = "UPI"
	PaymentSplit    PaymentMode = "SPLIT"
	PaymentIncluded PaymentMode = "INCLUDED"
)

// Transaction is an immutable ledger entry. Amount is signed: negative for
// refunds (e.g. a card return). CashAmount and UpiAmount are set only when
// PaymentMode is SPLIT, and must sum to Amount.
type Transaction struct {
	TransactionID string           `json:"transactionID"` // Primary Key (UUID)
	BranchID      string           `json:"branchID"`      // FK -> Branch (Not Null)
	MemberID      *string          `json:"memberID"`      // FK -> Member (Null for snack sales)
	Type          TransactionType  `json:"type"`
	Amount        decimal.Decimal  `json:"amount"`
	PaymentMode   PaymentMode      `json:"paymentMode"`
	CashAmount    *decimal.Decimal `json:"cashAmount"`
	UpiAmount     *decimal.Decimal `json:"upiAmount"`
	Notes         string           `json:"notes"`
	AuditFields
}

// IsRefund reports whether this entry records money going back to the member.
func (t Transaction) IsRefund() bool {
	return t.Amount.IsNegative()
}
