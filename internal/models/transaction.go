package models

import "github.com/shopspring/decimal"

// Transaction mirrors the transactions table row. Amount is signed; negative
// amounts record refunds.
type Transaction struct {
	TransactionID string
	BranchID      string
	MemberID      *string
	TxnType       string
	Amount        decimal.Decimal
	PaymentMode   string
	CashAmount    *decimal.Decimal
	UpiAmount     *decimal.Decimal
	Notes         string
	AuditFields
}
