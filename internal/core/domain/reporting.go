package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevenueSummaryRow is one cell of a branch revenue report: the total and
// count of ledger entries for a transaction type and payment mode in the
// reporting window.
type RevenueSummaryRow struct {
	Type        TransactionType `json:"type"`
	PaymentMode PaymentMode     `json:"paymentMode"`
	Total       decimal.Decimal `json:"total"`
	Count       int64           `json:"count"`
}

// DailyRevenueRow is a branch's net revenue for a single day.
type DailyRevenueRow struct {
	Date  time.Time       `json:"date"`
	Total decimal.Decimal `json:"total"`
}
