package dto

import (
	"time"

	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
)

// ReportingParams bounds a revenue report to [from, to).
type ReportingParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}

// RevenueSummaryResponse is a branch's revenue broken down by transaction
// type and payment mode.
type RevenueSummaryResponse struct {
	BranchID string                     `json:"branchID"`
	From     time.Time                  `json:"from"`
	To       time.Time                  `json:"to"`
	Rows     []domain.RevenueSummaryRow `json:"rows"`
}

// DailyRevenueResponse is a branch's net revenue per day.
type DailyRevenueResponse struct {
	BranchID string                   `json:"branchID"`
	From     time.Time                `json:"from"`
	To       time.Time                `json:"to"`
	Days     []domain.DailyRevenueRow `json:"days"`
}
