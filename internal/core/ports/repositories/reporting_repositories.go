package repositories

import (
	"context"
	"time"

	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
)

// ReportingRepositoryFacade defines aggregate revenue queries.
type ReportingRepositoryFacade interface {
	// RevenueSummary totals a branch's ledger by transaction type and payment
	// mode over [from, to).
	RevenueSummary(ctx context.Context, branchID string, from, to time.Time) ([]domain.RevenueSummaryRow, error)

	// DailyRevenue totals a branch's net revenue per day over [from, to).
	DailyRevenue(ctx context.Context, branchID string, from, to time.Time) ([]domain.DailyRevenueRow, error)
}
