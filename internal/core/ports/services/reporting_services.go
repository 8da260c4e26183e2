package services

import (
	"context"

	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
	"github.com/shelfdesk/shelfdesk_backend/internal/dto"
)

// ReportingSvcFacade produces revenue reports from the ledger.
type ReportingSvcFacade interface {
	RevenueSummary(ctx context.Context, branchID string, params dto.ReportingParams) (*dto.RevenueSummaryResponse, error)
	DailyRevenue(ctx context.Context, branchID string, params dto.ReportingParams) (*dto.DailyRevenueResponse, error)
}

// SalesSvcFacade records snack counter sales into the ledger.
type SalesSvcFacade interface {
	RecordSnackSale(ctx context.Context, branchID string, req dto.SnackSaleRequest) (*domain.Transaction, error)
}

// TransactionSvcFacade lists ledger entries.
type TransactionSvcFacade interface {
	ListByBranch(ctx context.Context, branchID string, params dto.ListTransactionsParams) ([]domain.Transaction, error)
	ListByMember(ctx context.Context, memberID string) ([]domain.Transaction, error)
}
