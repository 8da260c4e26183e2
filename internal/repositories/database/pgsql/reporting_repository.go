package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
	portsrepo "github.com/shelfdesk/shelfdesk_backend/internal/core/ports/repositories"
)

type ReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new repository for revenue aggregates.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &ReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepositoryFacade = (*ReportingRepository)(nil)

func (r *ReportingRepository) RevenueSummary(ctx context.Context, branchID string, from, to time.Time) ([]domain.RevenueSummaryRow, error) {
	query := `
		SELECT txn_type, payment_mode, COALESCE(SUM(amount), 0), COUNT(*)
		FROM transactions
		WHERE branch_id = $1 AND created_at >= $2 AND created_at < $3
		GROUP BY txn_type, payment_mode
		ORDER BY txn_type, payment_mode;
	`
	rows, err := r.Pool.Query(ctx, query, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue summary for branch %s: %w", branchID, err)
	}
	defer rows.Close()

	var result []domain.RevenueSummaryRow
	for rows.Next() {
		var row domain.RevenueSummaryRow
		var txnType, paymentMode string
		if err := rows.Scan(&txnType, &paymentMode, &row.Total, &row.Count); err != nil {
			return nil, fmt.Errorf("failed to scan revenue summary row: %w", err)
		}
		row.Type = domain.TransactionType(txnType)
		row.PaymentMode = domain.PaymentMode(paymentMode)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read revenue summary rows: %w", err)
	}
	return result, nil
}

func (r *ReportingRepository) DailyRevenue(ctx context.Context, branchID string, from, to time.Time) ([]domain.DailyRevenueRow, error) {
	query := `
		SELECT date_trunc('day', created_at) AS day, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE branch_id = $1 AND created_at >= $2 AND created_at < $3
		GROUP BY day
		ORDER BY day;
	`
	rows, err := r.Pool.Query(ctx, query, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily revenue for branch %s: %w", branchID, err)
	}
	defer rows.Close()

	var result []domain.DailyRevenueRow
	for rows.Next() {
		var row domain.DailyRevenueRow
		if err := rows.Scan(&row.Date, &row.Total); err != nil {
			return nil, fmt.Errorf("failed to scan daily revenue row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read daily revenue rows: %w", err)
	}
	return result, nil
}
