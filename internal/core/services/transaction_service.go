package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/shelfdesk/shelfdesk_backend/internal/apperrors"
	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
	portsrepo "github.com/shelfdesk/shelfdesk_backend/internal/core/ports/repositories"
	portssvc "github.com/shelfdesk/shelfdesk_backend/internal/core/ports/services"
	"github.com/shelfdesk/shelfdesk_backend/internal/dto"
	"github.com/shelfdesk/shelfdesk_backend/internal/middleware"
	"github.com/shelfdesk/shelfdesk_backend/internal/platform/clock"
)

type transactionService struct {
	txnRepo portsrepo.TransactionRepositoryFacade
}

// NewTransactionService creates a new transaction listing service.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{txnRepo: txnRepo}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) ListByBranch(ctx context.Context, branchID string, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	limit := params.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.txnRepo.ListTransactionsByBranch(ctx, branchID, limit, params.Offset)
}

func (s *transactionService) ListByMember(ctx context.Context, memberID string) ([]domain.Transaction, error) {
	return s.txnRepo.ListTransactionsByMember(ctx, memberID)
}

type salesService struct {
	txnRepo    portsrepo.TransactionRepositoryFacade
	branchRepo portsrepo.BranchRepositoryFacade
	clock      clock.Clock
}

// NewSalesService creates the snack counter sales service.
func NewSalesService(txnRepo portsrepo.TransactionRepositoryFacade, branchRepo portsrepo.BranchRepositoryFacade, clk clock.Clock) portssvc.SalesSvcFacade {
	return &salesService{txnRepo: txnRepo, branchRepo: branchRepo, clock: clk}
}

var _ portssvc.SalesSvcFacade = (*salesService)(nil)

func (s *salesService) RecordSnackSale(ctx context.Context, branchID string, req dto.SnackSaleRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: snack sale amount must be positive", apperrors.ErrValidation)
	}
	if _, err := s.branchRepo.FindBranchByID(ctx, branchID); err != nil {
		return nil, fmt.Errorf("failed to resolve branch %s: %w", branchID, err)
	}

	now := s.clock.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		BranchID:      branchID,
		Type:          domain.TxnSnack,
		Amount:        req.Amount,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.OperatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: req.OperatorID,
		},
	}
	if err := settle([]*domain.Transaction{&txn}, req.Payment, req.Amount, domain.SplitStrict); err != nil {
		return nil, err
	}

	if err := s.txnRepo.SaveTransactions(ctx, []domain.Transaction{txn}); err != nil {
		logger.Error("Failed to record snack sale", slog.String("branch_id", branchID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to record snack sale: %w", err)
	}

	logger.Info("Snack sale recorded", slog.String("branch_id", branchID), slog.String("amount", req.Amount.String()))
	return &txn, nil
}
