package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shelfdesk/shelfdesk_backend/internal/apperrors"
	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
	portsrepo "github.com/shelfdesk/shelfdesk_backend/internal/core/ports/repositories"
	"github.com/shelfdesk/shelfdesk_backend/internal/models"
	"github.com/shelfdesk/shelfdesk_backend/internal/utils/mapping"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger entries.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	transaction_id, branch_id, member_id, txn_type, amount, payment_mode,
	cash_amount, upi_amount, notes,
	created_at, created_by, last_updated_at, last_updated_by
`

const insertTransactionQuery = `
	INSERT INTO transactions (
		transaction_id, branch_id, member_id, txn_type, amount, payment_mode,
		cash_amount, upi_amount, notes,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
`

// insertTransactionsTx batch-inserts ledger entries on an open transaction.
// Shared with the member repository so transitions compose member updates
// and ledger writes into one atomic unit.
func insertTransactionsTx(ctx context.Context, tx pgx.Tx, txns []domain.Transaction) error {
	batch := &pgx.Batch{}
	for _, t := range txns {
		m := mapping.ToModelTransaction(t)
		batch.Queue(insertTransactionQuery,
			m.TransactionID, m.BranchID, m.MemberID, m.TxnType, m.Amount, m.PaymentMode,
			m.CashAmount, m.UpiAmount, m.Notes,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range txns {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("%w: failed to insert transaction batch: %v", apperrors.ErrPersistence, err)
		}
	}
	return nil
}

// SaveTransactions inserts a batch of ledger entries with all-or-nothing
// semantics.
func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertTransactionsTx(ctx, tx, txns); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func scanTransaction(rows pgx.Rows) (models.Transaction, error) {
	var m models.Transaction
	err := rows.Scan(
		&m.TransactionID, &m.BranchID, &m.MemberID, &m.TxnType, &m.Amount, &m.PaymentMode,
		&m.CashAmount, &m.UpiAmount, &m.Notes,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	defer rows.Close()
	var ms []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transaction rows: %w", err)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

func (r *PgxTransactionRepository) ListTransactionsByBranch(ctx context.Context, branchID string, limit, offset int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE branch_id = $1
		ORDER BY created_at DESC, transaction_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for branch %s: %w", branchID, err)
	}
	return collectTransactions(rows)
}

func (r *PgxTransactionRepository) ListTransactionsByMember(ctx context.Context, memberID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE member_id = $1
		ORDER BY created_at DESC, transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for member %s: %w", memberID, err)
	}
	return collectTransactions(rows)
}

func (r *PgxTransactionRepository) DeleteTransactionsForMembers(ctx context.Context, memberIDs []string, types []domain.TransactionType) error {
	if len(memberIDs) == 0 || len(types) == 0 {
		return nil
	}
	typeStrings := make([]string, len(types))
	for i, t := range types {
		typeStrings[i] = string(t)
	}
	query := `DELETE FROM transactions WHERE member_id = ANY($1) AND txn_type = ANY($2);`
	if _, err := r.Pool.Exec(ctx, query, memberIDs, typeStrings); err != nil {
		return fmt.Errorf("%w: failed to delete transactions: %v", apperrors.ErrPersistence, err)
	}
	return nil
}
