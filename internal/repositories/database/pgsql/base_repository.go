package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shelfdesk/shelfdesk_backend/internal/apperrors"
	portsrepo "github.com/shelfdesk/shelfdesk_backend/internal/core/ports/repositories"
)

// BaseRepository provides common functionality for all repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

var _ portsrepo.TransactionManager = (*BaseRepository)(nil)

// Begin starts a new database transaction.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// Constraint names from migrations, used to turn unique violations into
// business errors at write time. The database is the authoritative guard
// against two terminals racing past the client-side checks.
const (
	constraintMemberPhone  = "uq_members_branch_phone"
	constraintMemberEmail  = "uq_members_branch_email"
	constraintMemberLocker = "uq_members_branch_locker"
)

// mapUniqueViolation converts a unique-constraint violation into the
// matching sentinel error, or returns nil if err is something else.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	switch pgErr.ConstraintName {
	case constraintMemberPhone, constraintMemberEmail:
		return apperrors.ErrDuplicate
	case constraintMemberLocker:
		return apperrors.ErrResourceUnavailable
	}
	return apperrors.ErrDuplicate
}
