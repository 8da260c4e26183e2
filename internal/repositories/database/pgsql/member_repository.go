package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shelfdesk/shelfdesk_backend/internal/apperrors"
	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
	portsrepo "github.com/shelfdesk/shelfdesk_backend/internal/core/ports/repositories"
	"github.com/shelfdesk/shelfdesk_backend/internal/models"
	"github.com/shelfdesk/shelfdesk_backend/internal/utils/mapping"
)

type PgxMemberRepository struct {
	BaseRepository
}

// newPgxMemberRepository creates a new repository for member data.
func newPgxMemberRepository(pool *pgxpool.Pool) portsrepo.MemberRepositoryFacade {
	return &PgxMemberRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MemberRepositoryFacade = (*PgxMemberRepository)(nil)

const memberColumns = `
	member_id, branch_id, name, phone, email, address,
	join_date, expiry_date, subscription_plan, plan_start_date,
	card_issued, card_payment_mode, card_returned,
	locker_assigned, locker_payment_mode, locker_number, seat_no,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanMember(row pgx.Row) (models.Member, error) {
	var m models.Member
	err := row.Scan(
		&m.MemberID, &m.BranchID, &m.Name, &m.Phone, &m.Email, &m.Address,
		&m.JoinDate, &m.ExpiryDate, &m.SubscriptionPlan, &m.PlanStartDate,
		&m.CardIssued, &m.CardPaymentMode, &m.CardReturned,
		&m.LockerAssigned, &m.LockerPaymentMode, &m.LockerNumber, &m.SeatNo,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func collectMembers(rows pgx.Rows) ([]domain.Member, error) {
	defer rows.Close()
	var ms []models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read member rows: %w", err)
	}
	return mapping.ToDomainMemberSlice(ms), nil
}

func (r *PgxMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE member_id = $1;`
	m, err := scanMember(r.Pool.QueryRow(ctx, query, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member %s: %w", memberID, err)
	}
	member := mapping.ToDomainMember(m)
	return &member, nil
}

func (r *PgxMemberRepository) FindMemberByContact(ctx context.Context, branchID, phone, email string) (*domain.Member, error) {
	// Email is optional at registration; an empty email never matches.
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE branch_id = $1 AND (phone = $2 OR (email <> '' AND email = $3))
		LIMIT 1;
	`
	m, err := scanMember(r.Pool.QueryRow(ctx, query, branchID, phone, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member by contact: %w", err)
	}
	member := mapping.ToDomainMember(m)
	return &member, nil
}

func (r *PgxMemberRepository) FindMembersByResourceKey(ctx context.Context, branchID string, kind domain.ResourceKind, key string) ([]domain.Member, error) {
	var query string
	switch kind {
	case domain.ResourceLocker:
		query = `
			SELECT ` + memberColumns + `
			FROM members
			WHERE branch_id = $1 AND locker_assigned = TRUE AND locker_number = $2;
		`
	case domain.ResourceSeat:
		query = `
			SELECT ` + memberColumns + `
			FROM members
			WHERE branch_id = $1 AND seat_no = $2;
		`
	default:
		return nil, fmt.Errorf("%w: unknown resource kind %q", apperrors.ErrValidation, kind)
	}

	rows, err := r.Pool.Query(ctx, query, branchID, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query holders of %s %s: %w", kind, key, err)
	}
	return collectMembers(rows)
}

func (r *PgxMemberRepository) ListMembersByBranch(ctx context.Context, branchID string, limit, offset int) ([]domain.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE branch_id = $1
		ORDER BY created_at DESC, member_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list members for branch %s: %w", branchID, err)
	}
	return collectMembers(rows)
}

func (r *PgxMemberRepository) FindGrantHolders(ctx context.Context, branchID string) ([]domain.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE branch_id = $1 AND (card_issued = TRUE OR locker_assigned = TRUE);
	`
	rows, err := r.Pool.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query grant holders for branch %s: %w", branchID, err)
	}
	return collectMembers(rows)
}

const insertMemberQuery = `
	INSERT INTO members (
		member_id, branch_id, name, phone, email, address,
		join_date, expiry_date, subscription_plan, plan_start_date,
		card_issued, card_payment_mode, card_returned,
		locker_assigned, locker_payment_mode, locker_number, seat_no,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
`

func insertMemberArgs(m models.Member) []any {
	return []any{
		m.MemberID, m.BranchID, m.Name, m.Phone, m.Email, m.Address,
		m.JoinDate, m.ExpiryDate, m.SubscriptionPlan, m.PlanStartDate,
		m.CardIssued, m.CardPaymentMode, m.CardReturned,
		m.LockerAssigned, m.LockerPaymentMode, m.LockerNumber, m.SeatNo,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

// CreateMember inserts the member and its registration transaction in one
// database transaction. A racing duplicate registration loses at the unique
// index and surfaces as ErrDuplicate.
func (r *PgxMemberRepository) CreateMember(ctx context.Context, member domain.Member, registration domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelMember := mapping.ToModelMember(member)
	if _, err := tx.Exec(ctx, insertMemberQuery, insertMemberArgs(modelMember)...); err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("%w: failed to insert member: %v", apperrors.ErrPersistence, err)
	}

	if err := insertTransactionsTx(ctx, tx, []domain.Transaction{registration}); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

const updateMemberQuery = `
	UPDATE members SET
		name = $2, phone = $3, email = $4, address = $5,
		join_date = $6, expiry_date = $7, subscription_plan = $8, plan_start_date = $9,
		card_issued = $10, card_payment_mode = $11, card_returned = $12,
		locker_assigned = $13, locker_payment_mode = $14, locker_number = $15, seat_no = $16,
		last_updated_at = $17, last_updated_by = $18
	WHERE member_id = $1;
`

func updateMemberArgs(m models.Member) []any {
	return []any{
		m.MemberID, m.Name, m.Phone, m.Email, m.Address,
		m.JoinDate, m.ExpiryDate, m.SubscriptionPlan, m.PlanStartDate,
		m.CardIssued, m.CardPaymentMode, m.CardReturned,
		m.LockerAssigned, m.LockerPaymentMode, m.LockerNumber, m.SeatNo,
		m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

// Frees a locker assignment whose holder's plan lapsed before the cutoff, so
// regranting the key does not trip uq_members_branch_locker. The locker_number
// stays recorded for the deposit settlement trail; live holders are untouched
// and remain guarded by the index.
const releaseExpiredLockerQuery = `
	UPDATE members SET
		locker_assigned = FALSE,
		last_updated_at = $4,
		last_updated_by = $5
	WHERE branch_id = $1 AND locker_number = $2 AND locker_assigned = TRUE
		AND expiry_date < $4 AND member_id <> $3;
`

// ApplyTransition updates the member and inserts the accompanying ledger
// entries atomically. Either every write lands or none do, so a member can
// never end up marked as holding a card or locker without the matching
// revenue record. When the update grants a locker, any expired holder of the
// same key is released first within the same transaction.
func (r *PgxMemberRepository) ApplyTransition(ctx context.Context, member domain.Member, txns []domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if member.LockerAssigned && member.LockerNumber != nil {
		_, err := tx.Exec(ctx, releaseExpiredLockerQuery,
			member.BranchID, *member.LockerNumber, member.MemberID,
			member.LastUpdatedAt, member.LastUpdatedBy)
		if err != nil {
			return fmt.Errorf("%w: failed to release expired locker holders of %s: %v",
				apperrors.ErrPersistence, *member.LockerNumber, err)
		}
	}

	modelMember := mapping.ToModelMember(member)
	tag, err := tx.Exec(ctx, updateMemberQuery, updateMemberArgs(modelMember)...)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("%w: failed to update member %s: %v", apperrors.ErrPersistence, member.MemberID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if len(txns) > 0 {
		if err := insertTransactionsTx(ctx, tx, txns); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// ClearPlanFields resets plan state for the given members and deletes their
// MEMBERSHIP/CARD/LOCKER transactions atomically. The physical card is
// assumed returned as part of the reset. REGISTRATION entries survive.
func (r *PgxMemberRepository) ClearPlanFields(ctx context.Context, memberIDs []string, updatedBy string, now time.Time) error {
	if len(memberIDs) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	resetQuery := `
		UPDATE members SET
			expiry_date = join_date,
			subscription_plan = NULL,
			plan_start_date = NULL,
			card_returned = CASE WHEN card_issued THEN TRUE ELSE card_returned END,
			locker_assigned = FALSE,
			locker_payment_mode = NULL,
			locker_number = NULL,
			seat_no = NULL,
			last_updated_at = $2,
			last_updated_by = $3
		WHERE member_id = ANY($1);
	`
	if _, err := tx.Exec(ctx, resetQuery, memberIDs, now, updatedBy); err != nil {
		return fmt.Errorf("%w: failed to reset plan fields: %v", apperrors.ErrPersistence, err)
	}

	deleteQuery := `
		DELETE FROM transactions
		WHERE member_id = ANY($1) AND txn_type = ANY($2);
	`
	clearedTypes := []string{
		string(domain.TxnMembership),
		string(domain.TxnCard),
		string(domain.TxnLocker),
	}
	if _, err := tx.Exec(ctx, deleteQuery, memberIDs, clearedTypes); err != nil {
		return fmt.Errorf("%w: failed to delete plan transactions: %v", apperrors.ErrPersistence, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteMembers hard-deletes members. Their transactions go with them via
// the ON DELETE CASCADE on transactions.member_id.
func (r *PgxMemberRepository) DeleteMembers(ctx context.Context, memberIDs []string) error {
	if len(memberIDs) == 0 {
		return nil
	}
	tag, err := r.Pool.Exec(ctx, `DELETE FROM members WHERE member_id = ANY($1);`, memberIDs)
	if err != nil {
		return fmt.Errorf("%w: failed to delete members: %v", apperrors.ErrPersistence, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
