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

type PgxBranchRepository struct {
	BaseRepository
}

// newPgxBranchRepository creates a new repository for branch data.
func newPgxBranchRepository(pool *pgxpool.Pool) portsrepo.BranchRepositoryFacade {
	return &PgxBranchRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BranchRepositoryFacade = (*PgxBranchRepository)(nil)

func (r *PgxBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	m := mapping.ToModelBranch(branch)
	query := `
		INSERT INTO branches (branch_id, name, total_cards, total_lockers, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BranchID, m.Name, m.TotalCards, m.TotalLockers,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to save branch: %v", apperrors.ErrPersistence, err)
	}
	return nil
}

func (r *PgxBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	query := `
		SELECT branch_id, name, total_cards, total_lockers, created_at, created_by, last_updated_at, last_updated_by
		FROM branches
		WHERE branch_id = $1;
	`
	var m models.Branch
	err := r.Pool.QueryRow(ctx, query, branchID).Scan(
		&m.BranchID, &m.Name, &m.TotalCards, &m.TotalLockers,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find branch %s: %w", branchID, err)
	}
	branch := mapping.ToDomainBranch(m)
	return &branch, nil
}

func (r *PgxBranchRepository) UpdateCapacity(ctx context.Context, branchID string, totalCards, totalLockers int, updatedBy string, now time.Time) error {
	query := `
		UPDATE branches
		SET total_cards = $2, total_lockers = $3, last_updated_at = $4, last_updated_by = $5
		WHERE branch_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, branchID, totalCards, totalLockers, now, updatedBy)
	if err != nil {
		return fmt.Errorf("%w: failed to update branch capacity: %v", apperrors.ErrPersistence, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
