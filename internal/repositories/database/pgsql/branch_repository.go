package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/erpcore/sales_settlement_app/internal/apperrors"
	"github.com/erpcore/sales_settlement_app/internal/core/domain"
	portsrepo "github.com/erpcore/sales_settlement_app/internal/core/ports/repositories"
	"github.com/erpcore/sales_settlement_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBranchRepository struct {
	pool *pgxpool.Pool
}

// newPgxBranchRepository creates a new repository for the branch directory.
func newPgxBranchRepository(pool *pgxpool.Pool) portsrepo.BranchRepositoryFacade {
	return &PgxBranchRepository{pool: pool}
}

var _ portsrepo.BranchRepositoryFacade = (*PgxBranchRepository)(nil)

func toDomainBranch(m models.Branch) domain.Branch {
	return domain.Branch{
		BranchID: m.BranchID,
		Name:     m.Name,
		Code:     m.Code,
		Number:   m.Number,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func (r *PgxBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	query := `
		SELECT branch_id, name, code, number, created_at, created_by, last_updated_at, last_updated_by
		FROM branches WHERE branch_id = $1;
	`
	var m models.Branch
	err := r.pool.QueryRow(ctx, query, branchID).Scan(
		&m.BranchID, &m.Name, &m.Code, &m.Number,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: branch %s", apperrors.ErrNotFound, branchID)
		}
		return nil, fmt.Errorf("failed to find branch %s: %w", branchID, err)
	}
	branch := toDomainBranch(m)
	return &branch, nil
}

func (r *PgxBranchRepository) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	query := `
		SELECT branch_id, name, code, number, created_at, created_by, last_updated_at, last_updated_by
		FROM branches ORDER BY name;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer rows.Close()

	var branches []domain.Branch
	for rows.Next() {
		var m models.Branch
		if err := rows.Scan(
			&m.BranchID, &m.Name, &m.Code, &m.Number,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan branch row: %w", err)
		}
		branches = append(branches, toDomainBranch(m))
	}
	return branches, rows.Err()
}

func (r *PgxBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	query := `
		INSERT INTO branches (branch_id, name, code, number, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		branch.BranchID, branch.Name, branch.Code, branch.Number,
		branch.CreatedAt, branch.CreatedBy, branch.LastUpdatedAt, branch.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: branch with ID %s already exists", apperrors.ErrDuplicate, branch.BranchID)
		}
		return fmt.Errorf("failed to save branch %s: %w", branch.BranchID, err)
	}
	return nil
}
