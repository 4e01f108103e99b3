package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erpcore/sales_settlement_app/internal/apperrors"
	"github.com/erpcore/sales_settlement_app/internal/core/domain"
	portsrepo "github.com/erpcore/sales_settlement_app/internal/core/ports/repositories"
	"github.com/erpcore/sales_settlement_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxLedgerAccountRepository creates a new repository for the chart of accounts.
func newPgxLedgerAccountRepository(pool *pgxpool.Pool) portsrepo.LedgerAccountRepositoryFacade {
	return &PgxLedgerAccountRepository{pool: pool}
}

var _ portsrepo.LedgerAccountRepositoryFacade = (*PgxLedgerAccountRepository)(nil)

func toDomainLedgerAccount(m models.LedgerAccount) domain.LedgerAccount {
	return domain.LedgerAccount{
		AccountID:      m.AccountID,
		Code:           m.Code,
		Name:           m.Name,
		ParentCode:     m.ParentCode,
		HasSubAccounts: m.HasSubAccounts,
		IsActive:       m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func (r *PgxLedgerAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.LedgerAccount, error) {
	query := `
		SELECT account_id, code, name, parent_code, has_sub_accounts, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_accounts WHERE code = $1;
	`
	var m models.LedgerAccount
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&m.AccountID, &m.Code, &m.Name, &m.ParentCode, &m.HasSubAccounts, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account code %q", apperrors.ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to find account %q: %w", code, err)
	}
	account := toDomainLedgerAccount(m)
	return &account, nil
}

// ListChildCodes returns every account code beginning with the parent code,
// the parent itself excluded. The allocator narrows these to direct numeric
// children.
func (r *PgxLedgerAccountRepository) ListChildCodes(ctx context.Context, parentCode string) ([]string, error) {
	query := `SELECT code FROM ledger_accounts WHERE code LIKE $1 || '%' AND code <> $1;`
	rows, err := r.pool.Query(ctx, query, parentCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list child codes of %q: %w", parentCode, err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan account code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// SaveAccount inserts a new ledger account.
func (r *PgxLedgerAccountRepository) SaveAccount(ctx context.Context, account domain.LedgerAccount) error {
	query := `
		INSERT INTO ledger_accounts (account_id, code, name, parent_code, has_sub_accounts, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		account.AccountID, account.Code, account.Name, account.ParentCode,
		account.HasSubAccounts, account.IsActive,
		account.CreatedAt, account.CreatedBy, account.LastUpdatedAt, account.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account with code %s already exists", apperrors.ErrDuplicate, account.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}
	return nil
}

func (r *PgxLedgerAccountRepository) MarkHasSubAccounts(ctx context.Context, code string, userID string, now time.Time) error {
	query := `
		UPDATE ledger_accounts
		SET has_sub_accounts = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE code = $1;
	`
	tag, err := r.pool.Exec(ctx, query, code, now, userID)
	if err != nil {
		return fmt.Errorf("failed to flag account %q: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account code %q", apperrors.ErrNotFound, code)
	}
	return nil
}

func (r *PgxLedgerAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM ledger_accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}
