package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/erpcore/sales_settlement_app/internal/apperrors"
	"github.com/erpcore/sales_settlement_app/internal/core/domain"
	portsrepo "github.com/erpcore/sales_settlement_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRegistryRepository persists banks, cash boxes and warehouses. One
// implementation covers all three; the tables differ only in their extra
// descriptive column.
type PgxRegistryRepository struct {
	pool *pgxpool.Pool
}

// newPgxRegistryRepository creates a new repository for registry entities.
func newPgxRegistryRepository(pool *pgxpool.Pool) portsrepo.RegistryRepositoryFacade {
	return &PgxRegistryRepository{pool: pool}
}

var _ portsrepo.RegistryRepositoryFacade = (*PgxRegistryRepository)(nil)

func duplicateOr(err error, kind, id string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s %s already exists", apperrors.ErrDuplicate, kind, id)
	}
	return fmt.Errorf("failed to save %s %s: %w", kind, id, err)
}

// --- Banks ---

func (r *PgxRegistryRepository) SaveBank(ctx context.Context, bank domain.Bank) error {
	query := `
		INSERT INTO banks (bank_id, name, account_number, account_id, account_code, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		bank.BankID, bank.Name, bank.AccountNumber, bank.AccountID, bank.AccountCode,
		bank.CreatedAt, bank.CreatedBy, bank.LastUpdatedAt, bank.LastUpdatedBy,
	)
	if err != nil {
		return duplicateOr(err, "bank", bank.BankID)
	}
	return nil
}

func (r *PgxRegistryRepository) FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error) {
	query := `
		SELECT bank_id, name, account_number, account_id, account_code, created_at, created_by, last_updated_at, last_updated_by
		FROM banks WHERE bank_id = $1;
	`
	var b domain.Bank
	err := r.pool.QueryRow(ctx, query, bankID).Scan(
		&b.BankID, &b.Name, &b.AccountNumber, &b.AccountID, &b.AccountCode,
		&b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: bank %s", apperrors.ErrNotFound, bankID)
		}
		return nil, fmt.Errorf("failed to find bank %s: %w", bankID, err)
	}
	return &b, nil
}

func (r *PgxRegistryRepository) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	query := `
		SELECT bank_id, name, account_number, account_id, account_code, created_at, created_by, last_updated_at, last_updated_by
		FROM banks ORDER BY name;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list banks: %w", err)
	}
	defer rows.Close()

	var banks []domain.Bank
	for rows.Next() {
		var b domain.Bank
		if err := rows.Scan(
			&b.BankID, &b.Name, &b.AccountNumber, &b.AccountID, &b.AccountCode,
			&b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bank row: %w", err)
		}
		banks = append(banks, b)
	}
	return banks, rows.Err()
}

func (r *PgxRegistryRepository) DeleteBank(ctx context.Context, bankID string) error {
	return r.deleteByID(ctx, "banks", "bank_id", bankID)
}

// --- Cash boxes ---

func (r *PgxRegistryRepository) SaveCashBox(ctx context.Context, cashBox domain.CashBox) error {
	query := `
		INSERT INTO cash_boxes (cash_box_id, name, branch_id, account_id, account_code, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		cashBox.CashBoxID, cashBox.Name, cashBox.BranchID, cashBox.AccountID, cashBox.AccountCode,
		cashBox.CreatedAt, cashBox.CreatedBy, cashBox.LastUpdatedAt, cashBox.LastUpdatedBy,
	)
	if err != nil {
		return duplicateOr(err, "cash box", cashBox.CashBoxID)
	}
	return nil
}

func (r *PgxRegistryRepository) FindCashBoxByID(ctx context.Context, cashBoxID string) (*domain.CashBox, error) {
	query := `
		SELECT cash_box_id, name, branch_id, account_id, account_code, created_at, created_by, last_updated_at, last_updated_by
		FROM cash_boxes WHERE cash_box_id = $1;
	`
	var c domain.CashBox
	err := r.pool.QueryRow(ctx, query, cashBoxID).Scan(
		&c.CashBoxID, &c.Name, &c.BranchID, &c.AccountID, &c.AccountCode,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: cash box %s", apperrors.ErrNotFound, cashBoxID)
		}
		return nil, fmt.Errorf("failed to find cash box %s: %w", cashBoxID, err)
	}
	return &c, nil
}

func (r *PgxRegistryRepository) ListCashBoxes(ctx context.Context) ([]domain.CashBox, error) {
	query := `
		SELECT cash_box_id, name, branch_id, account_id, account_code, created_at, created_by, last_updated_at, last_updated_by
		FROM cash_boxes ORDER BY name;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash boxes: %w", err)
	}
	defer rows.Close()

	var boxes []domain.CashBox
	for rows.Next() {
		var c domain.CashBox
		if err := rows.Scan(
			&c.CashBoxID, &c.Name, &c.BranchID, &c.AccountID, &c.AccountCode,
			&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cash box row: %w", err)
		}
		boxes = append(boxes, c)
	}
	return boxes, rows.Err()
}

func (r *PgxRegistryRepository) DeleteCashBox(ctx context.Context, cashBoxID string) error {
	return r.deleteByID(ctx, "cash_boxes", "cash_box_id", cashBoxID)
}

// --- Warehouses ---

func (r *PgxRegistryRepository) SaveWarehouse(ctx context.Context, warehouse domain.Warehouse) error {
	query := `
		INSERT INTO warehouses (warehouse_id, name, location, account_id, account_code, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		warehouse.WarehouseID, warehouse.Name, warehouse.Location, warehouse.AccountID, warehouse.AccountCode,
		warehouse.CreatedAt, warehouse.CreatedBy, warehouse.LastUpdatedAt, warehouse.LastUpdatedBy,
	)
	if err != nil {
		return duplicateOr(err, "warehouse", warehouse.WarehouseID)
	}
	return nil
}

func (r *PgxRegistryRepository) FindWarehouseByID(ctx context.Context, warehouseID string) (*domain.Warehouse, error) {
	query := `
		SELECT warehouse_id, name, location, account_id, account_code, created_at, created_by, last_updated_at, last_updated_by
		FROM warehouses WHERE warehouse_id = $1;
	`
	var w domain.Warehouse
	err := r.pool.QueryRow(ctx, query, warehouseID).Scan(
		&w.WarehouseID, &w.Name, &w.Location, &w.AccountID, &w.AccountCode,
		&w.CreatedAt, &w.CreatedBy, &w.LastUpdatedAt, &w.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: warehouse %s", apperrors.ErrNotFound, warehouseID)
		}
		return nil, fmt.Errorf("failed to find warehouse %s: %w", warehouseID, err)
	}
	return &w, nil
}

func (r *PgxRegistryRepository) ListWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	query := `
		SELECT warehouse_id, name, location, account_id, account_code, created_at, created_by, last_updated_at, last_updated_by
		FROM warehouses ORDER BY name;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list warehouses: %w", err)
	}
	defer rows.Close()

	var warehouses []domain.Warehouse
	for rows.Next() {
		var w domain.Warehouse
		if err := rows.Scan(
			&w.WarehouseID, &w.Name, &w.Location, &w.AccountID, &w.AccountCode,
			&w.CreatedAt, &w.CreatedBy, &w.LastUpdatedAt, &w.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan warehouse row: %w", err)
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, rows.Err()
}

func (r *PgxRegistryRepository) DeleteWarehouse(ctx context.Context, warehouseID string) error {
	return r.deleteByID(ctx, "warehouses", "warehouse_id", warehouseID)
}

func (r *PgxRegistryRepository) deleteByID(ctx context.Context, table, column, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1;`, table, column)
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, column, id)
	}
	return nil
}
