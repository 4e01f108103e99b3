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

type PgxItemRepository struct {
	pool *pgxpool.Pool
}

// newPgxItemRepository creates a new repository for catalog item data.
func newPgxItemRepository(pool *pgxpool.Pool) portsrepo.ItemRepositoryFacade {
	return &PgxItemRepository{pool: pool}
}

var _ portsrepo.ItemRepositoryFacade = (*PgxItemRepository)(nil)

func toDomainItem(m models.Item) domain.Item {
	return domain.Item{
		ItemID:        m.ItemID,
		Code:          m.Code,
		Name:          m.Name,
		SalePrice:     m.SalePrice,
		TaxPercent:    m.TaxPercent,
		AllowNegative: m.AllowNegative,
		Suspended:     m.Suspended,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const itemColumns = `item_id, code, name, sale_price, tax_percent, allow_negative, suspended, created_at, created_by, last_updated_at, last_updated_by`

func scanItem(row pgx.Row) (models.Item, error) {
	var m models.Item
	err := row.Scan(&m.ItemID, &m.Code, &m.Name, &m.SalePrice, &m.TaxPercent,
		&m.AllowNegative, &m.Suspended,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}

// FindItemByName retrieves an item by its exact name, the key stock
// documents reference items by.
func (r *PgxItemRepository) FindItemByName(ctx context.Context, name string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE name = $1;`
	m, err := scanItem(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: item %q", apperrors.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to find item %q: %w", name, err)
	}
	item := toDomainItem(m)
	return &item, nil
}

func (r *PgxItemRepository) ListItems(ctx context.Context, limit int, offset int) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY code LIMIT $1 OFFSET $2;`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, toDomainItem(m))
	}
	return items, rows.Err()
}

// SaveItem inserts a new catalog item.
func (r *PgxItemRepository) SaveItem(ctx context.Context, item domain.Item) error {
	query := `
		INSERT INTO items (item_id, code, name, sale_price, tax_percent, allow_negative, suspended, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		item.ItemID, item.Code, item.Name, item.SalePrice, item.TaxPercent,
		item.AllowNegative, item.Suspended,
		item.CreatedAt, item.CreatedBy, item.LastUpdatedAt, item.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: item with code %s already exists", apperrors.ErrDuplicate, item.Code)
		}
		return fmt.Errorf("failed to save item %s: %w", item.ItemID, err)
	}
	return nil
}
