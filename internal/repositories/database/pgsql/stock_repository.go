package pgsql

import (
	"context"
	"fmt"

	"github.com/erpcore/sales_settlement_app/internal/core/domain"
	portsrepo "github.com/erpcore/sales_settlement_app/internal/core/ports/repositories"
	"github.com/erpcore/sales_settlement_app/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxStockRepository reads the three transaction logs the stock projector
// replays. Sales come from the invoices tables; purchases and sales returns
// have their own header/line tables, including the legacy warehouse columns
// carried over from imported documents.
type PgxStockRepository struct {
	pool *pgxpool.Pool
}

// newPgxStockRepository creates a new reader over the stock transaction logs.
func newPgxStockRepository(pool *pgxpool.Pool) portsrepo.StockDocumentReader {
	return &PgxStockRepository{pool: pool}
}

var _ portsrepo.StockDocumentReader = (*PgxStockRepository)(nil)

func (r *PgxStockRepository) ListPurchases(ctx context.Context) ([]domain.StockDocument, error) {
	headers, order, err := r.loadHeaders(ctx, domain.PurchaseDoc,
		`SELECT document_id, warehouse_id, doc_date FROM purchases;`)
	if err != nil {
		return nil, err
	}
	err = r.loadLines(ctx, headers,
		`SELECT document_id, item_name, quantity, NULL, COALESCE(warehouse_id, ''), COALESCE(warehouse, '') FROM purchase_lines;`)
	if err != nil {
		return nil, err
	}
	return assemble(headers, order), nil
}

func (r *PgxStockRepository) ListSales(ctx context.Context) ([]domain.StockDocument, error) {
	headers, order, err := r.loadHeaders(ctx, domain.SaleDoc,
		`SELECT invoice_id, '', issue_date FROM invoices;`)
	if err != nil {
		return nil, err
	}
	err = r.loadLines(ctx, headers,
		`SELECT invoice_id, item_name, quantity, NULL, warehouse_id, '' FROM invoice_lines;`)
	if err != nil {
		return nil, err
	}
	return assemble(headers, order), nil
}

func (r *PgxStockRepository) ListSalesReturns(ctx context.Context) ([]domain.StockDocument, error) {
	headers, order, err := r.loadHeaders(ctx, domain.SalesReturnDoc,
		`SELECT document_id, warehouse_id, doc_date FROM sales_returns;`)
	if err != nil {
		return nil, err
	}
	err = r.loadLines(ctx, headers,
		`SELECT document_id, item_name, quantity, returned_qty, COALESCE(warehouse_id, ''), COALESCE(warehouse, '') FROM sales_return_lines;`)
	if err != nil {
		return nil, err
	}
	return assemble(headers, order), nil
}

func (r *PgxStockRepository) loadHeaders(ctx context.Context, kind domain.StockDocKind, query string) (map[string]*domain.StockDocument, []string, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load %s headers: %w", kind, err)
	}
	defer rows.Close()

	headers := make(map[string]*domain.StockDocument)
	var order []string
	for rows.Next() {
		var m models.StockDocumentHeader
		if err := rows.Scan(&m.DocumentID, &m.WarehouseID, &m.Date); err != nil {
			return nil, nil, fmt.Errorf("failed to scan %s header: %w", kind, err)
		}
		doc := toDomainStockDocument(kind, m)
		headers[doc.DocumentID] = &doc
		order = append(order, doc.DocumentID)
	}
	return headers, order, rows.Err()
}

func (r *PgxStockRepository) loadLines(ctx context.Context, headers map[string]*domain.StockDocument, query string) error {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to load stock lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.StockDocumentLine
		if err := rows.Scan(&m.DocumentID, &m.ItemName, &m.Quantity, &m.ReturnedQty, &m.WarehouseID, &m.Warehouse); err != nil {
			return fmt.Errorf("failed to scan stock line: %w", err)
		}

		doc, ok := headers[m.DocumentID]
		if !ok {
			// Orphaned line; nothing to attach it to.
			continue
		}
		doc.Lines = append(doc.Lines, toDomainStockLine(m))
	}
	return rows.Err()
}

// Helper to convert models.StockDocumentHeader to a domain.StockDocument of
// the given kind.
func toDomainStockDocument(kind domain.StockDocKind, m models.StockDocumentHeader) domain.StockDocument {
	return domain.StockDocument{
		Kind:        kind,
		DocumentID:  m.DocumentID,
		WarehouseID: m.WarehouseID,
		Date:        m.Date,
	}
}

// Helper to convert models.StockDocumentLine to domain.StockLine.
func toDomainStockLine(m models.StockDocumentLine) domain.StockLine {
	return domain.StockLine{
		ItemName:        m.ItemName,
		Quantity:        m.Quantity,
		ReturnedQty:     m.ReturnedQty,
		WarehouseID:     m.WarehouseID,
		LegacyWarehouse: m.Warehouse,
	}
}

func assemble(headers map[string]*domain.StockDocument, order []string) []domain.StockDocument {
	docs := make([]domain.StockDocument, 0, len(order))
	for _, id := range order {
		docs = append(docs, *headers[id])
	}
	return docs
}
