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
	"github.com/erpcore/sales_settlement_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

// Helper to convert domain.Invoice to models.Invoice for DB storage
func toModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		Number:        d.Number,
		BranchID:      d.BranchID,
		CustomerName:  d.CustomerName,
		IssueDate:     d.IssueDate,
		Total:         d.Totals.Total,
		AfterDiscount: d.Totals.AfterDiscount,
		Tax:           d.Totals.Tax,
		AfterTax:      d.Totals.AfterTax,
		PaymentMethod: string(d.Payment.Method),
		CashBoxRef:    d.Payment.CashBoxRef,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func paymentSplitModels(d domain.Invoice) []models.PaymentSplit {
	var splits []models.PaymentSplit
	add := func(kind string, split *domain.PaymentSplit) {
		if split == nil {
			return
		}
		splits = append(splits, models.PaymentSplit{
			SplitID:    uuid.NewString(),
			InvoiceID:  d.InvoiceID,
			Kind:       kind,
			AccountRef: split.AccountRef,
			Amount:     split.Amount,
		})
	}
	add("cash", d.Payment.Cash)
	add("bank", d.Payment.Bank)
	add("card", d.Payment.Card)
	return splits
}

// SaveInvoice inserts the invoice header, its lines and payment splits in one
// database transaction.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	modelInv := toModelInvoice(invoice)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction is committed

	headerQuery := `
		INSERT INTO invoices (invoice_id, number, branch_id, customer_name, issue_date, total, after_discount, tax, after_tax, payment_method, cash_box_ref, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, headerQuery,
		modelInv.InvoiceID,
		modelInv.Number,
		modelInv.BranchID,
		modelInv.CustomerName,
		modelInv.IssueDate,
		modelInv.Total,
		modelInv.AfterDiscount,
		modelInv.Tax,
		modelInv.AfterTax,
		modelInv.PaymentMethod,
		modelInv.CashBoxRef,
		modelInv.CreatedAt,
		modelInv.CreatedBy,
		modelInv.LastUpdatedAt,
		modelInv.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: invoice with ID %s already exists", apperrors.ErrDuplicate, modelInv.InvoiceID)
		}
		return fmt.Errorf("failed to save invoice %s: %w", modelInv.InvoiceID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO invoice_lines (line_id, invoice_id, position, item_code, item_name, quantity, unit_price, discount_percent, tax_percent, warehouse_id, discount_value, tax_value, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for i, line := range invoice.Lines {
		batch.Queue(lineQuery,
			uuid.NewString(),
			invoice.InvoiceID,
			i,
			line.ItemCode,
			line.ItemName,
			line.Quantity,
			line.UnitPrice,
			line.DiscountPercent,
			line.TaxPercent,
			line.WarehouseID,
			line.DiscountValue,
			line.TaxValue,
			line.LineTotal,
		)
	}

	splitQuery := `
		INSERT INTO payment_splits (split_id, invoice_id, kind, account_ref, amount)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, split := range paymentSplitModels(invoice) {
		batch.Queue(splitQuery, split.SplitID, split.InvoiceID, split.Kind, split.AccountRef, split.Amount)
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to save invoice %s details: %w", invoice.InvoiceID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close invoice %s batch: %w", invoice.InvoiceID, err)
	}

	return r.Commit(ctx, tx)
}

// CountInvoicesByBranchAndDate counts invoices for an exact branch and
// issue-date match. Exact equality, not a range: that is the contract the
// invoice number sequence is derived from.
func (r *PgxInvoiceRepository) CountInvoicesByBranchAndDate(ctx context.Context, branchID string, issueDate time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM invoices WHERE branch_id = $1 AND issue_date = $2;`

	var count int64
	day := time.Date(issueDate.Year(), issueDate.Month(), issueDate.Day(), 0, 0, 0, 0, time.UTC)
	if err := r.Pool.QueryRow(ctx, query, branchID, day).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count invoices for branch %s: %w", branchID, err)
	}
	return count, nil
}

// FindInvoiceByID retrieves an invoice with its lines and payment splits.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	headerQuery := `
		SELECT invoice_id, number, branch_id, customer_name, issue_date, total, after_discount, tax, after_tax, payment_method, cash_box_ref, created_at, created_by, last_updated_at, last_updated_by
		FROM invoices
		WHERE invoice_id = $1;
	`
	var m models.Invoice
	err := r.Pool.QueryRow(ctx, headerQuery, invoiceID).Scan(
		&m.InvoiceID, &m.Number, &m.BranchID, &m.CustomerName, &m.IssueDate,
		&m.Total, &m.AfterDiscount, &m.Tax, &m.AfterTax,
		&m.PaymentMethod, &m.CashBoxRef,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}

	invoice := toDomainInvoice(m)

	lines, err := r.findLines(ctx, []string{invoiceID})
	if err != nil {
		return nil, err
	}
	invoice.Lines = lines[invoiceID]

	splits, err := r.findSplits(ctx, []string{invoiceID})
	if err != nil {
		return nil, err
	}
	applySplits(&invoice, splits[invoiceID])

	return &invoice, nil
}

// ListInvoices retrieves a keyset-paginated page of invoices, newest first.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	query := `
		SELECT invoice_id, number, branch_id, customer_name, issue_date, total, after_discount, tax, after_tax, payment_method, cash_box_ref, created_at, created_by, last_updated_at, last_updated_by
		FROM invoices
	`
	args := []any{}
	if nextToken != nil && *nextToken != "" {
		issueDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` WHERE (issue_date, created_at) < ($1, $2)`
		args = append(args, issueDate, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY issue_date DESC, created_at DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		var m models.Invoice
		if err := rows.Scan(
			&m.InvoiceID, &m.Number, &m.BranchID, &m.CustomerName, &m.IssueDate,
			&m.Total, &m.AfterDiscount, &m.Tax, &m.AfterTax,
			&m.PaymentMethod, &m.CashBoxRef,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, toDomainInvoice(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed reading invoice rows: %w", err)
	}

	var newNextToken *string
	if len(invoices) > limit {
		last := invoices[limit-1]
		token := pagination.EncodeToken(last.IssueDate, last.CreatedAt)
		newNextToken = &token
		invoices = invoices[:limit]
	}

	if len(invoices) > 0 {
		ids := make([]string, len(invoices))
		for i, inv := range invoices {
			ids[i] = inv.InvoiceID
		}
		lines, err := r.findLines(ctx, ids)
		if err != nil {
			return nil, nil, err
		}
		splits, err := r.findSplits(ctx, ids)
		if err != nil {
			return nil, nil, err
		}
		for i := range invoices {
			invoices[i].Lines = lines[invoices[i].InvoiceID]
			applySplits(&invoices[i], splits[invoices[i].InvoiceID])
		}
	}

	return invoices, newNextToken, nil
}

func toDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:    m.InvoiceID,
		Number:       m.Number,
		BranchID:     m.BranchID,
		CustomerName: m.CustomerName,
		IssueDate:    m.IssueDate,
		Totals: domain.InvoiceTotals{
			Total:         m.Total,
			AfterDiscount: m.AfterDiscount,
			Tax:           m.Tax,
			AfterTax:      m.AfterTax,
		},
		Payment: domain.PaymentDetails{
			Method:     domain.PaymentMethod(m.PaymentMethod),
			CashBoxRef: m.CashBoxRef,
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func (r *PgxInvoiceRepository) findLines(ctx context.Context, invoiceIDs []string) (map[string][]domain.InvoiceLine, error) {
	query := `
		SELECT invoice_id, item_code, item_name, quantity, unit_price, discount_percent, tax_percent, warehouse_id, discount_value, tax_value, line_total
		FROM invoice_lines
		WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, position;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice lines: %w", err)
	}
	defer rows.Close()

	lines := make(map[string][]domain.InvoiceLine)
	for rows.Next() {
		var invoiceID string
		var l domain.InvoiceLine
		if err := rows.Scan(
			&invoiceID, &l.ItemCode, &l.ItemName, &l.Quantity, &l.UnitPrice,
			&l.DiscountPercent, &l.TaxPercent, &l.WarehouseID,
			&l.DiscountValue, &l.TaxValue, &l.LineTotal,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice line: %w", err)
		}
		lines[invoiceID] = append(lines[invoiceID], l)
	}
	return lines, rows.Err()
}

func (r *PgxInvoiceRepository) findSplits(ctx context.Context, invoiceIDs []string) (map[string][]models.PaymentSplit, error) {
	query := `
		SELECT invoice_id, kind, account_ref, amount
		FROM payment_splits
		WHERE invoice_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment splits: %w", err)
	}
	defer rows.Close()

	splits := make(map[string][]models.PaymentSplit)
	for rows.Next() {
		var s models.PaymentSplit
		if err := rows.Scan(&s.InvoiceID, &s.Kind, &s.AccountRef, &s.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan payment split: %w", err)
		}
		splits[s.InvoiceID] = append(splits[s.InvoiceID], s)
	}
	return splits, rows.Err()
}

func applySplits(invoice *domain.Invoice, splits []models.PaymentSplit) {
	for _, s := range splits {
		split := &domain.PaymentSplit{AccountRef: s.AccountRef, Amount: s.Amount}
		switch s.Kind {
		case "cash":
			invoice.Payment.Cash = split
		case "bank":
			invoice.Payment.Bank = split
		case "card":
			invoice.Payment.Card = split
		}
	}
}
