package repositories

import (
	"context"
	"time"

	"github.com/erpcore/sales_settlement_app/internal/core/domain"
)

// InvoiceReader defines read operations for sales invoices.
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice with its lines and payment splits.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a token-paginated list of invoices, newest first.
	ListInvoices(ctx context.Context, limit int, nextToken *string) ([]domain.Invoice, *string, error)

	// CountInvoicesByBranchAndDate counts existing invoices for an exact
	// branch and issue-date match. The count feeds the advisory invoice
	// number sequence.
	CountInvoicesByBranchAndDate(ctx context.Context, branchID string, issueDate time.Time) (int64, error)
}

// InvoiceWriter defines write operations for sales invoices.
type InvoiceWriter interface {
	// SaveInvoice persists the invoice header, its lines and payment splits
	// atomically.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
