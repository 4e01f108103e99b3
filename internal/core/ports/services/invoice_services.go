package services

import (
	"context"
	"time"

	"github.com/erpcore/sales_settlement_app/internal/core/domain"
	"github.com/erpcore/sales_settlement_app/internal/dto"
	"github.com/shopspring/decimal"
)

// InvoiceNumberSvc derives advisory invoice numbers.
type InvoiceNumberSvc interface {
	// GenerateInvoiceNumber derives INV-{branchCode}-{YYYYMMDD}-{seq} from the
	// branch directory and the count of existing invoices for that branch and
	// date. The number is read-derived, not reserved: concurrent callers for
	// the same branch and date can observe the same sequence.
	GenerateInvoiceNumber(ctx context.Context, branchID string, asOf time.Time) (string, error)
}

// InvoiceReaderSvc defines read operations for invoices.
type InvoiceReaderSvc interface {
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, limit int, nextToken *string) ([]domain.Invoice, *string, error)
}

// InvoiceWriterSvc defines the invoice save flow.
type InvoiceWriterSvc interface {
	// CreateInvoice runs the full settlement flow: item gates, line
	// computation, totals aggregation, payment reconciliation, number
	// derivation and persistence. All validation happens before any write.
	// The returned string is the advisory number for the next invoice.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, string, error)
}

// InvoicePreviewSvc exposes the pure computations backing live form feedback.
type InvoicePreviewSvc interface {
	PreviewTotals(lines []domain.InvoiceLine) domain.InvoiceTotals
	PreviewReconcile(lines []domain.InvoiceLine, payment domain.PaymentDetails) (domain.InvoiceTotals, decimal.Decimal, bool, error)
}

// InvoiceSvcFacade combines all invoice service interfaces.
type InvoiceSvcFacade interface {
	InvoiceNumberSvc
	InvoiceReaderSvc
	InvoiceWriterSvc
	InvoicePreviewSvc
}
