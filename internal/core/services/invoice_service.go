package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/erpcore/sales_settlement_app/internal/apperrors"
	"github.com/erpcore/sales_settlement_app/internal/core/domain"
	portsrepo "github.com/erpcore/sales_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/erpcore/sales_settlement_app/internal/core/ports/services"
	"github.com/erpcore/sales_settlement_app/internal/dto"
	"github.com/erpcore/sales_settlement_app/internal/utils/settlement"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const issueDateLayout = "2006-01-02"

// invoiceServiceImpl implements the InvoiceSvcFacade interface.
type invoiceServiceImpl struct {
	BaseService
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	branchRepo   portsrepo.BranchReader
	stockService portssvc.StockSvcFacade
}

// InvoiceServiceOption is a functional option for configuring the invoice service
type InvoiceServiceOption func(*invoiceServiceImpl)

// WithBranchRepository adds the branch directory dependency
func WithBranchRepository(repo portsrepo.BranchReader) InvoiceServiceOption {
	return func(s *invoiceServiceImpl) {
		s.branchRepo = repo
	}
}

// WithStockService adds the stock gate dependency
func WithStockService(svc portssvc.StockSvcFacade) InvoiceServiceOption {
	return func(s *invoiceServiceImpl) {
		s.stockService = svc
	}
}

// NewInvoiceService creates a new invoice service with the provided options
func NewInvoiceService(repo portsrepo.InvoiceRepositoryFacade, options ...InvoiceServiceOption) portssvc.InvoiceSvcFacade {
	svc := &invoiceServiceImpl{
		invoiceRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.InvoiceSvcFacade = (*invoiceServiceImpl)(nil)

// GenerateInvoiceNumber derives the advisory invoice number for a branch and
// date. The sequence comes from counting existing invoices with an exact
// branch and date match; it is not reserved, so the number is display-grade
// until the save lands and it is re-derived.
func (s *invoiceServiceImpl) GenerateInvoiceNumber(ctx context.Context, branchID string, asOf time.Time) (string, error) {
	var branch *domain.Branch
	if s.branchRepo != nil {
		found, err := s.branchRepo.FindBranchByID(ctx, branchID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve branch for invoice number",
				slog.String("branch_id", branchID))
			return "", fmt.Errorf("%w: resolving branch %s: %v", apperrors.ErrPersistence, branchID, err)
		}
		// An unknown branch falls through to the "1" code on purpose.
		branch = found
	}

	count, err := s.invoiceRepo.CountInvoicesByBranchAndDate(ctx, branchID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to count invoices for number sequence",
			slog.String("branch_id", branchID))
		return "", fmt.Errorf("%w: counting invoices: %v", apperrors.ErrPersistence, err)
	}

	return fmt.Sprintf("INV-%s-%s-%d", branch.DisplayCode(), asOf.Format("20060102"), count+1), nil
}

// PreviewTotals computes invoice totals from raw lines without touching
// persistence.
func (s *invoiceServiceImpl) PreviewTotals(lines []domain.InvoiceLine) domain.InvoiceTotals {
	return settlement.Aggregate(lines)
}

// PreviewReconcile recomputes totals and validates the payment block against
// them, returning the remaining balance for display. Validation failure is
// returned alongside the figures so the form can show both.
func (s *invoiceServiceImpl) PreviewReconcile(lines []domain.InvoiceLine, payment domain.PaymentDetails) (domain.InvoiceTotals, decimal.Decimal, bool, error) {
	totals := settlement.Aggregate(lines)
	err := settlement.Reconcile(totals, payment)
	remaining, settled := settlement.Remaining(totals, payment)
	return totals, remaining, settled, err
}

// CreateInvoice runs the whole settlement flow. Every gate and validation
// resolves before the save is attempted; a partially-valid invoice is never
// written.
func (s *invoiceServiceImpl) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, string, error) {
	issueDate, err := time.Parse(issueDateLayout, req.IssueDate)
	if err != nil {
		return nil, "", fmt.Errorf("%w: invalid issue date %q", apperrors.ErrValidation, req.IssueDate)
	}

	lines := dto.ToDomainLines(req.Lines, req.WarehouseID)
	if len(lines) == 0 {
		return nil, "", fmt.Errorf("%w: invoice has no lines", apperrors.ErrValidation)
	}

	// Suspension and negative-stock gates, one item at a time, before any
	// monetary computation or write.
	if s.stockService != nil {
		for _, line := range lines {
			if err := s.stockService.CheckAvailability(ctx, line.ItemName, line.WarehouseID, line.Quantity); err != nil {
				s.LogWarn(ctx, "Invoice line rejected by stock gate",
					slog.String("item_name", line.ItemName),
					slog.String("warehouse_id", line.WarehouseID))
				return nil, "", err
			}
		}
	}

	for i := range lines {
		settlement.ApplyLine(&lines[i])
	}
	totals := settlement.Aggregate(lines)

	payment := req.Payment.ToPaymentDetails()
	if err := settlement.Reconcile(totals, payment); err != nil {
		return nil, "", err
	}

	number, err := s.GenerateInvoiceNumber(ctx, req.BranchID, issueDate)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	invoice := domain.Invoice{
		InvoiceID:    uuid.NewString(),
		Number:       number,
		BranchID:     req.BranchID,
		CustomerName: req.CustomerName,
		IssueDate:    issueDate,
		Lines:        lines,
		Totals:       totals,
		Payment:      payment,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		s.LogError(ctx, err, "Failed to save invoice",
			slog.String("invoice_id", invoice.InvoiceID),
			slog.String("number", invoice.Number))
		return nil, "", err
	}

	// The sale changes projected stock; drop the memoized snapshot.
	if s.stockService != nil {
		s.stockService.Invalidate()
	}

	// Re-derive the advisory number for the next invoice now that this one is
	// on the books. A failure here is not worth failing the create over.
	nextNumber, err := s.GenerateInvoiceNumber(ctx, req.BranchID, issueDate)
	if err != nil {
		s.LogWarn(ctx, "Failed to re-derive next invoice number",
			slog.String("branch_id", req.BranchID))
		nextNumber = ""
	}

	s.LogInfo(ctx, "Invoice created successfully",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("number", invoice.Number),
		slog.String("after_tax", totals.AfterTax.String()))
	return &invoice, nextNumber, nil
}

func (s *invoiceServiceImpl) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find invoice by ID",
				slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceServiceImpl) ListInvoices(ctx context.Context, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.invoiceRepo.ListInvoices(ctx, limit, nextToken)
}
