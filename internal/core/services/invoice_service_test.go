package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/erpcore/sales_settlement_app/internal/apperrors"
	"github.com/erpcore/sales_settlement_app/internal/core/domain"
	portsrepo "github.com/erpcore/sales_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/erpcore/sales_settlement_app/internal/core/ports/services"
	"github.com/erpcore/sales_settlement_app/internal/core/services"
	"github.com/erpcore/sales_settlement_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.Invoice), returnedToken, args.Error(2)
}

func (m *MockInvoiceRepository) CountInvoicesByBranchAndDate(ctx context.Context, branchID string, issueDate time.Time) (int64, error) {
	args := m.Called(ctx, branchID, issueDate)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock BranchRepository ---
type MockBranchRepository struct {
	mock.Mock
}

var _ portsrepo.BranchRepositoryFacade = (*MockBranchRepository)(nil)

func (m *MockBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

// --- Mock StockService ---
type MockStockService struct {
	mock.Mock
}

var _ portssvc.StockSvcFacade = (*MockStockService)(nil)

func (m *MockStockService) Balance(ctx context.Context, itemName, warehouseID string) (decimal.Decimal, error) {
	args := m.Called(ctx, itemName, warehouseID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStockService) Balances(ctx context.Context, itemNames []string, warehouseID string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, itemNames, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockStockService) CheckAvailability(ctx context.Context, itemName, warehouseID string, requested decimal.Decimal) error {
	args := m.Called(ctx, itemName, warehouseID, requested)
	return args.Error(0)
}

func (m *MockStockService) Invalidate() {
	m.Called()
}

func newInvoiceServiceForTest(invoiceRepo *MockInvoiceRepository, branchRepo *MockBranchRepository, stockSvc *MockStockService) portssvc.InvoiceSvcFacade {
	return services.NewInvoiceService(invoiceRepo,
		services.WithBranchRepository(branchRepo),
		services.WithStockService(stockSvc),
	)
}

func TestGenerateInvoiceNumber(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("branch code and count drive the number", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		branchRepo := new(MockBranchRepository)
		branchRepo.On("FindBranchByID", mock.Anything, "B1").Return(&domain.Branch{BranchID: "B1", Code: "7"}, nil)
		invoiceRepo.On("CountInvoicesByBranchAndDate", mock.Anything, "B1", asOf).Return(int64(2), nil)

		svc := newInvoiceServiceForTest(invoiceRepo, branchRepo, new(MockStockService))
		number, err := svc.GenerateInvoiceNumber(ctx, "B1", asOf)
		assert.NoError(t, err)
		assert.Equal(t, "INV-7-20240501-3", number)
	})

	t.Run("legacy number field backs an empty code", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		branchRepo := new(MockBranchRepository)
		branchRepo.On("FindBranchByID", mock.Anything, "B2").Return(&domain.Branch{BranchID: "B2", Number: "12"}, nil)
		invoiceRepo.On("CountInvoicesByBranchAndDate", mock.Anything, "B2", asOf).Return(int64(0), nil)

		svc := newInvoiceServiceForTest(invoiceRepo, branchRepo, new(MockStockService))
		number, err := svc.GenerateInvoiceNumber(ctx, "B2", asOf)
		assert.NoError(t, err)
		assert.Equal(t, "INV-12-20240501-1", number)
	})

	t.Run("unknown branch falls back to code 1", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		branchRepo := new(MockBranchRepository)
		branchRepo.On("FindBranchByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)
		invoiceRepo.On("CountInvoicesByBranchAndDate", mock.Anything, "missing", asOf).Return(int64(0), nil)

		svc := newInvoiceServiceForTest(invoiceRepo, branchRepo, new(MockStockService))
		number, err := svc.GenerateInvoiceNumber(ctx, "missing", asOf)
		assert.NoError(t, err)
		assert.Equal(t, "INV-1-20240501-1", number)
	})
}

func validCreateRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		BranchID:     "B1",
		CustomerName: "ACME Trading",
		IssueDate:    "2024-05-01",
		WarehouseID:  "wh-1",
		Lines: []dto.InvoiceLineRequest{
			{ItemName: "bolt", Quantity: qty("3"), UnitPrice: qty("19.99"), DiscountPercent: qty("10"), TaxPercent: qty("15")},
		},
		Payment: dto.PaymentRequest{Method: "CASH", CashBoxRef: "cb-main"},
	}
}

func TestCreateInvoice(t *testing.T) {
	ctx := context.Background()
	issueDate := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("full flow computes, saves and invalidates", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		branchRepo := new(MockBranchRepository)
		stockSvc := new(MockStockService)

		branchRepo.On("FindBranchByID", mock.Anything, "B1").Return(&domain.Branch{BranchID: "B1", Code: "7"}, nil)
		// First derivation sees two invoices on the books, the re-derivation
		// after the save sees three.
		invoiceRepo.On("CountInvoicesByBranchAndDate", mock.Anything, "B1", issueDate).Return(int64(2), nil).Once()
		invoiceRepo.On("CountInvoicesByBranchAndDate", mock.Anything, "B1", issueDate).Return(int64(3), nil).Once()
		stockSvc.On("CheckAvailability", mock.Anything, "bolt", "wh-1", qty("3")).Return(nil)
		stockSvc.On("Invalidate").Return()

		var saved domain.Invoice
		invoiceRepo.On("SaveInvoice", mock.Anything, mock.AnythingOfType("domain.Invoice")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Invoice) }).
			Return(nil)

		svc := newInvoiceServiceForTest(invoiceRepo, branchRepo, stockSvc)
		invoice, nextNumber, err := svc.CreateInvoice(ctx, validCreateRequest(), "user-1")
		assert.NoError(t, err)
		assert.NotNil(t, invoice)

		assert.Equal(t, "INV-7-20240501-3", invoice.Number)
		assert.Equal(t, "INV-7-20240501-4", nextNumber)
		assert.Equal(t, "user-1", invoice.CreatedBy)

		// Derived line values landed on the persisted invoice.
		assert.Len(t, saved.Lines, 1)
		assert.True(t, saved.Lines[0].LineTotal.Equal(qty("59.97")))
		assert.True(t, saved.Lines[0].DiscountValue.Equal(qty("6.00")))
		assert.True(t, saved.Lines[0].TaxValue.Equal(qty("8.10")))
		assert.True(t, saved.Totals.AfterTax.Equal(qty("62.07")))

		stockSvc.AssertCalled(t, "Invalidate")
	})

	t.Run("invalid issue date", func(t *testing.T) {
		req := validCreateRequest()
		req.IssueDate = "01/05/2024"

		svc := newInvoiceServiceForTest(new(MockInvoiceRepository), new(MockBranchRepository), new(MockStockService))
		_, _, err := svc.CreateInvoice(ctx, req, "user-1")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("stock gate failure stops the flow before any write", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		stockSvc := new(MockStockService)
		stockSvc.On("CheckAvailability", mock.Anything, "bolt", "wh-1", qty("3")).
			Return(&apperrors.InsufficientStockError{ItemName: "bolt", Requested: qty("3"), Available: qty("1")})

		svc := newInvoiceServiceForTest(invoiceRepo, new(MockBranchRepository), stockSvc)
		_, _, err := svc.CreateInvoice(ctx, validCreateRequest(), "user-1")
		assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
		invoiceRepo.AssertNotCalled(t, "SaveInvoice", mock.Anything, mock.Anything)
	})

	t.Run("payment mismatch stops the flow before any write", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		stockSvc := new(MockStockService)
		stockSvc.On("CheckAvailability", mock.Anything, "bolt", "wh-1", qty("3")).Return(nil)

		req := validCreateRequest()
		req.Payment = dto.PaymentRequest{
			Method: "MULTIPLE",
			Cash:   &dto.PaymentSplitRequest{AccountRef: "cb-main", Amount: qty("10.00")},
		}

		svc := newInvoiceServiceForTest(invoiceRepo, new(MockBranchRepository), stockSvc)
		_, _, err := svc.CreateInvoice(ctx, req, "user-1")
		assert.ErrorIs(t, err, apperrors.ErrPaymentMismatch)
		invoiceRepo.AssertNotCalled(t, "SaveInvoice", mock.Anything, mock.Anything)
	})

	t.Run("cash without cash box is rejected", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		stockSvc := new(MockStockService)
		stockSvc.On("CheckAvailability", mock.Anything, "bolt", "wh-1", qty("3")).Return(nil)

		req := validCreateRequest()
		req.Payment = dto.PaymentRequest{Method: "CASH"}

		svc := newInvoiceServiceForTest(invoiceRepo, new(MockBranchRepository), stockSvc)
		_, _, err := svc.CreateInvoice(ctx, req, "user-1")
		assert.ErrorIs(t, err, apperrors.ErrMissingCashBox)
		invoiceRepo.AssertNotCalled(t, "SaveInvoice", mock.Anything, mock.Anything)
	})

	t.Run("line-level warehouse override reaches the stock gate", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		branchRepo := new(MockBranchRepository)
		stockSvc := new(MockStockService)

		branchRepo.On("FindBranchByID", mock.Anything, "B1").Return(&domain.Branch{BranchID: "B1", Code: "7"}, nil)
		invoiceRepo.On("CountInvoicesByBranchAndDate", mock.Anything, "B1", issueDate).Return(int64(0), nil)
		invoiceRepo.On("SaveInvoice", mock.Anything, mock.AnythingOfType("domain.Invoice")).Return(nil)
		stockSvc.On("CheckAvailability", mock.Anything, "bolt", "wh-2", qty("3")).Return(nil)
		stockSvc.On("Invalidate").Return()

		req := validCreateRequest()
		req.Lines[0].WarehouseID = "wh-2"

		svc := newInvoiceServiceForTest(invoiceRepo, branchRepo, stockSvc)
		_, _, err := svc.CreateInvoice(ctx, req, "user-1")
		assert.NoError(t, err)
		stockSvc.AssertCalled(t, "CheckAvailability", mock.Anything, "bolt", "wh-2", qty("3"))
	})
}

func TestListInvoicesDefaultLimit(t *testing.T) {
	ctx := context.Background()
	invoiceRepo := new(MockInvoiceRepository)
	invoiceRepo.On("ListInvoices", mock.Anything, 20, (*string)(nil)).Return([]domain.Invoice{}, nil, nil)

	svc := newInvoiceServiceForTest(invoiceRepo, new(MockBranchRepository), new(MockStockService))
	_, _, err := svc.ListInvoices(ctx, 0, nil)
	assert.NoError(t, err)
	invoiceRepo.AssertCalled(t, "ListInvoices", mock.Anything, 20, (*string)(nil))
}
