package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/erpcore/sales_settlement_app/internal/apperrors"
	"github.com/erpcore/sales_settlement_app/internal/core/domain"
	portssvc "github.com/erpcore/sales_settlement_app/internal/core/ports/services"
	"github.com/erpcore/sales_settlement_app/internal/dto"
	"github.com/erpcore/sales_settlement_app/internal/handlers"
	"github.com/erpcore/sales_settlement_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, string, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.Invoice), args.String(1), args.Error(2)
}
func (m *MockInvoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) ListInvoices(ctx context.Context, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		val := args.Get(1).(string)
		token = &val
	}
	return args.Get(0).([]domain.Invoice), token, args.Error(2)
}
func (m *MockInvoiceService) GenerateInvoiceNumber(ctx context.Context, branchID string, asOf time.Time) (string, error) {
	args := m.Called(ctx, branchID, asOf)
	return args.String(0), args.Error(1)
}
func (m *MockInvoiceService) PreviewTotals(lines []domain.InvoiceLine) domain.InvoiceTotals {
	args := m.Called(lines)
	return args.Get(0).(domain.InvoiceTotals)
}
func (m *MockInvoiceService) PreviewReconcile(lines []domain.InvoiceLine, payment domain.PaymentDetails) (domain.InvoiceTotals, decimal.Decimal, bool, error) {
	args := m.Called(lines, payment)
	return args.Get(0).(domain.InvoiceTotals), args.Get(1).(decimal.Decimal), args.Bool(2), args.Error(3)
}

// Ensure mock implements the interface
var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

type InvoiceHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockInvoiceService *MockInvoiceService
}

func (suite *InvoiceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(middleware.IdentityMiddleware())

	suite.mockInvoiceService = new(MockInvoiceService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterInvoiceRoutes(v1, suite.mockInvoiceService)
}

func (suite *InvoiceHandlerTestSuite) postJSON(path string, body any, userID string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func validInvoiceBody() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		BranchID:    "B1",
		IssueDate:   "2024-05-01",
		WarehouseID: "wh-1",
		Lines: []dto.InvoiceLineRequest{
			{ItemName: "bolt", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.RequireFromString("19.99")},
		},
		Payment: dto.PaymentRequest{Method: "CASH", CashBoxRef: "cb-main"},
	}
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_Success() {
	now := time.Now()
	created := &domain.Invoice{
		InvoiceID: "inv-1",
		Number:    "INV-7-20240501-3",
		BranchID:  "B1",
		IssueDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Payment:   domain.PaymentDetails{Method: domain.PaymentCash, CashBoxRef: "cb-main"},
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			CreatedBy: "user-1",
		},
	}
	suite.mockInvoiceService.On("CreateInvoice",
		mock.Anything, mock.AnythingOfType("dto.CreateInvoiceRequest"), "user-1").
		Return(created, "INV-7-20240501-4", nil)

	w := suite.postJSON("/api/v1/invoices", validInvoiceBody(), "user-1")

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.CreateInvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("INV-7-20240501-3", resp.Invoice.Number)
	suite.Equal("INV-7-20240501-4", resp.NextNumber)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_DefaultsToSystemUser() {
	created := &domain.Invoice{InvoiceID: "inv-1", Number: "INV-1-20240501-1"}
	suite.mockInvoiceService.On("CreateInvoice",
		mock.Anything, mock.AnythingOfType("dto.CreateInvoiceRequest"), "system").
		Return(created, "", nil)

	w := suite.postJSON("/api/v1/invoices", validInvoiceBody(), "")

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_StockGateConflict() {
	suite.mockInvoiceService.On("CreateInvoice",
		mock.Anything, mock.AnythingOfType("dto.CreateInvoiceRequest"), "user-1").
		Return(nil, "", &apperrors.InsufficientStockError{
			ItemName:  "bolt",
			Requested: decimal.NewFromInt(3),
			Available: decimal.NewFromInt(1),
		})

	w := suite.postJSON("/api/v1/invoices", validInvoiceBody(), "user-1")

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_PaymentMismatch() {
	suite.mockInvoiceService.On("CreateInvoice",
		mock.Anything, mock.AnythingOfType("dto.CreateInvoiceRequest"), "user-1").
		Return(nil, "", apperrors.ErrPaymentMismatch)

	w := suite.postJSON("/api/v1/invoices", validInvoiceBody(), "user-1")

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_MalformedBody() {
	body := validInvoiceBody()
	body.IssueDate = "not-a-date"

	w := suite.postJSON("/api/v1/invoices", body, "user-1")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "CreateInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoice_NotFound() {
	suite.mockInvoiceService.On("GetInvoiceByID", mock.Anything, "missing").
		Return(nil, apperrors.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/missing", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestNextInvoiceNumber() {
	asOf := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	suite.mockInvoiceService.On("GenerateInvoiceNumber", mock.Anything, "B1", asOf).
		Return("INV-7-20240501-3", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/next-number?branchID=B1&date=2024-05-01", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("INV-7-20240501-3", resp["number"])
}

func (suite *InvoiceHandlerTestSuite) TestNextInvoiceNumber_MissingBranch() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/next-number", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "GenerateInvoiceNumber", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceHandlerTestSuite) TestPreviewTotals_EmptyLinesYieldZeros() {
	suite.mockInvoiceService.On("PreviewTotals", mock.Anything).
		Return(domain.InvoiceTotals{
			Total:         decimal.Zero,
			AfterDiscount: decimal.Zero,
			Tax:           decimal.Zero,
			AfterTax:      decimal.Zero,
		})

	w := suite.postJSON("/api/v1/invoices/preview/totals", dto.TotalsPreviewRequest{}, "user-1")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TotalsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.AfterTax.IsZero())
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestPreviewReconcile_MismatchCarriesFigures() {
	totals := domain.InvoiceTotals{
		Total:         decimal.RequireFromString("100.00"),
		AfterDiscount: decimal.RequireFromString("100.00"),
		Tax:           decimal.Zero,
		AfterTax:      decimal.RequireFromString("100.00"),
	}
	suite.mockInvoiceService.On("PreviewReconcile", mock.Anything, mock.Anything).
		Return(totals, decimal.RequireFromString("30.00"), false, apperrors.ErrPaymentMismatch)

	body := dto.ReconcilePreviewRequest{
		Lines: []dto.InvoiceLineRequest{
			{ItemName: "bolt", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("100.00")},
		},
		Payment: dto.PaymentRequest{
			Method: "MULTIPLE",
			Cash:   &dto.PaymentSplitRequest{AccountRef: "cb-main", Amount: decimal.RequireFromString("70.00")},
		},
	}
	w := suite.postJSON("/api/v1/invoices/preview/reconcile", body, "user-1")

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var resp map[string]json.RawMessage
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp, "totals")
	suite.Contains(resp, "remaining")
}

func TestInvoiceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceHandlerTestSuite))
}
