package dto

import (
	"time"

	"github.com/erpcore/sales_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceLineRequest is one line of an invoice as submitted by the UI.
// Derived monetary values are never accepted from the client.
type InvoiceLineRequest struct {
	ItemCode        string          `json:"itemCode"`
	ItemName        string          `json:"itemName" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice       decimal.Decimal `json:"unitPrice" binding:"required"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	TaxPercent      decimal.Decimal `json:"taxPercent"`
	WarehouseID     string          `json:"warehouseID"` // optional per-line override
}

// PaymentSplitRequest is one allocation of a split payment.
type PaymentSplitRequest struct {
	AccountRef string          `json:"accountRef"`
	Amount     decimal.Decimal `json:"amount"`
}

// PaymentRequest describes how the invoice is settled.
type PaymentRequest struct {
	Method     string               `json:"method" binding:"required,oneof=CASH BANK_TRANSFER CARD MULTIPLE"`
	CashBoxRef string               `json:"cashBoxRef"`
	Cash       *PaymentSplitRequest `json:"cash"`
	Bank       *PaymentSplitRequest `json:"bank"`
	Card       *PaymentSplitRequest `json:"card"`
}

// CreateInvoiceRequest defines the data needed to create a sales invoice.
type CreateInvoiceRequest struct {
	BranchID     string               `json:"branchID" binding:"required"`
	CustomerName string               `json:"customerName"`
	IssueDate    string               `json:"issueDate" binding:"required,datetime=2006-01-02"`
	WarehouseID  string               `json:"warehouseID" binding:"required"`
	Lines        []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
	Payment      PaymentRequest       `json:"payment" binding:"required"`
}

// ToPaymentDetails converts the request payment block to the domain shape.
func (r PaymentRequest) ToPaymentDetails() domain.PaymentDetails {
	details := domain.PaymentDetails{
		Method:     domain.PaymentMethod(r.Method),
		CashBoxRef: r.CashBoxRef,
	}
	if r.Cash != nil {
		details.Cash = &domain.PaymentSplit{AccountRef: r.Cash.AccountRef, Amount: r.Cash.Amount}
	}
	if r.Bank != nil {
		details.Bank = &domain.PaymentSplit{AccountRef: r.Bank.AccountRef, Amount: r.Bank.Amount}
	}
	if r.Card != nil {
		details.Card = &domain.PaymentSplit{AccountRef: r.Card.AccountRef, Amount: r.Card.Amount}
	}
	return details
}

// ToDomainLines converts request lines to domain lines, applying the
// invoice-level warehouse where no per-line override is present. Derived
// fields are left zero; the settlement calculator fills them.
func ToDomainLines(lines []InvoiceLineRequest, defaultWarehouseID string) []domain.InvoiceLine {
	out := make([]domain.InvoiceLine, len(lines))
	for i, l := range lines {
		warehouseID := l.WarehouseID
		if warehouseID == "" {
			warehouseID = defaultWarehouseID
		}
		out[i] = domain.InvoiceLine{
			ItemCode:        l.ItemCode,
			ItemName:        l.ItemName,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			DiscountPercent: l.DiscountPercent,
			TaxPercent:      l.TaxPercent,
			WarehouseID:     warehouseID,
		}
	}
	return out
}

// TotalsPreviewRequest carries lines for a pure totals computation. An empty
// line list is valid and yields zero totals; the form previews continuously
// while lines are still being entered.
type TotalsPreviewRequest struct {
	Lines []InvoiceLineRequest `json:"lines" binding:"dive"`
}

// ReconcilePreviewRequest backs the live remaining-balance indicator: totals
// are recomputed from the lines and the payment block is validated against
// them, without touching persistence.
type ReconcilePreviewRequest struct {
	Lines   []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
	Payment PaymentRequest       `json:"payment" binding:"required"`
}

// TotalsResponse mirrors domain.InvoiceTotals.
type TotalsResponse struct {
	Total         decimal.Decimal `json:"total"`
	AfterDiscount decimal.Decimal `json:"afterDiscount"`
	Tax           decimal.Decimal `json:"tax"`
	AfterTax      decimal.Decimal `json:"afterTax"`
}

// ReconcileResponse reports the reconciliation outcome for a preview.
type ReconcileResponse struct {
	Totals    TotalsResponse  `json:"totals"`
	Remaining decimal.Decimal `json:"remaining"`
	Settled   bool            `json:"settled"`
}

// InvoiceLineResponse mirrors domain.InvoiceLine including derived values.
type InvoiceLineResponse struct {
	ItemCode        string          `json:"itemCode"`
	ItemName        string          `json:"itemName"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	TaxPercent      decimal.Decimal `json:"taxPercent"`
	WarehouseID     string          `json:"warehouseID"`
	DiscountValue   decimal.Decimal `json:"discountValue"`
	TaxValue        decimal.Decimal `json:"taxValue"`
	LineTotal       decimal.Decimal `json:"lineTotal"`
}

// InvoiceResponse defines the data returned for a sales invoice.
type InvoiceResponse struct {
	InvoiceID    string                `json:"invoiceID"`
	Number       string                `json:"number"`
	BranchID     string                `json:"branchID"`
	CustomerName string                `json:"customerName"`
	IssueDate    string                `json:"issueDate"`
	Lines        []InvoiceLineResponse `json:"lines"`
	Totals       TotalsResponse        `json:"totals"`
	Payment      PaymentRequest        `json:"payment"`
	CreatedAt    time.Time             `json:"createdAt"`
	CreatedBy    string                `json:"createdBy"`
}

// CreateInvoiceResponse wraps the saved invoice plus the advisory number for
// the next invoice on the same branch and date.
type CreateInvoiceResponse struct {
	Invoice    InvoiceResponse `json:"invoice"`
	NextNumber string          `json:"nextNumber"`
}

// ListInvoicesResponse wraps a paginated invoice listing.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToTotalsResponse converts domain totals to the response shape.
func ToTotalsResponse(t domain.InvoiceTotals) TotalsResponse {
	return TotalsResponse{
		Total:         t.Total,
		AfterDiscount: t.AfterDiscount,
		Tax:           t.Tax,
		AfterTax:      t.AfterTax,
	}
}

// ToInvoiceResponse converts a domain.Invoice to its response DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineResponse, len(inv.Lines))
	for i, l := range inv.Lines {
		lines[i] = InvoiceLineResponse{
			ItemCode:        l.ItemCode,
			ItemName:        l.ItemName,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			DiscountPercent: l.DiscountPercent,
			TaxPercent:      l.TaxPercent,
			WarehouseID:     l.WarehouseID,
			DiscountValue:   l.DiscountValue,
			TaxValue:        l.TaxValue,
			LineTotal:       l.LineTotal,
		}
	}

	payment := PaymentRequest{
		Method:     string(inv.Payment.Method),
		CashBoxRef: inv.Payment.CashBoxRef,
	}
	if inv.Payment.Cash != nil {
		payment.Cash = &PaymentSplitRequest{AccountRef: inv.Payment.Cash.AccountRef, Amount: inv.Payment.Cash.Amount}
	}
	if inv.Payment.Bank != nil {
		payment.Bank = &PaymentSplitRequest{AccountRef: inv.Payment.Bank.AccountRef, Amount: inv.Payment.Bank.Amount}
	}
	if inv.Payment.Card != nil {
		payment.Card = &PaymentSplitRequest{AccountRef: inv.Payment.Card.AccountRef, Amount: inv.Payment.Card.Amount}
	}

	return InvoiceResponse{
		InvoiceID:    inv.InvoiceID,
		Number:       inv.Number,
		BranchID:     inv.BranchID,
		CustomerName: inv.CustomerName,
		IssueDate:    inv.IssueDate.Format("2006-01-02"),
		Lines:        lines,
		Totals:       ToTotalsResponse(inv.Totals),
		Payment:      payment,
		CreatedAt:    inv.CreatedAt,
		CreatedBy:    inv.CreatedBy,
	}
}

// ToListInvoicesResponse converts a page of invoices plus its next token.
func ToListInvoicesResponse(invoices []domain.Invoice, nextToken *string) ListInvoicesResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = ToInvoiceResponse(&invoices[i])
	}
	return ListInvoicesResponse{Invoices: res, NextToken: nextToken}
}
