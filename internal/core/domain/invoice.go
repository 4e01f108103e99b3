package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod identifies how an invoice is settled.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentBank     PaymentMethod = "BANK_TRANSFER"
	PaymentCard     PaymentMethod = "CARD"
	PaymentMultiple PaymentMethod = "MULTIPLE"
)

// InvoiceLine is a single item line on a sales invoice. The derived fields
// (DiscountValue, TaxValue, LineTotal) are always computed from the input
// fields, never accepted from callers.
type InvoiceLine struct {
	ItemCode        string          `json:"itemCode"`
	ItemName        string          `json:"itemName"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	TaxPercent      decimal.Decimal `json:"taxPercent"`
	WarehouseID     string          `json:"warehouseID"` // optional per-line override

	DiscountValue decimal.Decimal `json:"discountValue"`
	TaxValue      decimal.Decimal `json:"taxValue"`
	LineTotal     decimal.Decimal `json:"lineTotal"`
}

// InvoiceTotals holds the invoice-level monetary figures. Each figure is the
// sum of the raw per-line values, rounded once at the aggregate level.
type InvoiceTotals struct {
	Total         decimal.Decimal `json:"total"`
	AfterDiscount decimal.Decimal `json:"afterDiscount"`
	Tax           decimal.Decimal `json:"tax"`
	AfterTax      decimal.Decimal `json:"afterTax"`
}

// PaymentSplit is one allocation of a split payment, tied to the ledger
// account (cash box, bank or card account) it settles against.
type PaymentSplit struct {
	AccountRef string          `json:"accountRef"`
	Amount     decimal.Decimal `json:"amount"`
}

// PaymentDetails describes how an invoice is settled. For single-method
// payments only Method (and CashBoxRef for cash) is set; for MULTIPLE the
// Cash/Bank/Card splits carry the allocations.
type PaymentDetails struct {
	Method     PaymentMethod `json:"method"`
	CashBoxRef string        `json:"cashBoxRef"`
	Cash       *PaymentSplit `json:"cash,omitempty"`
	Bank       *PaymentSplit `json:"bank,omitempty"`
	Card       *PaymentSplit `json:"card,omitempty"`
}

// Invoice is a persisted sales invoice.
type Invoice struct {
	InvoiceID    string         `json:"invoiceID"` // Primary Key (UUID)
	Number       string         `json:"number"`    // INV-{branchCode}-{YYYYMMDD}-{seq}
	BranchID     string         `json:"branchID"`
	CustomerName string         `json:"customerName"`
	IssueDate    time.Time      `json:"issueDate"` // date component only is significant
	Lines        []InvoiceLine  `json:"lines"`
	Totals       InvoiceTotals  `json:"totals"`
	Payment      PaymentDetails `json:"payment"`
	AuditFields
}
