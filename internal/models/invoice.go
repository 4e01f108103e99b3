package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the DB model for the invoices table.
type Invoice struct {
	InvoiceID     string
	Number        string
	BranchID      string
	CustomerName  string
	IssueDate     time.Time
	Total         decimal.Decimal
	AfterDiscount decimal.Decimal
	Tax           decimal.Decimal
	AfterTax      decimal.Decimal
	PaymentMethod string
	CashBoxRef    string
	AuditFields
}

// InvoiceLine is the DB model for the invoice_lines table.
type InvoiceLine struct {
	LineID          string
	InvoiceID       string
	Position        int
	ItemCode        string
	ItemName        string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxPercent      decimal.Decimal
	WarehouseID     string
	DiscountValue   decimal.Decimal
	TaxValue        decimal.Decimal
	LineTotal       decimal.Decimal
}

// PaymentSplit is the DB model for the payment_splits table. Kind is one of
// cash, bank, card.
type PaymentSplit struct {
	SplitID    string
	InvoiceID  string
	Kind       string
	AccountRef string
	Amount     decimal.Decimal
}
