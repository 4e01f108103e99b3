package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockDocKind identifies which transaction log a stock document belongs to.
type StockDocKind string

const (
	PurchaseDoc    StockDocKind = "PURCHASE"
	SaleDoc        StockDocKind = "SALE"
	SalesReturnDoc StockDocKind = "SALES_RETURN"
)

// StockLine is one item line inside a purchase, sale or sales-return document.
// Legacy documents record the warehouse in different places; see
// EffectiveWarehouse for the resolution order.
type StockLine struct {
	ItemName        string           `json:"itemName"`
	Quantity        decimal.Decimal  `json:"quantity"`
	ReturnedQty     *decimal.Decimal `json:"returnedQty,omitempty"` // sales returns only; nil counts as zero
	WarehouseID     string           `json:"warehouseID"`           // preferred line-level field
	LegacyWarehouse string           `json:"warehouse"`             // older documents used this name
}

// StockDocument is the header of a purchase, sale or sales-return.
type StockDocument struct {
	DocumentID  string       `json:"documentID"`
	Kind        StockDocKind `json:"kind"`
	WarehouseID string       `json:"warehouseID"`
	Date        time.Time    `json:"date"`
	Lines       []StockLine  `json:"lines"`
}

// EffectiveWarehouse resolves the warehouse a line belongs to using the
// ordered fallback the legacy documents require: line WarehouseID, then the
// line's legacy warehouse field, then the document header.
func (l StockLine) EffectiveWarehouse(docWarehouseID string) string {
	if l.WarehouseID != "" {
		return l.WarehouseID
	}
	if l.LegacyWarehouse != "" {
		return l.LegacyWarehouse
	}
	return docWarehouseID
}

// ReturnedQuantity returns the recorded return quantity, treating an absent
// value as zero. Returns with no recorded quantity contribute nothing to the
// balance; that is observed legacy behavior, kept deliberately.
func (l StockLine) ReturnedQuantity() decimal.Decimal {
	if l.ReturnedQty == nil {
		return decimal.Zero
	}
	return *l.ReturnedQty
}
