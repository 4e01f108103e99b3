package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockDocumentHeader is the shared DB shape of the purchases and
// sales_returns header tables.
type StockDocumentHeader struct {
	DocumentID  string
	WarehouseID string
	Date        time.Time
	AuditFields
}

// StockDocumentLine is the shared DB shape of the purchase_lines and
// sales_return_lines tables. ReturnedQty is only meaningful for returns and
// is nullable; legacy imported rows may carry the warehouse in the text
// Warehouse column instead of WarehouseID.
type StockDocumentLine struct {
	LineID      string
	DocumentID  string
	ItemName    string
	Quantity    decimal.Decimal
	ReturnedQty *decimal.Decimal
	WarehouseID string
	Warehouse   string
}
