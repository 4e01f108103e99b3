package dto

import "github.com/shopspring/decimal"

// StockBalanceResponse reports the net on-hand quantity for one item in one
// warehouse.
type StockBalanceResponse struct {
	ItemName    string          `json:"itemName"`
	WarehouseID string          `json:"warehouseID"`
	Balance     decimal.Decimal `json:"balance"`
}

// BulkStockRequest asks for balances of several items in one warehouse, as
// fired when the active warehouse changes in the invoice form.
type BulkStockRequest struct {
	WarehouseID string   `json:"warehouseID" binding:"required"`
	ItemNames   []string `json:"itemNames" binding:"required,min=1"`
}

// BulkStockResponse wraps the per-item balances.
type BulkStockResponse struct {
	WarehouseID string                     `json:"warehouseID"`
	Balances    map[string]decimal.Decimal `json:"balances"`
}

// AvailabilityRequest asks whether a quantity of an item can be sold from a
// warehouse under the negative-stock and suspension gates.
type AvailabilityRequest struct {
	ItemName    string          `json:"itemName" binding:"required"`
	WarehouseID string          `json:"warehouseID" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
}
