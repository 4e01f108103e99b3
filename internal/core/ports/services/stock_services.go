package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// StockSvcFacade projects item stock balances from the purchase, sale and
// sales-return logs and enforces the availability gates.
type StockSvcFacade interface {
	// Balance computes the net on-hand quantity of an item in a warehouse.
	Balance(ctx context.Context, itemName, warehouseID string) (decimal.Decimal, error)

	// Balances computes balances for several items in one warehouse,
	// fanning the per-item projections out concurrently.
	Balances(ctx context.Context, itemNames []string, warehouseID string) (map[string]decimal.Decimal, error)

	// CheckAvailability enforces the suspension gate and, for items that do
	// not allow negative stock, the balance gate for the requested quantity.
	CheckAvailability(ctx context.Context, itemName, warehouseID string, requested decimal.Decimal) error

	// Invalidate drops the memoized transaction-log snapshot. Called after
	// any purchase, sale or return write lands.
	Invalidate()
}
