package repositories

import (
	"context"

	"github.com/erpcore/sales_settlement_app/internal/core/domain"
)

// StockDocumentReader exposes the three transaction logs the stock projector
// replays. Each call returns a full snapshot of the collection; caching sits
// above this interface, in the stock service.
type StockDocumentReader interface {
	ListPurchases(ctx context.Context) ([]domain.StockDocument, error)
	ListSales(ctx context.Context) ([]domain.StockDocument, error)
	ListSalesReturns(ctx context.Context) ([]domain.StockDocument, error)
}
