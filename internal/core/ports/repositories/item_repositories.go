package repositories

import (
	"context"

	"github.com/erpcore/sales_settlement_app/internal/core/domain"
)

// ItemReader defines read operations for catalog items.
type ItemReader interface {
	// FindItemByName retrieves an item by its exact name. Stock documents
	// reference items by name, so name is the lookup key for the gates.
	FindItemByName(ctx context.Context, name string) (*domain.Item, error)

	// ListItems retrieves a paginated list of catalog items.
	ListItems(ctx context.Context, limit int, offset int) ([]domain.Item, error)
}

// ItemWriter defines write operations for catalog items.
type ItemWriter interface {
	SaveItem(ctx context.Context, item domain.Item) error
}

// ItemRepositoryFacade combines all item repository interfaces.
type ItemRepositoryFacade interface {
	ItemReader
	ItemWriter
}
