package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/erpcore/sales_settlement_app/internal/apperrors"
	"github.com/erpcore/sales_settlement_app/internal/core/domain"
	portsrepo "github.com/erpcore/sales_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/erpcore/sales_settlement_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// ledgerSnapshot is one memoized read of the three transaction logs. It is
// immutable once built, so per-item projections can share it concurrently.
type ledgerSnapshot struct {
	purchases []domain.StockDocument
	sales     []domain.StockDocument
	returns   []domain.StockDocument
}

// stockServiceImpl implements the StockSvcFacade interface.
type stockServiceImpl struct {
	BaseService
	stockRepo portsrepo.StockDocumentReader
	itemRepo  portsrepo.ItemReader

	mu       sync.Mutex
	snapshot *ledgerSnapshot
}

// NewStockService creates the stock projection service. The transaction logs
// are read through a session-scoped snapshot cache; callers must Invalidate
// after any purchase, sale or return write.
func NewStockService(stockRepo portsrepo.StockDocumentReader, itemRepo portsrepo.ItemReader) portssvc.StockSvcFacade {
	return &stockServiceImpl{
		stockRepo: stockRepo,
		itemRepo:  itemRepo,
	}
}

var _ portssvc.StockSvcFacade = (*stockServiceImpl)(nil)

// loadSnapshot returns the memoized transaction logs, fetching all three
// collections when the cache is cold.
func (s *stockServiceImpl) loadSnapshot(ctx context.Context) (*ledgerSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot != nil {
		return s.snapshot, nil
	}

	purchases, err := s.stockRepo.ListPurchases(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing purchases: %v", apperrors.ErrPersistence, err)
	}
	sales, err := s.stockRepo.ListSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing sales: %v", apperrors.ErrPersistence, err)
	}
	returns, err := s.stockRepo.ListSalesReturns(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing sales returns: %v", apperrors.ErrPersistence, err)
	}

	s.snapshot = &ledgerSnapshot{purchases: purchases, sales: sales, returns: returns}
	s.LogDebug(ctx, "Stock snapshot loaded",
		slog.Int("purchases", len(purchases)),
		slog.Int("sales", len(sales)),
		slog.Int("returns", len(returns)))
	return s.snapshot, nil
}

// Invalidate drops the memoized snapshot so the next read sees fresh logs.
func (s *stockServiceImpl) Invalidate() {
	s.mu.Lock()
	s.snapshot = nil
	s.mu.Unlock()
}

func (s *stockServiceImpl) Balance(ctx context.Context, itemName, warehouseID string) (decimal.Decimal, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return projectBalance(itemName, warehouseID, snap.purchases, snap.sales, snap.returns), nil
}

// Balances projects several items against one snapshot, one goroutine per
// item. The projections are independent and side-effect-free, so ordering is
// irrelevant.
func (s *stockServiceImpl) Balances(ctx context.Context, itemNames []string, warehouseID string) (map[string]decimal.Decimal, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]decimal.Decimal, len(itemNames))
	var wg sync.WaitGroup
	for i, name := range itemNames {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			results[i] = projectBalance(name, warehouseID, snap.purchases, snap.sales, snap.returns)
		}(i, name)
	}
	wg.Wait()

	balances := make(map[string]decimal.Decimal, len(itemNames))
	for i, name := range itemNames {
		balances[name] = results[i]
	}
	return balances, nil
}

// CheckAvailability enforces the line-acceptance gates: a suspended item is
// rejected before stock is even consulted, and an item that does not allow
// negative balances may not be sold beyond its projected balance.
func (s *stockServiceImpl) CheckAvailability(ctx context.Context, itemName, warehouseID string, requested decimal.Decimal) error {
	item, err := s.itemRepo.FindItemByName(ctx, itemName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %q", apperrors.ErrItemNotFound, itemName)
		}
		s.LogError(ctx, err, "Failed to look up item for availability check",
			slog.String("item_name", itemName))
		return fmt.Errorf("%w: looking up item %q: %v", apperrors.ErrPersistence, itemName, err)
	}

	if item.Suspended {
		return fmt.Errorf("%w: %q", apperrors.ErrItemSuspended, itemName)
	}

	if item.AllowNegative {
		return nil
	}

	balance, err := s.Balance(ctx, itemName, warehouseID)
	if err != nil {
		return err
	}
	if requested.GreaterThan(balance) {
		return &apperrors.InsufficientStockError{
			ItemName:    itemName,
			WarehouseID: warehouseID,
			Requested:   requested,
			Available:   balance,
		}
	}
	return nil
}
