package repositories

import (
	"context"

	"github.com/erpcore/sales_settlement_app/internal/core/domain"
)

// BankRepository persists bank registry entities.
type BankRepository interface {
	SaveBank(ctx context.Context, bank domain.Bank) error
	FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error)
	ListBanks(ctx context.Context) ([]domain.Bank, error)
	DeleteBank(ctx context.Context, bankID string) error
}

// CashBoxRepository persists cash box registry entities.
type CashBoxRepository interface {
	SaveCashBox(ctx context.Context, cashBox domain.CashBox) error
	FindCashBoxByID(ctx context.Context, cashBoxID string) (*domain.CashBox, error)
	ListCashBoxes(ctx context.Context) ([]domain.CashBox, error)
	DeleteCashBox(ctx context.Context, cashBoxID string) error
}

// WarehouseRepository persists warehouse registry entities.
type WarehouseRepository interface {
	SaveWarehouse(ctx context.Context, warehouse domain.Warehouse) error
	FindWarehouseByID(ctx context.Context, warehouseID string) (*domain.Warehouse, error)
	ListWarehouses(ctx context.Context) ([]domain.Warehouse, error)
	DeleteWarehouse(ctx context.Context, warehouseID string) error
}

// RegistryRepositoryFacade combines the three registry entity repositories.
// They share one implementation because the create/delete flows are
// identical: allocate sub-account, persist entity, compensate on failure.
type RegistryRepositoryFacade interface {
	BankRepository
	CashBoxRepository
	WarehouseRepository
}
