package services

import (
	"context"

	"github.com/erpcore/sales_settlement_app/internal/core/domain"
	"github.com/erpcore/sales_settlement_app/internal/dto"
)

// RegistrySvcFacade manages banks, cash boxes and warehouses together with
// their linked ledger sub-accounts. Create allocates the sub-account first
// and compensates by deleting it when the entity write fails; delete removes
// the entity and its sub-account in the same logical operation.
type RegistrySvcFacade interface {
	CreateBank(ctx context.Context, req dto.CreateBankRequest, userID string) (*domain.Bank, error)
	ListBanks(ctx context.Context) ([]domain.Bank, error)
	DeleteBank(ctx context.Context, bankID string) error

	CreateCashBox(ctx context.Context, req dto.CreateCashBoxRequest, userID string) (*domain.CashBox, error)
	ListCashBoxes(ctx context.Context) ([]domain.CashBox, error)
	DeleteCashBox(ctx context.Context, cashBoxID string) error

	CreateWarehouse(ctx context.Context, req dto.CreateWarehouseRequest, userID string) (*domain.Warehouse, error)
	ListWarehouses(ctx context.Context) ([]domain.Warehouse, error)
	DeleteWarehouse(ctx context.Context, warehouseID string) error
}
