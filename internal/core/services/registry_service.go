package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/erpcore/sales_settlement_app/internal/apperrors"
	"github.com/erpcore/sales_settlement_app/internal/core/domain"
	portsrepo "github.com/erpcore/sales_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/erpcore/sales_settlement_app/internal/core/ports/services"
	"github.com/erpcore/sales_settlement_app/internal/dto"
	"github.com/erpcore/sales_settlement_app/internal/utils/coa"
	"github.com/google/uuid"
)

// registryServiceImpl implements the RegistrySvcFacade interface. Banks,
// cash boxes and warehouses all run the same create flow: allocate the next
// sub-account code under the requested parent, persist the sub-account, then
// persist the entity referencing it. The store gives no transaction across
// those steps, so a failed entity write triggers a compensating delete of the
// just-created sub-account.
type registryServiceImpl struct {
	BaseService
	registryRepo portsrepo.RegistryRepositoryFacade
	accountRepo  portsrepo.LedgerAccountRepositoryFacade
}

// NewRegistryService creates the registry service.
func NewRegistryService(registryRepo portsrepo.RegistryRepositoryFacade, accountRepo portsrepo.LedgerAccountRepositoryFacade) portssvc.RegistrySvcFacade {
	return &registryServiceImpl{
		registryRepo: registryRepo,
		accountRepo:  accountRepo,
	}
}

var _ portssvc.RegistrySvcFacade = (*registryServiceImpl)(nil)

// allocateSubAccount resolves the parent, allocates the next child code and
// persists the new sub-account. The parent is flagged as having sub-accounts
// once its first child lands.
func (s *registryServiceImpl) allocateSubAccount(ctx context.Context, parentCode, name, userID string) (*domain.LedgerAccount, error) {
	parent, err := s.accountRepo.FindAccountByCode(ctx, parentCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrParentNotFound, parentCode)
		}
		return nil, fmt.Errorf("%w: resolving parent account %q: %v", apperrors.ErrPersistence, parentCode, err)
	}

	children, err := s.accountRepo.ListChildCodes(ctx, parent.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: listing child codes of %q: %v", apperrors.ErrPersistence, parent.Code, err)
	}

	now := time.Now()
	account := domain.LedgerAccount{
		AccountID:  uuid.NewString(),
		Code:       coa.NextChildCode(parent.Code, children),
		Name:       name,
		ParentCode: parent.Code,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	if !parent.HasSubAccounts {
		if err := s.accountRepo.MarkHasSubAccounts(ctx, parent.Code, userID, now); err != nil {
			// The sub-account exists; the flag is derivable and repairable.
			s.LogWarn(ctx, "Failed to flag parent account as having sub-accounts",
				slog.String("parent_code", parent.Code))
		}
	}

	s.LogInfo(ctx, "Sub-account allocated",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code),
		slog.String("parent_code", parent.Code))
	return &account, nil
}

// compensateSubAccount deletes a sub-account created earlier in a flow whose
// later step failed. When the delete itself fails an orphan remains; that is
// logged loudly rather than hidden.
func (s *registryServiceImpl) compensateSubAccount(ctx context.Context, account *domain.LedgerAccount, cause error) {
	if err := s.accountRepo.DeleteAccount(ctx, account.AccountID); err != nil {
		s.LogError(ctx, err, "Compensating delete of sub-account failed; orphan ledger account remains",
			slog.String("account_id", account.AccountID),
			slog.String("code", account.Code),
			slog.String("original_error", cause.Error()))
	}
}

func (s *registryServiceImpl) CreateBank(ctx context.Context, req dto.CreateBankRequest, userID string) (*domain.Bank, error) {
	account, err := s.allocateSubAccount(ctx, req.ParentAccountCode, req.Name, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	bank := domain.Bank{
		BankID:        uuid.NewString(),
		Name:          req.Name,
		AccountNumber: req.AccountNumber,
		AccountID:     account.AccountID,
		AccountCode:   account.Code,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.registryRepo.SaveBank(ctx, bank); err != nil {
		s.compensateSubAccount(ctx, account, err)
		return nil, err
	}

	s.LogInfo(ctx, "Bank created successfully",
		slog.String("bank_id", bank.BankID),
		slog.String("account_code", bank.AccountCode))
	return &bank, nil
}

func (s *registryServiceImpl) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	return s.registryRepo.ListBanks(ctx)
}

func (s *registryServiceImpl) DeleteBank(ctx context.Context, bankID string) error {
	bank, err := s.registryRepo.FindBankByID(ctx, bankID)
	if err != nil {
		return err
	}
	if err := s.registryRepo.DeleteBank(ctx, bankID); err != nil {
		return err
	}
	return s.deleteLinkedAccount(ctx, bank.AccountID, bank.AccountCode)
}

func (s *registryServiceImpl) CreateCashBox(ctx context.Context, req dto.CreateCashBoxRequest, userID string) (*domain.CashBox, error) {
	account, err := s.allocateSubAccount(ctx, req.ParentAccountCode, req.Name, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cashBox := domain.CashBox{
		CashBoxID:   uuid.NewString(),
		Name:        req.Name,
		BranchID:    req.BranchID,
		AccountID:   account.AccountID,
		AccountCode: account.Code,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.registryRepo.SaveCashBox(ctx, cashBox); err != nil {
		s.compensateSubAccount(ctx, account, err)
		return nil, err
	}

	s.LogInfo(ctx, "Cash box created successfully",
		slog.String("cash_box_id", cashBox.CashBoxID),
		slog.String("account_code", cashBox.AccountCode))
	return &cashBox, nil
}

func (s *registryServiceImpl) ListCashBoxes(ctx context.Context) ([]domain.CashBox, error) {
	return s.registryRepo.ListCashBoxes(ctx)
}

func (s *registryServiceImpl) DeleteCashBox(ctx context.Context, cashBoxID string) error {
	cashBox, err := s.registryRepo.FindCashBoxByID(ctx, cashBoxID)
	if err != nil {
		return err
	}
	if err := s.registryRepo.DeleteCashBox(ctx, cashBoxID); err != nil {
		return err
	}
	return s.deleteLinkedAccount(ctx, cashBox.AccountID, cashBox.AccountCode)
}

func (s *registryServiceImpl) CreateWarehouse(ctx context.Context, req dto.CreateWarehouseRequest, userID string) (*domain.Warehouse, error) {
	account, err := s.allocateSubAccount(ctx, req.ParentAccountCode, req.Name, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	warehouse := domain.Warehouse{
		WarehouseID: uuid.NewString(),
		Name:        req.Name,
		Location:    req.Location,
		AccountID:   account.AccountID,
		AccountCode: account.Code,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.registryRepo.SaveWarehouse(ctx, warehouse); err != nil {
		s.compensateSubAccount(ctx, account, err)
		return nil, err
	}

	s.LogInfo(ctx, "Warehouse created successfully",
		slog.String("warehouse_id", warehouse.WarehouseID),
		slog.String("account_code", warehouse.AccountCode))
	return &warehouse, nil
}

func (s *registryServiceImpl) ListWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	return s.registryRepo.ListWarehouses(ctx)
}

func (s *registryServiceImpl) DeleteWarehouse(ctx context.Context, warehouseID string) error {
	warehouse, err := s.registryRepo.FindWarehouseByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if err := s.registryRepo.DeleteWarehouse(ctx, warehouseID); err != nil {
		return err
	}
	return s.deleteLinkedAccount(ctx, warehouse.AccountID, warehouse.AccountCode)
}

// deleteLinkedAccount removes the ledger sub-account of a deleted registry
// entity. The entity is already gone, so a failure here leaves an orphan
// sub-account; surface the error instead of pretending the delete was clean.
func (s *registryServiceImpl) deleteLinkedAccount(ctx context.Context, accountID, accountCode string) error {
	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete linked sub-account; orphan ledger account remains",
			slog.String("account_id", accountID),
			slog.String("account_code", accountCode))
		return fmt.Errorf("%w: deleting linked sub-account %s: %v", apperrors.ErrPersistence, accountCode, err)
	}
	return nil
}
