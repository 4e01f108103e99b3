package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erpcore/sales_settlement_app/internal/apperrors"
	"github.com/erpcore/sales_settlement_app/internal/core/domain"
	portsrepo "github.com/erpcore/sales_settlement_app/internal/core/ports/repositories"
	"github.com/erpcore/sales_settlement_app/internal/core/services"
	"github.com/erpcore/sales_settlement_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mock RegistryRepository ---
type MockRegistryRepository struct {
	mock.Mock
}

var _ portsrepo.RegistryRepositoryFacade = (*MockRegistryRepository)(nil)

func (m *MockRegistryRepository) SaveBank(ctx context.Context, bank domain.Bank) error {
	args := m.Called(ctx, bank)
	return args.Error(0)
}

func (m *MockRegistryRepository) FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error) {
	args := m.Called(ctx, bankID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bank), args.Error(1)
}

func (m *MockRegistryRepository) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bank), args.Error(1)
}

func (m *MockRegistryRepository) DeleteBank(ctx context.Context, bankID string) error {
	args := m.Called(ctx, bankID)
	return args.Error(0)
}

func (m *MockRegistryRepository) SaveCashBox(ctx context.Context, cashBox domain.CashBox) error {
	args := m.Called(ctx, cashBox)
	return args.Error(0)
}

func (m *MockRegistryRepository) FindCashBoxByID(ctx context.Context, cashBoxID string) (*domain.CashBox, error) {
	args := m.Called(ctx, cashBoxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashBox), args.Error(1)
}

func (m *MockRegistryRepository) ListCashBoxes(ctx context.Context) ([]domain.CashBox, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashBox), args.Error(1)
}

func (m *MockRegistryRepository) DeleteCashBox(ctx context.Context, cashBoxID string) error {
	args := m.Called(ctx, cashBoxID)
	return args.Error(0)
}

func (m *MockRegistryRepository) SaveWarehouse(ctx context.Context, warehouse domain.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockRegistryRepository) FindWarehouseByID(ctx context.Context, warehouseID string) (*domain.Warehouse, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Warehouse), args.Error(1)
}

func (m *MockRegistryRepository) ListWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Warehouse), args.Error(1)
}

func (m *MockRegistryRepository) DeleteWarehouse(ctx context.Context, warehouseID string) error {
	args := m.Called(ctx, warehouseID)
	return args.Error(0)
}

// --- Mock LedgerAccountRepository ---
type MockLedgerAccountRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerAccountRepositoryFacade = (*MockLedgerAccountRepository)(nil)

func (m *MockLedgerAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockLedgerAccountRepository) ListChildCodes(ctx context.Context, parentCode string) ([]string, error) {
	args := m.Called(ctx, parentCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLedgerAccountRepository) SaveAccount(ctx context.Context, account domain.LedgerAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockLedgerAccountRepository) MarkHasSubAccounts(ctx context.Context, code string, userID string, now time.Time) error {
	args := m.Called(ctx, code, userID, now)
	return args.Error(0)
}

func (m *MockLedgerAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func TestCreateBank(t *testing.T) {
	ctx := context.Background()

	t.Run("allocates the next sub-account code under the parent", func(t *testing.T) {
		registryRepo := new(MockRegistryRepository)
		accountRepo := new(MockLedgerAccountRepository)

		accountRepo.On("FindAccountByCode", mock.Anything, "401").
			Return(&domain.LedgerAccount{AccountID: "acc-401", Code: "401", HasSubAccounts: true}, nil)
		accountRepo.On("ListChildCodes", mock.Anything, "401").Return([]string{"4011", "4012"}, nil)

		var savedAccount domain.LedgerAccount
		accountRepo.On("SaveAccount", mock.Anything, mock.AnythingOfType("domain.LedgerAccount")).
			Run(func(args mock.Arguments) { savedAccount = args.Get(1).(domain.LedgerAccount) }).
			Return(nil)

		var savedBank domain.Bank
		registryRepo.On("SaveBank", mock.Anything, mock.AnythingOfType("domain.Bank")).
			Run(func(args mock.Arguments) { savedBank = args.Get(1).(domain.Bank) }).
			Return(nil)

		svc := services.NewRegistryService(registryRepo, accountRepo)
		bank, err := svc.CreateBank(ctx, dto.CreateBankRequest{
			Name:              "First National",
			AccountNumber:     "DE-1234",
			ParentAccountCode: "401",
		}, "user-1")

		assert.NoError(t, err)
		assert.NotNil(t, bank)
		assert.Equal(t, "4013", savedAccount.Code)
		assert.Equal(t, "401", savedAccount.ParentCode)
		assert.Equal(t, "First National", savedAccount.Name)
		assert.Equal(t, "4013", savedBank.AccountCode)
		assert.Equal(t, savedAccount.AccountID, savedBank.AccountID)
		assert.Equal(t, "user-1", savedBank.CreatedBy)

		// Parent already carries the flag, no extra write.
		accountRepo.AssertNotCalled(t, "MarkHasSubAccounts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("first child flags the parent", func(t *testing.T) {
		registryRepo := new(MockRegistryRepository)
		accountRepo := new(MockLedgerAccountRepository)

		accountRepo.On("FindAccountByCode", mock.Anything, "402").
			Return(&domain.LedgerAccount{AccountID: "acc-402", Code: "402", HasSubAccounts: false}, nil)
		accountRepo.On("ListChildCodes", mock.Anything, "402").Return([]string{}, nil)
		accountRepo.On("SaveAccount", mock.Anything, mock.AnythingOfType("domain.LedgerAccount")).Return(nil)
		accountRepo.On("MarkHasSubAccounts", mock.Anything, "402", "user-1", mock.AnythingOfType("time.Time")).Return(nil)
		registryRepo.On("SaveBank", mock.Anything, mock.AnythingOfType("domain.Bank")).Return(nil)

		svc := services.NewRegistryService(registryRepo, accountRepo)
		_, err := svc.CreateBank(ctx, dto.CreateBankRequest{Name: "Savings", ParentAccountCode: "402"}, "user-1")

		assert.NoError(t, err)
		accountRepo.AssertCalled(t, "MarkHasSubAccounts", mock.Anything, "402", "user-1", mock.AnythingOfType("time.Time"))
	})

	t.Run("missing parent account", func(t *testing.T) {
		registryRepo := new(MockRegistryRepository)
		accountRepo := new(MockLedgerAccountRepository)
		accountRepo.On("FindAccountByCode", mock.Anything, "999").Return(nil, apperrors.ErrNotFound)

		svc := services.NewRegistryService(registryRepo, accountRepo)
		_, err := svc.CreateBank(ctx, dto.CreateBankRequest{Name: "Orphan", ParentAccountCode: "999"}, "user-1")

		assert.ErrorIs(t, err, apperrors.ErrParentNotFound)
		accountRepo.AssertNotCalled(t, "SaveAccount", mock.Anything, mock.Anything)
		registryRepo.AssertNotCalled(t, "SaveBank", mock.Anything, mock.Anything)
	})

	t.Run("entity save failure compensates the sub-account", func(t *testing.T) {
		registryRepo := new(MockRegistryRepository)
		accountRepo := new(MockLedgerAccountRepository)

		accountRepo.On("FindAccountByCode", mock.Anything, "401").
			Return(&domain.LedgerAccount{AccountID: "acc-401", Code: "401", HasSubAccounts: true}, nil)
		accountRepo.On("ListChildCodes", mock.Anything, "401").Return([]string{"4011"}, nil)

		var allocatedID string
		accountRepo.On("SaveAccount", mock.Anything, mock.AnythingOfType("domain.LedgerAccount")).
			Run(func(args mock.Arguments) { allocatedID = args.Get(1).(domain.LedgerAccount).AccountID }).
			Return(nil)

		saveErr := errors.New("connection reset")
		registryRepo.On("SaveBank", mock.Anything, mock.AnythingOfType("domain.Bank")).Return(saveErr)
		accountRepo.On("DeleteAccount", mock.Anything, mock.AnythingOfType("string")).Return(nil)

		svc := services.NewRegistryService(registryRepo, accountRepo)
		_, err := svc.CreateBank(ctx, dto.CreateBankRequest{Name: "Doomed", ParentAccountCode: "401"}, "user-1")

		assert.ErrorIs(t, err, saveErr)
		accountRepo.AssertCalled(t, "DeleteAccount", mock.Anything, allocatedID)
	})
}

func TestCreateCashBoxAndWarehouseShareTheFlow(t *testing.T) {
	ctx := context.Background()

	registryRepo := new(MockRegistryRepository)
	accountRepo := new(MockLedgerAccountRepository)

	accountRepo.On("FindAccountByCode", mock.Anything, "101").
		Return(&domain.LedgerAccount{AccountID: "acc-101", Code: "101", HasSubAccounts: true}, nil)
	accountRepo.On("ListChildCodes", mock.Anything, "101").Return([]string{"1011"}, nil)
	accountRepo.On("SaveAccount", mock.Anything, mock.AnythingOfType("domain.LedgerAccount")).Return(nil)
	registryRepo.On("SaveCashBox", mock.Anything, mock.AnythingOfType("domain.CashBox")).Return(nil)
	registryRepo.On("SaveWarehouse", mock.Anything, mock.AnythingOfType("domain.Warehouse")).Return(nil)

	svc := services.NewRegistryService(registryRepo, accountRepo)

	cashBox, err := svc.CreateCashBox(ctx, dto.CreateCashBoxRequest{
		Name:              "Front Desk",
		BranchID:          "B1",
		ParentAccountCode: "101",
	}, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "1012", cashBox.AccountCode)
	assert.Equal(t, "B1", cashBox.BranchID)

	warehouse, err := svc.CreateWarehouse(ctx, dto.CreateWarehouseRequest{
		Name:              "Central",
		Location:          "Dock 4",
		ParentAccountCode: "101",
	}, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "1012", warehouse.AccountCode)
	assert.Equal(t, "Dock 4", warehouse.Location)
}

func TestDeleteWarehouse(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the entity then its linked sub-account", func(t *testing.T) {
		registryRepo := new(MockRegistryRepository)
		accountRepo := new(MockLedgerAccountRepository)

		registryRepo.On("FindWarehouseByID", mock.Anything, "wh-1").
			Return(&domain.Warehouse{WarehouseID: "wh-1", AccountID: "acc-9", AccountCode: "1013"}, nil)
		registryRepo.On("DeleteWarehouse", mock.Anything, "wh-1").Return(nil)
		accountRepo.On("DeleteAccount", mock.Anything, "acc-9").Return(nil)

		svc := services.NewRegistryService(registryRepo, accountRepo)
		err := svc.DeleteWarehouse(ctx, "wh-1")

		assert.NoError(t, err)
		registryRepo.AssertCalled(t, "DeleteWarehouse", mock.Anything, "wh-1")
		accountRepo.AssertCalled(t, "DeleteAccount", mock.Anything, "acc-9")
	})

	t.Run("unknown warehouse leaves the account alone", func(t *testing.T) {
		registryRepo := new(MockRegistryRepository)
		accountRepo := new(MockLedgerAccountRepository)
		registryRepo.On("FindWarehouseByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)

		svc := services.NewRegistryService(registryRepo, accountRepo)
		err := svc.DeleteWarehouse(ctx, "missing")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		registryRepo.AssertNotCalled(t, "DeleteWarehouse", mock.Anything, mock.Anything)
		accountRepo.AssertNotCalled(t, "DeleteAccount", mock.Anything, mock.Anything)
	})

	t.Run("linked account delete failure surfaces as persistence error", func(t *testing.T) {
		registryRepo := new(MockRegistryRepository)
		accountRepo := new(MockLedgerAccountRepository)

		registryRepo.On("FindWarehouseByID", mock.Anything, "wh-1").
			Return(&domain.Warehouse{WarehouseID: "wh-1", AccountID: "acc-9", AccountCode: "1013"}, nil)
		registryRepo.On("DeleteWarehouse", mock.Anything, "wh-1").Return(nil)
		accountRepo.On("DeleteAccount", mock.Anything, "acc-9").Return(errors.New("foreign key violation"))

		svc := services.NewRegistryService(registryRepo, accountRepo)
		err := svc.DeleteWarehouse(ctx, "wh-1")

		assert.ErrorIs(t, err, apperrors.ErrPersistence)
	})
}

func TestDeleteBankRunsTheSameChain(t *testing.T) {
	ctx := context.Background()
	registryRepo := new(MockRegistryRepository)
	accountRepo := new(MockLedgerAccountRepository)

	registryRepo.On("FindBankByID", mock.Anything, "bank-1").
		Return(&domain.Bank{BankID: "bank-1", AccountID: "acc-3", AccountCode: "4012"}, nil)
	registryRepo.On("DeleteBank", mock.Anything, "bank-1").Return(nil)
	accountRepo.On("DeleteAccount", mock.Anything, "acc-3").Return(nil)

	svc := services.NewRegistryService(registryRepo, accountRepo)
	assert.NoError(t, svc.DeleteBank(ctx, "bank-1"))
	accountRepo.AssertCalled(t, "DeleteAccount", mock.Anything, "acc-3")
}
