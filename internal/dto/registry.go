package dto

import (
	"time"

	"github.com/erpcore/sales_settlement_app/internal/core/domain"
)

// CreateBankRequest defines the data needed to register a bank with its
// linked ledger sub-account.
type CreateBankRequest struct {
	Name              string `json:"name" binding:"required"`
	AccountNumber     string `json:"accountNumber"`
	ParentAccountCode string `json:"parentAccountCode" binding:"required"`
}

// CreateCashBoxRequest defines the data needed to register a cash box.
type CreateCashBoxRequest struct {
	Name              string `json:"name" binding:"required"`
	BranchID          string `json:"branchID"`
	ParentAccountCode string `json:"parentAccountCode" binding:"required"`
}

// CreateWarehouseRequest defines the data needed to register a warehouse.
type CreateWarehouseRequest struct {
	Name              string `json:"name" binding:"required"`
	Location          string `json:"location"`
	ParentAccountCode string `json:"parentAccountCode" binding:"required"`
}

// BankResponse defines the data returned for a bank.
type BankResponse struct {
	BankID        string    `json:"bankID"`
	Name          string    `json:"name"`
	AccountNumber string    `json:"accountNumber"`
	AccountID     string    `json:"accountID"`
	AccountCode   string    `json:"accountCode"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CashBoxResponse defines the data returned for a cash box.
type CashBoxResponse struct {
	CashBoxID   string    `json:"cashBoxID"`
	Name        string    `json:"name"`
	BranchID    string    `json:"branchID"`
	AccountID   string    `json:"accountID"`
	AccountCode string    `json:"accountCode"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WarehouseResponse defines the data returned for a warehouse.
type WarehouseResponse struct {
	WarehouseID string    `json:"warehouseID"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	AccountID   string    `json:"accountID"`
	AccountCode string    `json:"accountCode"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToBankResponse(b *domain.Bank) BankResponse {
	return BankResponse{
		BankID:        b.BankID,
		Name:          b.Name,
		AccountNumber: b.AccountNumber,
		AccountID:     b.AccountID,
		AccountCode:   b.AccountCode,
		CreatedAt:     b.CreatedAt,
	}
}

func ToCashBoxResponse(c *domain.CashBox) CashBoxResponse {
	return CashBoxResponse{
		CashBoxID:   c.CashBoxID,
		Name:        c.Name,
		BranchID:    c.BranchID,
		AccountID:   c.AccountID,
		AccountCode: c.AccountCode,
		CreatedAt:   c.CreatedAt,
	}
}

func ToWarehouseResponse(w *domain.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		WarehouseID: w.WarehouseID,
		Name:        w.Name,
		Location:    w.Location,
		AccountID:   w.AccountID,
		AccountCode: w.AccountCode,
		CreatedAt:   w.CreatedAt,
	}
}

func ToListBankResponse(banks []domain.Bank) []BankResponse {
	res := make([]BankResponse, len(banks))
	for i := range banks {
		res[i] = ToBankResponse(&banks[i])
	}
	return res
}

func ToListCashBoxResponse(boxes []domain.CashBox) []CashBoxResponse {
	res := make([]CashBoxResponse, len(boxes))
	for i := range boxes {
		res[i] = ToCashBoxResponse(&boxes[i])
	}
	return res
}

func ToListWarehouseResponse(warehouses []domain.Warehouse) []WarehouseResponse {
	res := make([]WarehouseResponse, len(warehouses))
	for i := range warehouses {
		res[i] = ToWarehouseResponse(&warehouses[i])
	}
	return res
}
