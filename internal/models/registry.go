package models

// Bank is the DB model for the banks table.
type Bank struct {
	BankID        string
	Name          string
	AccountNumber string
	AccountID     string
	AccountCode   string
	AuditFields
}

// CashBox is the DB model for the cash_boxes table.
type CashBox struct {
	CashBoxID   string
	Name        string
	BranchID    string
	AccountID   string
	AccountCode string
	AuditFields
}

// Warehouse is the DB model for the warehouses table.
type Warehouse struct {
	WarehouseID string
	Name        string
	Location    string
	AccountID   string
	AccountCode string
	AuditFields
}
