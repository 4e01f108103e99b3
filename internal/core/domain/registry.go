package domain

// Bank, CashBox and Warehouse are the registry entities that own a linked
// ledger sub-account. Creation allocates the sub-account first, then persists
// the entity referencing it by id and code; deletion removes both.

type Bank struct {
	BankID        string `json:"bankID"`
	Name          string `json:"name"`
	AccountNumber string `json:"accountNumber"`
	AccountID     string `json:"accountID"`   // linked ledger sub-account id
	AccountCode   string `json:"accountCode"` // linked ledger sub-account code
	AuditFields
}

type CashBox struct {
	CashBoxID   string `json:"cashBoxID"`
	Name        string `json:"name"`
	BranchID    string `json:"branchID"`
	AccountID   string `json:"accountID"`
	AccountCode string `json:"accountCode"`
	AuditFields
}

type Warehouse struct {
	WarehouseID string `json:"warehouseID"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	AccountID   string `json:"accountID"`
	AccountCode string `json:"accountCode"`
	AuditFields
}
