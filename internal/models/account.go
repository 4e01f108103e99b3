package models

// LedgerAccount is the DB model for the ledger_accounts table.
type LedgerAccount struct {
	AccountID      string
	Code           string
	Name           string
	ParentCode     string
	HasSubAccounts bool
	IsActive       bool
	AuditFields
}
