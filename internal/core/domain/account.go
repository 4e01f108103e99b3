package domain

// LedgerAccount is a chart-of-accounts node. Codes are hierarchical strings:
// children of "401" are "4011", "4012", ... with no padding.
type LedgerAccount struct {
	AccountID      string `json:"accountID"` // Primary Key (UUID)
	Code           string `json:"code"`
	Name           string `json:"name"`
	ParentCode     string `json:"parentCode"`
	HasSubAccounts bool   `json:"hasSubAccounts"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}
