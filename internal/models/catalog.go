package models

import "github.com/shopspring/decimal"

// Item is the DB model for the items table.
type Item struct {
	ItemID        string
	Code          string
	Name          string
	SalePrice     decimal.Decimal
	TaxPercent    decimal.Decimal
	AllowNegative bool
	Suspended     bool
	AuditFields
}

// Branch is the DB model for the branches table. Both code columns persist;
// older imported rows only fill number.
type Branch struct {
	BranchID string
	Name     string
	Code     string
	Number   string
	AuditFields
}
