package domain

import "github.com/shopspring/decimal"

// Item is a sellable catalog entry.
type Item struct {
	ItemID        string          `json:"itemID"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	TaxPercent    decimal.Decimal `json:"taxPercent"`
	AllowNegative bool            `json:"allowNegative"` // sale may drive computed stock below zero
	Suspended     bool            `json:"suspended"`     // temporarily unsellable regardless of stock
	AuditFields
}
