package dto

import (
	"github.com/erpcore/sales_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateItemRequest defines the data needed to create a catalog item.
type CreateItemRequest struct {
	Code          string          `json:"code" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	TaxPercent    decimal.Decimal `json:"taxPercent"`
	AllowNegative bool            `json:"allowNegative"`
	Suspended     bool            `json:"suspended"`
}

// ItemResponse defines the data returned for a catalog item.
type ItemResponse struct {
	ItemID        string          `json:"itemID"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	TaxPercent    decimal.Decimal `json:"taxPercent"`
	AllowNegative bool            `json:"allowNegative"`
	Suspended     bool            `json:"suspended"`
}

// ListItemsParams defines query parameters for listing items.
type ListItemsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

func ToItemResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ItemID:        item.ItemID,
		Code:          item.Code,
		Name:          item.Name,
		SalePrice:     item.SalePrice,
		TaxPercent:    item.TaxPercent,
		AllowNegative: item.AllowNegative,
		Suspended:     item.Suspended,
	}
}

func ToListItemResponse(items []domain.Item) []ItemResponse {
	res := make([]ItemResponse, len(items))
	for i := range items {
		res[i] = ToItemResponse(&items[i])
	}
	return res
}
