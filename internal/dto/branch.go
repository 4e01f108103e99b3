package dto

import "github.com/erpcore/sales_settlement_app/internal/core/domain"

// CreateBranchRequest defines the data needed to create a branch.
type CreateBranchRequest struct {
	Name   string `json:"name" binding:"required"`
	Code   string `json:"code"`
	Number string `json:"number"` // legacy field, kept for imported directories
}

// BranchResponse defines the data returned for a branch.
type BranchResponse struct {
	BranchID    string `json:"branchID"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Number      string `json:"number"`
	DisplayCode string `json:"displayCode"`
}

func ToBranchResponse(b *domain.Branch) BranchResponse {
	return BranchResponse{
		BranchID:    b.BranchID,
		Name:        b.Name,
		Code:        b.Code,
		Number:      b.Number,
		DisplayCode: b.DisplayCode(),
	}
}

func ToListBranchResponse(branches []domain.Branch) []BranchResponse {
	res := make([]BranchResponse, len(branches))
	for i := range branches {
		res[i] = ToBranchResponse(&branches[i])
	}
	return res
}
