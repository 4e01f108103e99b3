package services

import (
	"context"

	"github.com/erpcore/sales_settlement_app/internal/core/domain"
	"github.com/erpcore/sales_settlement_app/internal/dto"
)

// ItemSvcFacade manages the item catalog.
type ItemSvcFacade interface {
	GetItemByName(ctx context.Context, name string) (*domain.Item, error)
	ListItems(ctx context.Context, limit, offset int) ([]domain.Item, error)
	CreateItem(ctx context.Context, req dto.CreateItemRequest, userID string) (*domain.Item, error)
}

// BranchSvcFacade manages the branch directory.
type BranchSvcFacade interface {
	GetBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
	CreateBranch(ctx context.Context, req dto.CreateBranchRequest, userID string) (*domain.Branch, error)
}
