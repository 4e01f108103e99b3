package repositories

import (
	"context"

	"github.com/erpcore/sales_settlement_app/internal/core/domain"
)

// BranchReader defines read operations for the branch directory.
type BranchReader interface {
	FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
}

// BranchWriter defines write operations for the branch directory.
type BranchWriter interface {
	SaveBranch(ctx context.Context, branch domain.Branch) error
}

// BranchRepositoryFacade combines all branch repository interfaces.
type BranchRepositoryFacade interface {
	BranchReader
	BranchWriter
}
