package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/erpcore/sales_settlement_app/internal/apperrors"
	"github.com/erpcore/sales_settlement_app/internal/core/domain"
	portsrepo "github.com/erpcore/sales_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/erpcore/sales_settlement_app/internal/core/ports/services"
	"github.com/erpcore/sales_settlement_app/internal/dto"
	"github.com/google/uuid"
)

// branchServiceImpl implements the BranchSvcFacade interface.
type branchServiceImpl struct {
	BaseService
	branchRepo portsrepo.BranchRepositoryFacade
}

// NewBranchService creates a new branch directory service.
func NewBranchService(repo portsrepo.BranchRepositoryFacade) portssvc.BranchSvcFacade {
	return &branchServiceImpl{branchRepo: repo}
}

var _ portssvc.BranchSvcFacade = (*branchServiceImpl)(nil)

func (s *branchServiceImpl) GetBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	branch, err := s.branchRepo.FindBranchByID(ctx, branchID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find branch by ID", slog.String("branch_id", branchID))
		}
		return nil, err
	}
	return branch, nil
}

func (s *branchServiceImpl) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	return s.branchRepo.ListBranches(ctx)
}

func (s *branchServiceImpl) CreateBranch(ctx context.Context, req dto.CreateBranchRequest, userID string) (*domain.Branch, error) {
	now := time.Now()
	branch := domain.Branch{
		BranchID: uuid.NewString(),
		Name:     req.Name,
		Code:     req.Code,
		Number:   req.Number,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.branchRepo.SaveBranch(ctx, branch); err != nil {
		s.LogError(ctx, err, "Failed to save branch", slog.String("branch_id", branch.BranchID))
		return nil, err
	}

	s.LogInfo(ctx, "Branch created successfully", slog.String("branch_id", branch.BranchID))
	return &branch, nil
}
