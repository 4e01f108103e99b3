package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/erpcore/sales_settlement_app/internal/apperrors"
	"github.com/erpcore/sales_settlement_app/internal/core/domain"
	portsrepo "github.com/erpcore/sales_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/erpcore/sales_settlement_app/internal/core/ports/services"
	"github.com/erpcore/sales_settlement_app/internal/dto"
	"github.com/google/uuid"
)

// itemServiceImpl implements the ItemSvcFacade interface.
type itemServiceImpl struct {
	BaseService
	itemRepo portsrepo.ItemRepositoryFacade
}

// NewItemService creates a new item catalog service.
func NewItemService(repo portsrepo.ItemRepositoryFacade) portssvc.ItemSvcFacade {
	return &itemServiceImpl{itemRepo: repo}
}

var _ portssvc.ItemSvcFacade = (*itemServiceImpl)(nil)

func (s *itemServiceImpl) GetItemByName(ctx context.Context, name string) (*domain.Item, error) {
	item, err := s.itemRepo.FindItemByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrItemNotFound, name)
		}
		s.LogError(ctx, err, "Failed to find item by name", slog.String("item_name", name))
		return nil, err
	}
	return item, nil
}

func (s *itemServiceImpl) ListItems(ctx context.Context, limit, offset int) ([]domain.Item, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.itemRepo.ListItems(ctx, limit, offset)
}

func (s *itemServiceImpl) CreateItem(ctx context.Context, req dto.CreateItemRequest, userID string) (*domain.Item, error) {
	now := time.Now()
	item := domain.Item{
		ItemID:        uuid.NewString(),
		Code:          req.Code,
		Name:          req.Name,
		SalePrice:     req.SalePrice,
		TaxPercent:    req.TaxPercent,
		AllowNegative: req.AllowNegative,
		Suspended:     req.Suspended,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.itemRepo.SaveItem(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to save item", slog.String("item_code", item.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Item created successfully",
		slog.String("item_id", item.ItemID),
		slog.String("item_code", item.Code))
	return &item, nil
}
