package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erpcore/sales_settlement_app/internal/apperrors"
	portssvc "github.com/erpcore/sales_settlement_app/internal/core/ports/services"
	"github.com/erpcore/sales_settlement_app/internal/dto"
	"github.com/erpcore/sales_settlement_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// catalogHandler handles HTTP requests for the item catalog and branch
// directory.
type catalogHandler struct {
	itemService   portssvc.ItemSvcFacade
	branchService portssvc.BranchSvcFacade
}

func newCatalogHandler(is portssvc.ItemSvcFacade, bs portssvc.BranchSvcFacade) *catalogHandler {
	return &catalogHandler{
		itemService:   is,
		branchService: bs,
	}
}

// registerCatalogRoutes registers item and branch routes.
func registerCatalogRoutes(rg *gin.RouterGroup, itemService portssvc.ItemSvcFacade, branchService portssvc.BranchSvcFacade) {
	h := newCatalogHandler(itemService, branchService)

	items := rg.Group("/items")
	{
		items.POST("", h.createItem)
		items.GET("", h.listItems)
		items.GET("/:name", h.getItem)
	}

	branches := rg.Group("/branches")
	{
		branches.POST("", h.createBranch)
		branches.GET("", h.listBranches)
		branches.GET("/:id", h.getBranch)
	}
}

// createItem godoc
// @Summary Create a catalog item
// @Tags catalog
// @Accept  json
// @Produce  json
// @Param   item body dto.CreateItemRequest true "Item details"
// @Success 201 {object} dto.ItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Item already exists"
// @Failure 500 {object} map[string]string "Failed to create item"
// @Router /items [post]
func (h *catalogHandler) createItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create item", slog.String("item_name", req.Name))

	item, err := h.itemService.CreateItem(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating item", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate item", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create item in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		}
		return
	}

	logger.Info("Item created successfully", slog.String("item_id", item.ItemID))
	c.JSON(http.StatusCreated, dto.ToItemResponse(item))
}

// getItem godoc
// @Summary Get an item by name
// @Tags catalog
// @Produce  json
// @Param   name path string true "Item name"
// @Success 200 {object} dto.ItemResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 500 {object} map[string]string "Failed to retrieve item"
// @Router /items/{name} [get]
func (h *catalogHandler) getItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	item, err := h.itemService.GetItemByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Item not found", slog.String("item_name", name))
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		} else {
			logger.Error("Failed to get item from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve item"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// listItems godoc
// @Summary List catalog items
// @Tags catalog
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.ItemResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list items"
// @Router /items [get]
func (h *catalogHandler) listItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListItemsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListItems", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	items, err := h.itemService.ListItems(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list items from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list items"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListItemResponse(items))
}

// createBranch godoc
// @Summary Create a branch
// @Tags catalog
// @Accept  json
// @Produce  json
// @Param   branch body dto.CreateBranchRequest true "Branch details"
// @Success 201 {object} dto.BranchResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create branch"
// @Router /branches [post]
func (h *catalogHandler) createBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBranch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create branch", slog.String("branch_name", req.Name))

	branch, err := h.branchService.CreateBranch(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating branch", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create branch in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create branch"})
		}
		return
	}

	logger.Info("Branch created successfully", slog.String("branch_id", branch.BranchID))
	c.JSON(http.StatusCreated, dto.ToBranchResponse(branch))
}

// getBranch godoc
// @Summary Get a branch by ID
// @Tags catalog
// @Produce  json
// @Param   id path string true "Branch ID"
// @Success 200 {object} dto.BranchResponse
// @Failure 404 {object} map[string]string "Branch not found"
// @Failure 500 {object} map[string]string "Failed to retrieve branch"
// @Router /branches/{id} [get]
func (h *catalogHandler) getBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("id")

	branch, err := h.branchService.GetBranchByID(c.Request.Context(), branchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Branch not found", slog.String("branch_id", branchID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		} else {
			logger.Error("Failed to get branch from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve branch"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBranchResponse(branch))
}

// listBranches godoc
// @Summary List branches
// @Tags catalog
// @Produce  json
// @Success 200 {array} dto.BranchResponse
// @Failure 500 {object} map[string]string "Failed to list branches"
// @Router /branches [get]
func (h *catalogHandler) listBranches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	branches, err := h.branchService.ListBranches(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list branches from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list branches"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBranchResponse(branches))
}
