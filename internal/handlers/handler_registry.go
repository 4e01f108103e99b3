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

// registryHandler handles HTTP requests for banks, cash boxes and warehouses.
// Each create allocates a ledger sub-account; each delete removes it again.
type registryHandler struct {
	registryService portssvc.RegistrySvcFacade
}

func newRegistryHandler(rs portssvc.RegistrySvcFacade) *registryHandler {
	return &registryHandler{
		registryService: rs,
	}
}

// registerRegistryRoutes registers routes for the three registry entities.
func registerRegistryRoutes(rg *gin.RouterGroup, registryService portssvc.RegistrySvcFacade) {
	h := newRegistryHandler(registryService)

	banks := rg.Group("/banks")
	{
		banks.POST("", h.createBank)
		banks.GET("", h.listBanks)
		banks.DELETE("/:id", h.deleteBank)
	}

	cashBoxes := rg.Group("/cashboxes")
	{
		cashBoxes.POST("", h.createCashBox)
		cashBoxes.GET("", h.listCashBoxes)
		cashBoxes.DELETE("/:id", h.deleteCashBox)
	}

	warehouses := rg.Group("/warehouses")
	{
		warehouses.POST("", h.createWarehouse)
		warehouses.GET("", h.listWarehouses)
		warehouses.DELETE("/:id", h.deleteWarehouse)
	}
}

// respondRegistryCreateError maps the shared create-flow errors.
func respondRegistryCreateError(c *gin.Context, logger *slog.Logger, entity string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrParentNotFound):
		logger.Warn("Parent account not found", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate registry entity", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to create "+entity, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create " + entity})
	}
}

// createBank godoc
// @Summary Register a bank
// @Description Allocates a ledger sub-account under the given parent and registers the bank against it
// @Tags registry
// @Accept  json
// @Produce  json
// @Param   bank body dto.CreateBankRequest true "Bank details"
// @Success 201 {object} dto.BankResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown parent account"
// @Failure 409 {object} map[string]string "Duplicate"
// @Failure 500 {object} map[string]string "Failed to create bank"
// @Router /banks [post]
func (h *registryHandler) createBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBank", slog.String("error", err.Error()))
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
	logger.Info("Received request to create bank", slog.String("bank_name", req.Name), slog.String("parent_account_code", req.ParentAccountCode))

	bank, err := h.registryService.CreateBank(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondRegistryCreateError(c, logger, "bank", err)
		return
	}

	logger.Info("Bank created successfully", slog.String("bank_id", bank.BankID), slog.String("account_code", bank.AccountCode))
	c.JSON(http.StatusCreated, dto.ToBankResponse(bank))
}

// listBanks godoc
// @Summary List banks
// @Tags registry
// @Produce  json
// @Success 200 {array} dto.BankResponse
// @Failure 500 {object} map[string]string "Failed to list banks"
// @Router /banks [get]
func (h *registryHandler) listBanks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	banks, err := h.registryService.ListBanks(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list banks", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list banks"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBankResponse(banks))
}

// deleteBank godoc
// @Summary Delete a bank
// @Description Removes the bank and its linked ledger sub-account
// @Tags registry
// @Produce  json
// @Param   id path string true "Bank ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Bank not found"
// @Failure 500 {object} map[string]string "Failed to delete bank"
// @Router /banks/{id} [delete]
func (h *registryHandler) deleteBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankID := c.Param("id")

	logger = logger.With(slog.String("bank_id", bankID))
	logger.Info("Received request to delete bank")

	if err := h.registryService.DeleteBank(c.Request.Context(), bankID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Bank not found for deletion")
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank not found"})
		} else {
			logger.Error("Failed to delete bank", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bank"})
		}
		return
	}

	logger.Info("Bank deleted successfully")
	c.Status(http.StatusNoContent)
}

// createCashBox godoc
// @Summary Register a cash box
// @Description Allocates a ledger sub-account under the given parent and registers the cash box against it
// @Tags registry
// @Accept  json
// @Produce  json
// @Param   cashbox body dto.CreateCashBoxRequest true "Cash box details"
// @Success 201 {object} dto.CashBoxResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown parent account"
// @Failure 409 {object} map[string]string "Duplicate"
// @Failure 500 {object} map[string]string "Failed to create cash box"
// @Router /cashboxes [post]
func (h *registryHandler) createCashBox(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCashBoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCashBox", slog.String("error", err.Error()))
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
	logger.Info("Received request to create cash box", slog.String("cash_box_name", req.Name), slog.String("parent_account_code", req.ParentAccountCode))

	cashBox, err := h.registryService.CreateCashBox(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondRegistryCreateError(c, logger, "cash box", err)
		return
	}

	logger.Info("Cash box created successfully", slog.String("cash_box_id", cashBox.CashBoxID), slog.String("account_code", cashBox.AccountCode))
	c.JSON(http.StatusCreated, dto.ToCashBoxResponse(cashBox))
}

// listCashBoxes godoc
// @Summary List cash boxes
// @Tags registry
// @Produce  json
// @Success 200 {array} dto.CashBoxResponse
// @Failure 500 {object} map[string]string "Failed to list cash boxes"
// @Router /cashboxes [get]
func (h *registryHandler) listCashBoxes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	boxes, err := h.registryService.ListCashBoxes(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list cash boxes", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list cash boxes"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCashBoxResponse(boxes))
}

// deleteCashBox godoc
// @Summary Delete a cash box
// @Description Removes the cash box and its linked ledger sub-account
// @Tags registry
// @Produce  json
// @Param   id path string true "Cash box ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Cash box not found"
// @Failure 500 {object} map[string]string "Failed to delete cash box"
// @Router /cashboxes/{id} [delete]
func (h *registryHandler) deleteCashBox(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cashBoxID := c.Param("id")

	logger = logger.With(slog.String("cash_box_id", cashBoxID))
	logger.Info("Received request to delete cash box")

	if err := h.registryService.DeleteCashBox(c.Request.Context(), cashBoxID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Cash box not found for deletion")
			c.JSON(http.StatusNotFound, gin.H{"error": "Cash box not found"})
		} else {
			logger.Error("Failed to delete cash box", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cash box"})
		}
		return
	}

	logger.Info("Cash box deleted successfully")
	c.Status(http.StatusNoContent)
}

// createWarehouse godoc
// @Summary Register a warehouse
// @Description Allocates a ledger sub-account under the given parent and registers the warehouse against it
// @Tags registry
// @Accept  json
// @Produce  json
// @Param   warehouse body dto.CreateWarehouseRequest true "Warehouse details"
// @Success 201 {object} dto.WarehouseResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown parent account"
// @Failure 409 {object} map[string]string "Duplicate"
// @Failure 500 {object} map[string]string "Failed to create warehouse"
// @Router /warehouses [post]
func (h *registryHandler) createWarehouse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateWarehouse", slog.String("error", err.Error()))
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
	logger.Info("Received request to create warehouse", slog.String("warehouse_name", req.Name), slog.String("parent_account_code", req.ParentAccountCode))

	warehouse, err := h.registryService.CreateWarehouse(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondRegistryCreateError(c, logger, "warehouse", err)
		return
	}

	logger.Info("Warehouse created successfully", slog.String("warehouse_id", warehouse.WarehouseID), slog.String("account_code", warehouse.AccountCode))
	c.JSON(http.StatusCreated, dto.ToWarehouseResponse(warehouse))
}

// listWarehouses godoc
// @Summary List warehouses
// @Tags registry
// @Produce  json
// @Success 200 {array} dto.WarehouseResponse
// @Failure 500 {object} map[string]string "Failed to list warehouses"
// @Router /warehouses [get]
func (h *registryHandler) listWarehouses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	warehouses, err := h.registryService.ListWarehouses(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list warehouses", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list warehouses"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListWarehouseResponse(warehouses))
}

// deleteWarehouse godoc
// @Summary Delete a warehouse
// @Description Removes the warehouse and its linked ledger sub-account
// @Tags registry
// @Produce  json
// @Param   id path string true "Warehouse ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Warehouse not found"
// @Failure 500 {object} map[string]string "Failed to delete warehouse"
// @Router /warehouses/{id} [delete]
func (h *registryHandler) deleteWarehouse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	warehouseID := c.Param("id")

	logger = logger.With(slog.String("warehouse_id", warehouseID))
	logger.Info("Received request to delete warehouse")

	if err := h.registryService.DeleteWarehouse(c.Request.Context(), warehouseID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Warehouse not found for deletion")
			c.JSON(http.StatusNotFound, gin.H{"error": "Warehouse not found"})
		} else {
			logger.Error("Failed to delete warehouse", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete warehouse"})
		}
		return
	}

	logger.Info("Warehouse deleted successfully")
	c.Status(http.StatusNoContent)
}
