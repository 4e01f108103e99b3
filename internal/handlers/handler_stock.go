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

// stockHandler handles HTTP requests related to stock balances.
type stockHandler struct {
	stockService portssvc.StockSvcFacade
}

func newStockHandler(ss portssvc.StockSvcFacade) *stockHandler {
	return &stockHandler{
		stockService: ss,
	}
}

// registerStockRoutes registers routes related to stock balance projection.
func registerStockRoutes(rg *gin.RouterGroup, stockService portssvc.StockSvcFacade) {
	h := newStockHandler(stockService)

	stock := rg.Group("/stock")
	{
		stock.GET("/balance", h.getBalance)
		stock.POST("/balances", h.getBalances)
		stock.POST("/availability", h.checkAvailability)
	}
}

// getBalance godoc
// @Summary Get a stock balance
// @Description Projects the net on-hand quantity of an item in a warehouse from the transaction logs
// @Tags stock
// @Produce  json
// @Param   itemName query string true "Item name"
// @Param   warehouseID query string true "Warehouse ID"
// @Success 200 {object} dto.StockBalanceResponse
// @Failure 400 {object} map[string]string "Missing parameters"
// @Failure 500 {object} map[string]string "Failed to project balance"
// @Router /stock/balance [get]
func (h *stockHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	itemName := c.Query("itemName")
	warehouseID := c.Query("warehouseID")
	if itemName == "" || warehouseID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "itemName and warehouseID are required"})
		return
	}

	balance, err := h.stockService.Balance(c.Request.Context(), itemName, warehouseID)
	if err != nil {
		logger.Error("Failed to project stock balance", slog.String("item_name", itemName), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to project stock balance"})
		return
	}

	c.JSON(http.StatusOK, dto.StockBalanceResponse{
		ItemName:    itemName,
		WarehouseID: warehouseID,
		Balance:     balance,
	})
}

// getBalances godoc
// @Summary Get balances for several items
// @Description Projects balances for a set of items in one warehouse, as fired when the active warehouse changes
// @Tags stock
// @Accept  json
// @Produce  json
// @Param   request body dto.BulkStockRequest true "Warehouse and item names"
// @Success 200 {object} dto.BulkStockResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to project balances"
// @Router /stock/balances [post]
func (h *stockHandler) getBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BulkStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for bulk stock balances", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received bulk balance request", slog.String("warehouse_id", req.WarehouseID), slog.Int("item_count", len(req.ItemNames)))

	balances, err := h.stockService.Balances(c.Request.Context(), req.ItemNames, req.WarehouseID)
	if err != nil {
		logger.Error("Failed to project bulk stock balances", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to project stock balances"})
		return
	}

	c.JSON(http.StatusOK, dto.BulkStockResponse{
		WarehouseID: req.WarehouseID,
		Balances:    balances,
	})
}

// checkAvailability godoc
// @Summary Check sale availability
// @Description Applies the suspension and negative-stock gates for a requested quantity
// @Tags stock
// @Accept  json
// @Produce  json
// @Param   request body dto.AvailabilityRequest true "Item, warehouse and quantity"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string "Invalid input or unknown item"
// @Failure 409 {object} map[string]string "Item suspended or insufficient stock"
// @Failure 500 {object} map[string]string "Failed to check availability"
// @Router /stock/availability [post]
func (h *stockHandler) checkAvailability(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for availability check", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	err := h.stockService.CheckAvailability(c.Request.Context(), req.ItemName, req.WarehouseID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrItemNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrItemSuspended), errors.Is(err, apperrors.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "available": false})
		default:
			logger.Error("Failed to check availability", slog.String("item_name", req.ItemName), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check availability"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": true})
}
