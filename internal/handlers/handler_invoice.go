package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/erpcore/sales_settlement_app/internal/apperrors"
	portssvc "github.com/erpcore/sales_settlement_app/internal/core/ports/services"
	"github.com/erpcore/sales_settlement_app/internal/dto"
	"github.com/erpcore/sales_settlement_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests related to sales invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{
		invoiceService: is,
	}
}

// RegisterInvoiceRoutes registers routes related to sales invoices.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/next-number", h.nextInvoiceNumber)
		invoices.GET("/:id", h.getInvoice)
		invoices.POST("/preview/totals", h.previewTotals)
		invoices.POST("/preview/reconcile", h.previewReconcile)
	}
}

// createInvoice godoc
// @Summary Create a sales invoice
// @Description Validates the lines and payment, checks stock gates, derives the invoice number and persists the invoice
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.CreateInvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Item suspended or insufficient stock"
// @Failure 422 {object} map[string]string "Payment does not settle the invoice total"
// @Failure 500 {object} map[string]string "Failed to create invoice"
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID), slog.String("branch_id", req.BranchID))
	logger.Info("Received request to create invoice", slog.Int("line_count", len(req.Lines)), slog.String("payment_method", req.Payment.Method))

	invoice, nextNumber, err := h.invoiceService.CreateInvoice(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation),
			errors.Is(err, apperrors.ErrMissingCashBox),
			errors.Is(err, apperrors.ErrNoPayment),
			errors.Is(err, apperrors.ErrItemNotFound):
			logger.Warn("Validation error creating invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrPaymentMismatch):
			logger.Warn("Payment mismatch creating invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrItemSuspended),
			errors.Is(err, apperrors.ErrInsufficientStock):
			logger.Warn("Stock gate rejected invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Duplicate invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create invoice in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		}
		return
	}

	logger.Info("Invoice created successfully", slog.String("invoice_id", invoice.InvoiceID), slog.String("invoice_number", invoice.Number))
	c.JSON(http.StatusCreated, dto.CreateInvoiceResponse{
		Invoice:    dto.ToInvoiceResponse(invoice),
		NextNumber: nextNumber,
	})
}

// getInvoice godoc
// @Summary Get an invoice by ID
// @Description Retrieves a sales invoice with its lines and payment details
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to retrieve invoice"
// @Router /invoices/{id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")

	logger = logger.With(slog.String("invoice_id", invoiceID))
	logger.Info("Received request to get invoice")

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			logger.Error("Failed to get invoice from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		}
		return
	}

	logger.Info("Invoice retrieved successfully")
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Description Retrieves invoices newest first using keyset pagination
// @Tags invoices
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Failure 500 {object} map[string]string "Failed to list invoices"
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params struct {
		Limit     int     `form:"limit,default=20"`
		NextToken *string `form:"nextToken"`
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger.Info("Received request to list invoices", slog.Int("limit", params.Limit))

	invoices, nextToken, err := h.invoiceService.ListInvoices(c.Request.Context(), params.Limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list invoices from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invoices"})
		return
	}

	logger.Info("Invoices listed successfully", slog.Int("count", len(invoices)))
	c.JSON(http.StatusOK, dto.ToListInvoicesResponse(invoices, nextToken))
}

// nextInvoiceNumber godoc
// @Summary Preview the next invoice number
// @Description Derives the advisory number the next invoice on this branch and date would receive
// @Tags invoices
// @Produce  json
// @Param   branchID query string true "Branch ID"
// @Param   date query string false "Issue date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to derive number"
// @Router /invoices/next-number [get]
func (h *invoiceHandler) nextInvoiceNumber(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	branchID := c.Query("branchID")
	if branchID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branchID is required"})
		return
	}

	asOf := time.Now().UTC()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			logger.Warn("Invalid date for next invoice number", slog.String("date", dateStr))
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	logger = logger.With(slog.String("branch_id", branchID))
	number, err := h.invoiceService.GenerateInvoiceNumber(c.Request.Context(), branchID, asOf)
	if err != nil {
		logger.Error("Failed to derive next invoice number", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to derive next invoice number"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"number": number})
}

// previewTotals godoc
// @Summary Preview invoice totals
// @Description Computes per-line derived values and document totals without persisting anything
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   lines body dto.TotalsPreviewRequest true "Invoice lines"
// @Success 200 {object} dto.TotalsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /invoices/preview/totals [post]
func (h *invoiceHandler) previewTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TotalsPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PreviewTotals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	totals := h.invoiceService.PreviewTotals(dto.ToDomainLines(req.Lines, ""))
	c.JSON(http.StatusOK, dto.ToTotalsResponse(totals))
}

// previewReconcile godoc
// @Summary Preview payment reconciliation
// @Description Recomputes totals from the lines and validates the payment block against them
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   preview body dto.ReconcilePreviewRequest true "Lines and payment"
// @Success 200 {object} dto.ReconcileResponse
// @Failure 400 {object} map[string]string "Invalid input or payment validation error"
// @Failure 422 {object} map[string]string "Payment does not settle the invoice total"
// @Router /invoices/preview/reconcile [post]
func (h *invoiceHandler) previewReconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReconcilePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PreviewReconcile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	totals, remaining, settled, err := h.invoiceService.PreviewReconcile(dto.ToDomainLines(req.Lines, ""), req.Payment.ToPaymentDetails())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrPaymentMismatch):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":     err.Error(),
				"totals":    dto.ToTotalsResponse(totals),
				"remaining": remaining,
			})
		case errors.Is(err, apperrors.ErrMissingCashBox),
			errors.Is(err, apperrors.ErrNoPayment),
			errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to preview reconciliation", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to preview reconciliation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ReconcileResponse{
		Totals:    dto.ToTotalsResponse(totals),
		Remaining: remaining,
		Settled:   settled,
	})
}
