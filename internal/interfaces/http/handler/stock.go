package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appstock "github.com/salesdesk/backend/internal/application/stock"
	"github.com/salesdesk/backend/internal/interfaces/http/dto"
)

// StockHandler exposes the stock record endpoints
type StockHandler struct {
	BaseHandler
	stocks *appstock.StockService
}

// NewStockHandler creates a stock handler
func NewStockHandler(stocks *appstock.StockService) *StockHandler {
	return &StockHandler{stocks: stocks}
}

// CreateEntry handles POST /stock-records. Registering stock for a scope
// that already has a record adds to the existing quantity.
func (h *StockHandler) CreateEntry(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req appstock.StockEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	record, err := h.stocks.CreateEntry(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, record)
}

// assignWarehouseRequest moves a stock record into a warehouse
type assignWarehouseRequest struct {
	WarehouseID uuid.UUID `json:"warehouse_id" binding:"required"`
}

// AssignWarehouse handles POST /stock-records/:id/warehouse
func (h *StockHandler) AssignWarehouse(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	recordID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req assignWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	record, err := h.stocks.AssignWarehouse(c.Request.Context(), tenantID, recordID, req.WarehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// Get handles GET /stock-records/:id
func (h *StockHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	recordID, ok := h.bindID(c)
	if !ok {
		return
	}

	record, err := h.stocks.GetRecord(c.Request.Context(), tenantID, recordID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// List handles GET /stock-records
func (h *StockHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	req, ok := h.bindList(c)
	if !ok {
		return
	}

	page, err := h.stocks.List(c.Request.Context(), tenantID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, dto.PageMeta(page))
}

// Availability handles GET /stock-records/availability. The warehouse_id
// query parameter is optional; without it the check targets stock not
// assigned to any warehouse.
func (h *StockHandler) Availability(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Query("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrCodeValidation, "product_id must be a valid UUID"))
		return
	}

	var warehouseID *uuid.UUID
	if raw := c.Query("warehouse_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest,
				dto.NewErrorResponse(dto.ErrCodeValidation, "warehouse_id must be a valid UUID"))
			return
		}
		warehouseID = &id
	}

	availability, err := h.stocks.GetAvailability(c.Request.Context(), tenantID, warehouseID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, availability)
}

// ProductSummary handles GET /products/:id/stock, aggregating a product's
// stock across every warehouse
func (h *StockHandler) ProductSummary(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	productID, ok := h.bindID(c)
	if !ok {
		return
	}

	summary, err := h.stocks.ProductSummary(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Remove handles DELETE /stock-records/:id
func (h *StockHandler) Remove(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	recordID, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.stocks.RemoveRecord(c.Request.Context(), tenantID, recordID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
