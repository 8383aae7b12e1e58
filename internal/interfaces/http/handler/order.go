package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/salesdesk/backend/internal/application/order"
	"github.com/salesdesk/backend/internal/interfaces/http/dto"
)

// idempotencyKeyHeader lets clients retry order submissions safely
const idempotencyKeyHeader = "Idempotency-Key"

// OrderHandler exposes the order endpoints
type OrderHandler struct {
	BaseHandler
	orders *apporder.OrderService
}

// NewOrderHandler creates an order handler
func NewOrderHandler(orders *apporder.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Create handles POST /orders. A repeated Idempotency-Key header within the
// deduplication window is rejected as a duplicate request.
func (h *OrderHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req apporder.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.IdempotencyKey = c.GetHeader(idempotencyKeyHeader)

	created, err := h.orders.CreateOrder(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	orderID, ok := h.bindID(c)
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	req, ok := h.bindList(c)
	if !ok {
		return
	}

	page, err := h.orders.ListOrders(c.Request.Context(), tenantID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, dto.PageMeta(page))
}

// Update handles PUT /orders/:id/lines, replacing the order's active lines
func (h *OrderHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	orderID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req apporder.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	updated, err := h.orders.UpdateOrder(c.Request.Context(), tenantID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, updated)
}

// Delete handles DELETE /orders/:id, returning the order's stock
func (h *OrderHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	orderID, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.orders.DeleteOrder(c.Request.Context(), tenantID, orderID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
