package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/salesdesk/backend/internal/domain/shared"
	"github.com/salesdesk/backend/internal/domain/stock"
	"github.com/salesdesk/backend/internal/infrastructure/logger"
	"github.com/salesdesk/backend/internal/interfaces/http/dto"
	"github.com/salesdesk/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides the response and error helpers shared by all handlers
type BaseHandler struct{}

// Success sends a 200 response with data
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with data and pagination metadata
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, meta dto.Meta) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, meta))
}

// Created sends a 201 response with data
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response for a malformed or invalid request
func (h *BaseHandler) BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeValidation, err.Error()))
}

// HandleError maps an application error to an HTTP response. Stock
// reconciliation failures carry structured details so clients can react
// to the specific product and quantities involved.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var insufficient *stock.InsufficientStockError
	if errors.As(err, &insufficient) {
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponseWithDetails(
			"INSUFFICIENT_STOCK", insufficient.Error(), gin.H{
				"product_id": insufficient.ProductID,
				"required":   insufficient.Required,
				"available":  insufficient.Available,
			}))
		return
	}

	var missing *stock.StockRecordMissingError
	if errors.As(err, &missing) {
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponseWithDetails(
			"STOCK_RECORD_MISSING", missing.Error(), gin.H{
				"product_id":   missing.ProductID,
				"warehouse_id": missing.WarehouseID,
			}))
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		resp := dto.NewErrorResponse(domainErr.Code, domainErr.Message)
		resp.Error.RequestID = middleware.GetRequestID(c)
		c.JSON(status, resp)
		return
	}

	logger.GetGinLogger(c).Error("unhandled error",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
	)
	resp := dto.NewErrorResponse(dto.ErrCodeInternal, "An internal error occurred")
	resp.Error.RequestID = middleware.GetRequestID(c)
	c.JSON(http.StatusInternalServerError, resp)
}

// tenantID returns the tenant resolved by the tenant middleware. The
// middleware rejects requests without one, so a miss here is a wiring bug.
func (h *BaseHandler) tenantID(c *gin.Context) (uuid.UUID, bool) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrCodeMissingTenant, "Tenant was not resolved for this request"))
		return uuid.Nil, false
	}
	return tenantID, true
}

// bindID parses the :id path parameter
func (h *BaseHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrCodeValidation, "id must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// bindList binds the common list query parameters
func (h *BaseHandler) bindList(c *gin.Context) (dto.ListRequest, bool) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err)
		return dto.ListRequest{}, false
	}
	return req, true
}
