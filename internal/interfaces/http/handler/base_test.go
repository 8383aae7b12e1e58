package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdesk/backend/internal/domain/shared"
	"github.com/salesdesk/backend/internal/domain/stock"
	"github.com/salesdesk/backend/internal/interfaces/http/dto"
	"github.com/salesdesk/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.Success(c, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
}

func TestBaseHandlerCreated(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.Created(c, map[string]string{"id": "123"})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
}

func TestBaseHandlerNoContent(t *testing.T) {
	h := &BaseHandler{}

	router := gin.New()
	router.DELETE("/test", func(c *gin.Context) {
		h.NoContent(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestBaseHandlerBadRequest(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.BadRequest(c, fmt.Errorf("missing field"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
}

func TestHandleErrorDomainErrors(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "not found",
			err:          shared.ErrNotFound,
			expectedCode: http.StatusNotFound,
			expectedErr:  "NOT_FOUND",
		},
		{
			name:         "duplicate order number",
			err:          shared.ErrDuplicateOrderNumber,
			expectedCode: http.StatusConflict,
			expectedErr:  "DUPLICATE_ORDER_NUMBER",
		},
		{
			name:         "duplicate request",
			err:          shared.ErrDuplicateRequest,
			expectedCode: http.StatusConflict,
			expectedErr:  "DUPLICATE_REQUEST",
		},
		{
			name:         "invalid state",
			err:          shared.ErrInvalidState,
			expectedCode: http.StatusUnprocessableEntity,
			expectedErr:  "INVALID_STATE",
		},
		{
			name:         "optimistic lock conflict",
			err:          shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "record was modified concurrently"),
			expectedCode: http.StatusConflict,
			expectedErr:  "OPTIMISTIC_LOCK_FAILED",
		},
		{
			name:         "validation failure",
			err:          shared.NewDomainError("INVALID_QUANTITY", "quantity must be positive"),
			expectedCode: http.StatusBadRequest,
			expectedErr:  "INVALID_QUANTITY",
		},
		{
			name:         "wrapped domain error",
			err:          fmt.Errorf("loading order: %w", shared.ErrNotFound),
			expectedCode: http.StatusNotFound,
			expectedErr:  "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, w := newTestContext(t)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedCode, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.expectedErr, resp.Error.Code)
		})
	}
}

func TestHandleErrorInsufficientStock(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	productID := uuid.New()
	err := stock.NewInsufficientStockError(productID,
		decimal.NewFromInt(5), decimal.NewFromInt(2))

	h.HandleError(c, err)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "INSUFFICIENT_STOCK", resp.Error.Code)

	details, ok := resp.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, productID.String(), details["product_id"])
	assert.Equal(t, "5", details["required"])
	assert.Equal(t, "2", details["available"])
}

func TestHandleErrorInsufficientStockWrappedInPartialAdjustment(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	cause := stock.NewInsufficientStockError(uuid.New(),
		decimal.NewFromInt(10), decimal.NewFromInt(4))
	err := stock.NewPartialAdjustmentError(2, 3, cause)

	h.HandleError(c, err)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "INSUFFICIENT_STOCK", resp.Error.Code)
}

func TestHandleErrorStockRecordMissing(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	productID := uuid.New()
	h.HandleError(c, stock.NewStockRecordMissingError(productID, nil))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "STOCK_RECORD_MISSING", resp.Error.Code)

	details, ok := resp.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, productID.String(), details["product_id"])
	assert.Nil(t, details["warehouse_id"])
}

func TestHandleErrorUnknownError(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.HandleError(c, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
}

func TestHandleErrorIncludesRequestID(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)
	c.Set(middleware.RequestIDKey, "req-123")

	h.HandleError(c, shared.ErrNotFound)

	resp := decodeResponse(t, w)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}
