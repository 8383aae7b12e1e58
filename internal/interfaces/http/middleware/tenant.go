package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/salesdesk/backend/internal/interfaces/http/dto"
)

const (
	// TenantHeader carries the caller's tenant on every API request
	TenantHeader = "X-Tenant-ID"

	// TenantIDKey is the gin context key holding the resolved tenant ID
	TenantIDKey = "tenant_id"
)

// TenantResolver extracts the tenant ID from the X-Tenant-ID header and
// stores it in the request context. Requests without a valid tenant are
// rejected before they reach a handler.
func TenantResolver() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(TenantHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse(dto.ErrCodeMissingTenant, "X-Tenant-ID header is required"))
			return
		}

		tenantID, err := uuid.Parse(raw)
		if err != nil || tenantID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse(dto.ErrCodeMissingTenant, "X-Tenant-ID header must be a valid UUID"))
			return
		}

		c.Set(TenantIDKey, tenantID)
		c.Next()
	}
}

// GetTenantID returns the tenant ID resolved by TenantResolver
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(TenantIDKey)
	if !exists {
		return uuid.Nil, false
	}
	tenantID, ok := value.(uuid.UUID)
	return tenantID, ok
}
