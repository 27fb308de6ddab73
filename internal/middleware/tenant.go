package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cargoquote/internal/domain"
)

// ContextKeyTenantID is the gin context key holding the caller's tenant.
const ContextKeyTenantID = "tenant_id"

// TenantHeader is the request header carrying the tenant identifier.
const TenantHeader = "X-Tenant-ID"

// TenantContext extracts the tenant from the X-Tenant-ID header. Requests
// without a valid tenant UUID are rejected before reaching any handler.
func TenantContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(TenantHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "TENANT_REQUIRED", "message": "X-Tenant-ID header required"},
			})
			return
		}
		tenantID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   gin.H{"code": "INVALID_TENANT", "message": "X-Tenant-ID is not a valid UUID"},
			})
			return
		}
		c.Set(ContextKeyTenantID, tenantID)
		c.Next()
	}
}

// GetTenantID returns the tenant set by TenantContext.
func GetTenantID(c *gin.Context) (uuid.UUID, error) {
	val, exists := c.Get(ContextKeyTenantID)
	if !exists {
		return uuid.Nil, domain.ErrTenantRequired
	}
	tenantID, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil, domain.ErrTenantRequired
	}
	return tenantID, nil
}
