package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/retailops/backoffice/internal/interfaces/http/dto"
)

// TenantIDKey is the gin context key holding the resolved tenant ID
const TenantIDKey = "tenant_id"

// TenantHeader is the header carrying the tenant identifier
const TenantHeader = "X-Tenant-ID"

// Tenant resolves the tenant from the X-Tenant-ID header and stores it in
// the gin context. Requests without a valid tenant fall back to
// defaultTenant; pass uuid.Nil to make the header mandatory.
func Tenant(defaultTenant uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(TenantHeader)
		if header == "" {
			if defaultTenant == uuid.Nil {
				c.AbortWithStatusJSON(http.StatusBadRequest,
					dto.NewErrorResponse(dto.ErrCodeBadRequest, "Missing X-Tenant-ID header", c.GetString("request_id")))
				return
			}
			c.Set(TenantIDKey, defaultTenant)
			c.Next()
			return
		}

		tenantID, err := uuid.Parse(header)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse(dto.ErrCodeBadRequest, "Invalid X-Tenant-ID header", c.GetString("request_id")))
			return
		}

		c.Set(TenantIDKey, tenantID)
		c.Next()
	}
}

// GetTenantID returns the tenant resolved by the Tenant middleware
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(TenantIDKey)
	if !exists {
		return uuid.Nil, false
	}
	tenantID, ok := value.(uuid.UUID)
	return tenantID, ok
}
