package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cargoquote/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func tenantRouter() (*gin.Engine, *uuid.UUID) {
	var captured uuid.UUID
	r := gin.New()
	r.Use(middleware.TenantContext())
	r.GET("/test", func(c *gin.Context) {
		tenantID, err := middleware.GetTenantID(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		captured = tenantID
		c.Status(http.StatusOK)
	})
	return r, &captured
}

func TestTenantContext_MissingHeader(t *testing.T) {
	r, _ := tenantRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TENANT_REQUIRED")
}

func TestTenantContext_MalformedUUID(t *testing.T) {
	r, _ := tenantRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(middleware.TenantHeader, "not-a-uuid")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TENANT")
}

func TestTenantContext_ValidTenant(t *testing.T) {
	r, captured := tenantRouter()
	tenantID := uuid.New()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(middleware.TenantHeader, tenantID.String())
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tenantID, *captured)
}

func TestGetTenantID_NotSet(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := middleware.GetTenantID(c)
	assert.Error(t, err)
}
