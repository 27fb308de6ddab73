package router

import (
	"github.com/gin-gonic/gin"

	"cargoquote/internal/handler"
	"cargoquote/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	corsOrigins []string,
	optionH *handler.QuoteOptionHandler,
	versionH *handler.VersionHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// All API routes are tenant-scoped via the X-Tenant-ID header.
	v1 := r.Group("/api/v1")
	v1.Use(middleware.TenantContext())

	versions := v1.Group("/versions")
	versions.POST("/:id/options", optionH.AddOption)
	versions.GET("/:id/options", versionH.ListOptions)
	versions.GET("/:id/anomalies", versionH.ListAnomalies)

	return r
}
