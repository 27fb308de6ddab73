package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cargoquote/internal/service"
)

// VersionHandler handles quotation version read endpoints.
type VersionHandler struct {
	versions service.VersionService
}

// NewVersionHandler creates a new VersionHandler.
func NewVersionHandler(versions service.VersionService) *VersionHandler {
	return &VersionHandler{versions: versions}
}

// ListOptions handles GET /api/v1/versions/:id/options
func (h *VersionHandler) ListOptions(c *gin.Context) {
	tenantID, ok := tenantFromRequest(c)
	if !ok {
		return
	}

	versionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "version id must be a UUID")
		return
	}

	var preferred []string
	if raw := c.Query("preferred_carriers"); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				preferred = append(preferred, p)
			}
		}
	}

	result, err := h.versions.ListOptions(c.Request.Context(), tenantID, versionID, preferred)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// ListAnomalies handles GET /api/v1/versions/:id/anomalies
func (h *VersionHandler) ListAnomalies(c *gin.Context) {
	tenantID, ok := tenantFromRequest(c)
	if !ok {
		return
	}

	versionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "version id must be a UUID")
		return
	}

	anomalies, err := h.versions.ListAnomalies(c.Request.Context(), tenantID, versionID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, anomalies)
}
