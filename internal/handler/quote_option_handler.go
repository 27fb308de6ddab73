package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cargoquote/internal/port"
	"cargoquote/internal/quote"
	"cargoquote/internal/service"
)

// QuoteOptionHandler handles rate option transfer endpoints.
type QuoteOptionHandler struct {
	options service.QuoteOptionService
}

// NewQuoteOptionHandler creates a new QuoteOptionHandler.
func NewQuoteOptionHandler(options service.QuoteOptionService) *QuoteOptionHandler {
	return &QuoteOptionHandler{options: options}
}

type addOptionRequest struct {
	Rate    quote.RawRate     `json:"rate" binding:"required"`
	Context port.QuoteContext `json:"context"`
}

// AddOption handles POST /api/v1/versions/:id/options
func (h *QuoteOptionHandler) AddOption(c *gin.Context) {
	tenantID, ok := tenantFromRequest(c)
	if !ok {
		return
	}

	versionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "version id must be a UUID")
		return
	}

	var req addOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must contain a rate object")
		return
	}

	result, err := h.options.AddOptionToVersion(c.Request.Context(), service.AddOptionInput{
		TenantID:  tenantID,
		VersionID: versionID,
		Rate:      req.Rate,
		Context:   req.Context,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}
