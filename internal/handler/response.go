package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cargoquote/internal/domain"
	"cargoquote/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrTenantRequired):
		return http.StatusUnauthorized, "TENANT_REQUIRED", "tenant context required"
	case errors.Is(err, domain.ErrInvalidRatePayload):
		return http.StatusBadRequest, "INVALID_RATE", "rate payload is empty or malformed"
	case errors.Is(err, domain.ErrCurrencyUnresolved):
		return http.StatusUnprocessableEntity, "CURRENCY_UNRESOLVED", "currency code could not be resolved against master data"
	case errors.Is(err, domain.ErrCarrierModeIncompatible):
		return http.StatusUnprocessableEntity, "CARRIER_MODE_INCOMPATIBLE", "carrier does not service the declared transport mode"
	case errors.Is(err, domain.ErrNoLegsInserted):
		return http.StatusUnprocessableEntity, "NO_LEGS", "no transport legs could be derived from the rate"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}

// tenantFromRequest extracts the tenant ID set by the tenant middleware.
// Returns false if it is missing (error response already written).
func tenantFromRequest(c *gin.Context) (uuid.UUID, bool) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "TENANT_REQUIRED", "missing tenant context")
		return uuid.Nil, false
	}
	return tenantID, true
}
