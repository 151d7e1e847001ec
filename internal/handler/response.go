package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"haulhub/internal/lifecycle"
	"haulhub/internal/repository"
	"haulhub/internal/service"
)

// APIResponse is the envelope every endpoint returns, matching what the
// dashboard client parses: {"status":"success|error","message":…,"data":…}.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// respondData sends a success envelope with a data payload.
func respondData(c *gin.Context, code int, data any) {
	c.JSON(code, APIResponse{Status: "success", Data: data})
}

// respondMessage sends a success envelope with only a message.
func respondMessage(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{Status: "success", Message: message})
}

// respondError sends an error envelope with the appropriate HTTP status.
func respondError(c *gin.Context, err error) {
	c.JSON(mapErrorToHTTPStatus(err), APIResponse{Status: "error", Message: err.Error()})
}

// respondBadRequest sends a 400 with a fixed message, for malformed bodies.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, APIResponse{Status: "error", Message: message})
}

// mapErrorToHTTPStatus maps service/repository/lifecycle errors to HTTP
// status codes.
func mapErrorToHTTPStatus(err error) int {
	var invalidTransition *lifecycle.InvalidTransitionError
	if errors.As(err, &invalidTransition) {
		return http.StatusConflict
	}

	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Authentication / authorization
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrAccessDenied):
		return http.StatusForbidden

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidHaulID),
		errors.Is(err, service.ErrInvalidOrderID),
		errors.Is(err, service.ErrInvalidTruckID),
		errors.Is(err, service.ErrInvalidAssignment),
		errors.Is(err, service.ErrInvalidHaulType),
		errors.Is(err, service.ErrMissingLegDetails),
		errors.Is(err, service.ErrInvalidMaterial),
		errors.Is(err, service.ErrInvalidTruckType),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidDistance),
		errors.Is(err, service.ErrMissingCustomerInfo),
		errors.Is(err, service.ErrInvalidTruckStatus),
		errors.Is(err, service.ErrMissingTruckDetails):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrHaulLocked),
		errors.Is(err, service.ErrHaulTerminal),
		errors.Is(err, service.ErrInvalidOrderStatus):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
