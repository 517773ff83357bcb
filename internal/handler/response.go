package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"docverify/internal/domain"
	"docverify/internal/middleware"
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

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
// Configuration and input errors carry the wrapped detail so callers can see
// which field or strategy is at fault.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrTemplateNotFound):
		return http.StatusNotFound, "TEMPLATE_NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", err.Error()
	case errors.Is(err, domain.ErrDocumentSource):
		return http.StatusUnprocessableEntity, "DOCUMENT_SOURCE_ERROR", err.Error()
	case errors.Is(err, domain.ErrUnknownStrategy):
		return http.StatusUnprocessableEntity, "UNKNOWN_STRATEGY", err.Error()
	case errors.Is(err, domain.ErrUnknownNormalizer):
		return http.StatusUnprocessableEntity, "UNKNOWN_NORMALIZER", err.Error()
	case errors.Is(err, domain.ErrStrategyConfig):
		return http.StatusUnprocessableEntity, "STRATEGY_CONFIG_ERROR", err.Error()
	case errors.Is(err, domain.ErrInvalidTemplate):
		return http.StatusUnprocessableEntity, "INVALID_TEMPLATE", err.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get(middleware.RequestIDKey)
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
