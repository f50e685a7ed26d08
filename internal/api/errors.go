package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes returned in the JSON error envelope.
const (
	// Generic
	ErrCodeInvalidRequest     = "ERR_INVALID_REQUEST"
	ErrCodeInternalError      = "ERR_INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"

	// Validation
	ErrCodeInvalidPagination = "ERR_INVALID_PAGINATION"
	ErrCodeIDMismatch        = "ERR_ID_MISMATCH"
	ErrCodeMissingField      = "ERR_MISSING_FIELD"

	// Resources
	ErrCodeUserNotFound = "ERR_USER_NOT_FOUND"
	ErrCodeRoleNotFound = "ERR_ROLE_NOT_FOUND"

	// Conflicts
	ErrCodeEmailExists         = "ERR_EMAIL_EXISTS"
	ErrCodeRoleNameExists      = "ERR_ROLE_NAME_EXISTS"
	ErrCodeRoleAlreadyAssigned = "ERR_ROLE_ALREADY_ASSIGNED"
)

// APIError is the uniform error response body.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse writes the uniform error envelope.
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
	})
}

// ErrorResponseWithDetails writes the error envelope with extra details.
func ErrorResponseWithDetails(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// BadRequest writes a 400 response.
func BadRequest(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusBadRequest, code, message)
}

// NotFound writes a 404 response.
func NotFound(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusNotFound, code, message)
}

// UnprocessableEntity writes a 422 response for uniqueness conflicts.
func UnprocessableEntity(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusUnprocessableEntity, code, message)
}

// InternalError writes a 500 response.
func InternalError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// ServiceUnavailable writes a 503 response.
func ServiceUnavailable(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, message)
}

// MissingField writes a 400 response naming the absent field.
func MissingField(c *gin.Context, field string) {
	ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeMissingField, field+" is required", gin.H{"field": field})
}

// InvalidPayload writes a 400 response for an unbindable request body.
func InvalidPayload(c *gin.Context) {
	ErrorResponse(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request payload")
}
