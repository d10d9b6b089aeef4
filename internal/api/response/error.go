package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/api/middleware"
)

// ErrorResponse represents an error API response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details
type ErrorDetail struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Details   string       `json:"details,omitempty"`
	RequestID string       `json:"request_id"`
	Timestamp time.Time    `json:"timestamp"`
	Fields    []FieldError `json:"fields,omitempty"`
}

// FieldError represents a field-level validation error
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrCodeInvalidParameter = "INVALID_PARAMETER"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeDatabaseError    = "DATABASE_ERROR"
	ErrCodeRateLimited      = "RATE_LIMITED"
)

// levelFor logs client errors at warn and server errors at error
func levelFor(statusCode int) *zerolog.Event {
	if statusCode >= http.StatusInternalServerError {
		return log.Error()
	}
	return log.Warn()
}

// Error sends an error response
func Error(c *gin.Context, statusCode int, code, message string) {
	ErrorWithDetails(c, statusCode, code, message, "")
}

// ErrorWithDetails sends an error response with additional details
func ErrorWithDetails(c *gin.Context, statusCode int, code, message, details string) {
	response := ErrorResponse{
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			Details:   details,
			RequestID: middleware.GetRequestID(c),
			Timestamp: time.Now(),
		},
	}

	levelFor(statusCode).
		Str("request_id", response.Error.RequestID).
		Str("error_code", code).
		Str("message", message).
		Str("details", details).
		Int("status", statusCode).
		Msg("API error response")

	c.AbortWithStatusJSON(statusCode, response)
}

// ValidationError sends a validation error response with field errors
func ValidationError(c *gin.Context, fields []FieldError) {
	response := ErrorResponse{
		Error: ErrorDetail{
			Code:      ErrCodeValidation,
			Message:   "Request validation failed",
			RequestID: middleware.GetRequestID(c),
			Timestamp: time.Now(),
			Fields:    fields,
		},
	}

	log.Warn().
		Str("request_id", response.Error.RequestID).
		Str("error_code", ErrCodeValidation).
		Int("field_count", len(fields)).
		Msg("Validation error")

	c.AbortWithStatusJSON(http.StatusBadRequest, response)
}

// BadRequest sends a 400 Bad Request error
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, ErrCodeInvalidParameter, message)
}

// InvalidParameter sends a 400 Bad Request error naming the offending parameter
func InvalidParameter(c *gin.Context, field, message string) {
	ValidationError(c, []FieldError{{Field: field, Message: message}})
}

// NotFound sends a 404 Not Found error
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, ErrCodeNotFound, message)
}

// TooManyRequests sends a 429 Too Many Requests error
func TooManyRequests(c *gin.Context) {
	Error(c, http.StatusTooManyRequests, ErrCodeRateLimited, "Too many requests, slow down")
}

// InternalError sends a 500 Internal Server Error
func InternalError(c *gin.Context, err error) {
	message := "An unexpected error occurred"
	details := ""

	if err != nil {
		details = err.Error()
		_ = c.Error(err)
	}

	ErrorWithDetails(c, http.StatusInternalServerError, ErrCodeInternalServer, message, details)
}

// DatabaseError sends a database error response
func DatabaseError(c *gin.Context, err error) {
	message := "Database operation failed"
	details := ""

	if err != nil {
		details = err.Error()
		_ = c.Error(err)
	}

	ErrorWithDetails(c, http.StatusInternalServerError, ErrCodeDatabaseError, message, details)
}
