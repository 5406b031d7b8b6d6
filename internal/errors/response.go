package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrorResponse is the envelope returned for every failed request. Success is
// always false; Error carries the human-readable message clients display,
// Code and TraceID support log correlation.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorOption is a functional option for configuring error responses
type ErrorOption func(*ErrorResponse)

// WithMessage overrides the default message for the error code
func WithMessage(message string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error = message
	}
}

// NewErrorResponse creates a standardized error response with the given error
// code and trace ID. Optional overrides can be added using functional options.
func NewErrorResponse(code ErrorCode, traceID string, opts ...ErrorOption) *ErrorResponse {
	response := &ErrorResponse{
		Success: false,
		Error:   GetErrorMessage(code),
		Code:    string(code),
		TraceID: traceID,
	}

	for _, opt := range opts {
		opt(response)
	}

	return response
}

// NewValidationError creates a validation error response with field-specific
// details folded into the message.
func NewValidationError(fieldErrors map[string]string, traceID string) *ErrorResponse {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s %s", field, fieldErrors[field]))
	}

	message := GetErrorMessage(ValidationGeneral)
	if len(parts) > 0 {
		message = fmt.Sprintf("%s: %s", message, strings.Join(parts, "; "))
	}

	return &ErrorResponse{
		Success: false,
		Error:   message,
		Code:    string(ValidationGeneral),
		TraceID: traceID,
	}
}

// WrapSystemError wraps an internal error with a generic system error message.
// This prevents exposure of internal implementation details to clients; the
// internal error is returned separately for server-side logging.
func WrapSystemError(err error, traceID string) (*ErrorResponse, error) {
	response := &ErrorResponse{
		Success: false,
		Error:   GetErrorMessage(SystemInternalError),
		Code:    string(SystemInternalError),
		TraceID: traceID,
	}
	return response, err
}

// ToJSON serializes the error response to JSON bytes
func (er *ErrorResponse) ToJSON() ([]byte, error) {
	return json.Marshal(er)
}

// GetHTTPStatus returns the appropriate HTTP status code for the error code
func GetHTTPStatus(code ErrorCode) int {
	switch code {
	case ValidationGeneral, ValidationRequiredField, ValidationInvalidFormat,
		ValidationInvalidEmail, ValidationInvalidDate, UserInvalidID,
		CategoryInvalidID, ExpenseInvalidID, ExpenseInvalidAmount,
		ExtractEmptyInput:
		return http.StatusBadRequest

	case AuthInvalidCredentials, AuthMissingToken, AuthExpiredToken,
		AuthInvalidTokenFormat:
		return http.StatusUnauthorized

	case AuthInsufficientPermission, UserDeleteAdmin:
		return http.StatusForbidden

	case UserNotFound, CategoryNotFound, ExpenseNotFound, ExpenseNoData:
		return http.StatusNotFound

	case UserAlreadyExists:
		return http.StatusConflict

	case SystemRateLimitExceeded:
		return http.StatusTooManyRequests

	case SystemServiceUnavailable:
		return http.StatusServiceUnavailable

	case SystemInternalError, SystemDatabaseError, SystemUnexpectedError,
		ExtractNotConfigured, ExtractUpstream:
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}

// GetHTTPStatus returns the HTTP status code for the error response
func (er *ErrorResponse) GetHTTPStatus() int {
	return GetHTTPStatus(ErrorCode(er.Code))
}

// IsClientError returns true if the error is a 4xx client error
func (er *ErrorResponse) IsClientError() bool {
	status := er.GetHTTPStatus()
	return status >= 400 && status < 500
}

// IsServerError returns true if the error is a 5xx server error
func (er *ErrorResponse) IsServerError() bool {
	status := er.GetHTTPStatus()
	return status >= 500
}

// String returns a string representation of the error response
func (er *ErrorResponse) String() string {
	return fmt.Sprintf("[%s] %s (trace: %s)", er.Code, er.Error, er.TraceID)
}
