// Package apierror defines the operational error carried from services to
// the HTTP boundary. Every domain failure maps to a status code and a
// message; anything else is treated as a 500.
package apierror

import "net/http"

// ApiError is an operational error with an HTTP status code.
type ApiError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *ApiError) Error() string {
	return e.Message
}

// Status returns "fail" for 4xx errors and "error" otherwise,
// matching the response body shape of the API.
func (e *ApiError) Status() string {
	if e.StatusCode >= 400 && e.StatusCode < 500 {
		return "fail"
	}
	return "error"
}

// New creates an ApiError with an explicit status code.
func New(statusCode int, message string) *ApiError {
	return &ApiError{StatusCode: statusCode, Message: message}
}

func BadRequest(message string) *ApiError {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *ApiError {
	if message == "" {
		message = "Not authorized"
	}
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *ApiError {
	if message == "" {
		message = "Access denied"
	}
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *ApiError {
	if message == "" {
		message = "Resource not found"
	}
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *ApiError {
	if message == "" {
		message = "Data conflict"
	}
	return New(http.StatusConflict, message)
}

func Internal(message string) *ApiError {
	if message == "" {
		message = "Internal server error"
	}
	return New(http.StatusInternalServerError, message)
}
