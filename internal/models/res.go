package models

import (
	"errors"
	"net/http"
)

// ApiResponse is the envelope every endpoint returns.
type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(data interface{}) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    data,
	}
}

func SuccessWithMessage(message string, data interface{}) ApiResponse {
	return ApiResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(message string) ApiResponse {
	return ApiResponse{
		Success: false,
		Message: message,
	}
}

// Error kinds, stable across releases. Clients match on these, not on the
// human-readable message.
const (
	KindInvalidInput       = "invalid_input"
	KindUnauthorized       = "unauthorized"
	KindForbidden          = "forbidden"
	KindNotFound           = "not_found"
	KindConflict           = "conflict"
	KindServiceUnavailable = "service_unavailable"
	KindInternal           = "internal"
)

type ApiError struct {
	Status  int    `json:"-"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *ApiError) Error() string {
	return e.Message
}

func BadRequest(message string) *ApiError {
	return &ApiError{Status: http.StatusBadRequest, Kind: KindInvalidInput, Message: message}
}

func Unauthorized(message string) *ApiError {
	return &ApiError{Status: http.StatusUnauthorized, Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) *ApiError {
	return &ApiError{Status: http.StatusForbidden, Kind: KindForbidden, Message: message}
}

func NotFound(message string) *ApiError {
	return &ApiError{Status: http.StatusNotFound, Kind: KindNotFound, Message: message}
}

func Conflict(message string) *ApiError {
	return &ApiError{Status: http.StatusConflict, Kind: KindConflict, Message: message}
}

func ServiceUnavailable(message string) *ApiError {
	return &ApiError{Status: http.StatusServiceUnavailable, Kind: KindServiceUnavailable, Message: message}
}

func InternalError(message string) *ApiError {
	return &ApiError{Status: http.StatusInternalServerError, Kind: KindInternal, Message: message}
}

// AsApiError unwraps err into an *ApiError, defaulting to an internal error so
// handlers never leak raw error strings with a 200.
func AsApiError(err error) *ApiError {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return InternalError("Internal server error")
}
