package api

import (
	"encoding/json"
	"net/http"

	"etlmap/internal/errors"
)

// ErrorResponse represents an HTTP error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// WriteError writes an error response to the HTTP response writer
func WriteError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := ErrorResponse{
		Error: err.Error(),
	}

	if appErr, ok := err.(*errors.Error); ok {
		resp.Code = string(appErr.Code)
		resp.Details = appErr.Details
	} else {
		resp.Code = string(errors.InternalError)
	}

	_ = json.NewEncoder(w).Encode(resp)
}

// WriteAppError writes a typed error with automatic status code mapping
func WriteAppError(w http.ResponseWriter, err *errors.Error) {
	WriteError(w, err, MapErrorToStatus(err.Code))
}

// MapErrorToStatus maps error codes to HTTP status codes
func MapErrorToStatus(code errors.ErrorCode) int {
	switch code {
	case errors.ParseFailed:
		return http.StatusUnprocessableEntity // 422
	case errors.ScopeInvalid:
		return http.StatusBadRequest // 400
	case errors.SessionNotFound:
		return http.StatusNotFound // 404
	case errors.Unauthorized:
		return http.StatusUnauthorized // 401
	case errors.RateLimited:
		return http.StatusTooManyRequests // 429
	case errors.GeneratorUnavailable:
		return http.StatusServiceUnavailable // 503
	case errors.ReportWriteFailed:
		return http.StatusInternalServerError // 500
	case errors.StorageFailed:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// BadRequest writes a 400 Bad Request error
func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, errors.New(errors.ScopeInvalid, message), http.StatusBadRequest)
}

// NotFound writes a 404 Not Found error
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, errors.New(errors.SessionNotFound, message), http.StatusNotFound)
}

// InternalError writes a 500 Internal Server Error
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, errors.New(errors.InternalError, message), http.StatusInternalServerError)
}
