package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "datasentinel/pkg/domain-errors"
)

// WriteJSON writes response as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code, so encoding errors are ignored.
	_ = json.NewEncoder(w).Encode(response)
}

// WriteError centralizes domain error translation to HTTP responses.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) && domainErr.Code == dErrors.CodeDependency {
		w.Header().Set("Retry-After", "5")
	}
	WriteJSON(w, ErrorStatus(err), ErrorBody(err))
}

// ErrorStatus is the HTTP status WriteError would use for err.
func ErrorStatus(err error) int {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		return DomainCodeToHTTPStatus(domainErr.Code)
	}
	return http.StatusInternalServerError
}

// ErrorBody is the JSON error envelope for err, for responses that embed
// per-item failures.
func ErrorBody(err error) map[string]string {
	var domainErr *dErrors.Error
	if !errors.As(err, &domainErr) {
		return map[string]string{"error": DomainCodeToHTTPCode(dErrors.CodeInternal)}
	}
	body := map[string]string{"error": DomainCodeToHTTPCode(domainErr.Code)}
	if domainErr.Message != "" && domainErr.Code != dErrors.CodeInternal {
		body["error_description"] = domainErr.Message
	}
	return body
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeInvalidInput, dErrors.CodeInvariantViolation:
		return http.StatusBadRequest
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case dErrors.CodeDependency:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// DomainCodeToHTTPCode translates domain error codes to the "error" field of the JSON envelope.
func DomainCodeToHTTPCode(code dErrors.Code) string {
	switch code {
	case dErrors.CodeNotFound:
		return "not_found"
	case dErrors.CodeBadRequest, dErrors.CodeInvalidInput:
		return "bad_request"
	case dErrors.CodeValidation, dErrors.CodeInvariantViolation:
		return "validation_error"
	case dErrors.CodeConflict:
		return "conflict"
	case dErrors.CodeUnauthorized:
		return "unauthorized"
	case dErrors.CodeForbidden:
		return "forbidden"
	case dErrors.CodeTimeout:
		return "timeout"
	case dErrors.CodeDependency:
		return "dependency_unavailable"
	default:
		return "internal_error"
	}
}
