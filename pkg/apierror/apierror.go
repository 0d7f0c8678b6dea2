package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeRequestFailed      = "REQUEST_FAILED"
	CodeNetworkUnreachable = "NETWORK_UNREACHABLE"
	CodeMalformedInput     = "MALFORMED_INPUT"
)

type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, details string, status int) *APIError {
	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status}
}

func Unauthenticated() *APIError {
	return New(CodeUnauthenticated, "Not authenticated", "", http.StatusUnauthorized)
}

func Unauthorized() *APIError {
	return New(CodeUnauthorized, "Unauthorized", "", http.StatusUnauthorized)
}

func RequestFailed(message string, status int) *APIError {
	if message == "" {
		message = "Request failed"
	}
	return New(CodeRequestFailed, message, "", status)
}

func NetworkUnreachable(base string, cause error) *APIError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return New(CodeNetworkUnreachable, "cannot reach backend at "+base, details, http.StatusBadGateway)
}

func MalformedInput(message string, field string) *APIError {
	return New(CodeMalformedInput, message, field, http.StatusBadRequest)
}

// Is reports whether err carries an APIError with the given code.
func Is(err error, code string) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}

// Message returns the admin-facing text of err: the APIError message when
// there is one, the plain error string otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}

	return err.Error()
}
