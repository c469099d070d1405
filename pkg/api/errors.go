package api

import (
	"errors"
	"net/http"
)

// HTTPError is an error with a response status and a stable code.
type HTTPError struct {
	Status  int
	Code    string
	Message string
}

func (e HTTPError) Error() string { return e.Message }

var (
	ErrUnsupportedMediaType = HTTPError{Status: http.StatusUnsupportedMediaType, Code: "UNSUPPORTED_MEDIA_TYPE", Message: "expected application/json"}
	ErrInvalidBody          = HTTPError{Status: http.StatusBadRequest, Code: "INVALID_BODY", Message: "request body is not valid JSON"}
	ErrBodyTooLarge         = HTTPError{Status: http.StatusRequestEntityTooLarge, Code: "BODY_TOO_LARGE", Message: "request body is too large"}
	ErrUnauthorized         = HTTPError{Status: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: "init data required"}
	ErrNotFound             = HTTPError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "not found"}
	ErrMethodNotAllowed     = HTTPError{Status: http.StatusMethodNotAllowed, Code: "METHOD_NOT_ALLOWED", Message: "method not allowed"}
	ErrInternal             = HTTPError{Status: http.StatusInternalServerError, Code: "INTERNAL_ERROR", Message: "internal error"}
	ErrBotNotConfigured     = errors.New("bot token is not configured")
)

func asHTTPError(err error) HTTPError {
	var he HTTPError
	if errors.As(err, &he) {
		return he
	}
	return ErrInternal
}
