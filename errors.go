package main

import (
	"errors"
	"fmt"
	"net/http"
)

type errorCode string

const (
	codeValidation    errorCode = "validation"
	codeConflict      errorCode = "conflict"
	codeNotFound      errorCode = "not_found"
	codeExternal      errorCode = "external"
	codeConfiguration errorCode = "configuration"
)

func (c errorCode) httpStatus() int {
	switch c {
	case codeValidation:
		return http.StatusBadRequest
	case codeConflict:
		return http.StatusConflict
	case codeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// apiError carries a message that is safe to send to clients. The cause is
// only ever logged.
type apiError struct {
	code    errorCode
	message string
	cause   error
}

func (e *apiError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *apiError) Unwrap() error {
	return e.cause
}

// Is matches any *apiError with the same code.
func (e *apiError) Is(target error) bool {
	var t *apiError
	if errors.As(target, &t) {
		return e.code == t.code
	}
	return false
}

var (
	errValidation    = &apiError{code: codeValidation, message: "validation error"}
	errConflict      = &apiError{code: codeConflict, message: "conflict"}
	errNotFound      = &apiError{code: codeNotFound, message: "not found"}
	errExternal      = &apiError{code: codeExternal, message: "external service error"}
	errConfiguration = &apiError{code: codeConfiguration, message: "not configured"}

	errStoreNotConfigured       = configurationError("Document store not configured")
	errTranscriberNotConfigured = configurationError("Transcription service not configured")
)

func validationError(msg string) *apiError {
	return &apiError{code: codeValidation, message: msg}
}

func conflictError(format string, args ...any) *apiError {
	return &apiError{code: codeConflict, message: fmt.Sprintf(format, args...)}
}

func notFoundError(msg string) *apiError {
	return &apiError{code: codeNotFound, message: msg}
}

func externalError(msg string, cause error) *apiError {
	return &apiError{code: codeExternal, message: msg, cause: cause}
}

func configurationError(msg string) *apiError {
	return &apiError{code: codeConfiguration, message: msg}
}

// asAPIError returns err as an *apiError, wrapping anything else in an
// external error with the given fallback message.
func asAPIError(err error, fallback string) *apiError {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return externalError(fallback, err)
}
