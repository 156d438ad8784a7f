// Package apperror defines the typed error taxonomy shared by every SAKU
// service. Services return *AppError (or wrap an error with one) and
// handlers pass it to response.Error, which writes the JSON error envelope.
package apperror

import (
	"fmt"
	"net/http"
)

// Code is one of the seven taxonomy buckets every service error maps into.
type Code string

const (
	CodeValidation     Code = "VALIDATION"
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeForbidden      Code = "FORBIDDEN"
	CodeNotFound       Code = "NOT_FOUND"
	CodeConflict       Code = "CONFLICT"
	CodeDependency     Code = "DEPENDENCY"
	CodeInternal       Code = "INTERNAL"
)

var httpStatusByCode = map[Code]int{
	CodeValidation:      http.StatusBadRequest,
	CodeUnauthenticated: http.StatusUnauthorized,
	CodeForbidden:       http.StatusForbidden,
	CodeNotFound:        http.StatusNotFound,
	CodeConflict:        http.StatusConflict,
	CodeDependency:      http.StatusBadGateway,
	CodeInternal:        http.StatusInternalServerError,
}

// AppError is a structured error that maps directly to an HTTP response.
type AppError struct {
	Code       Code   `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// New builds an AppError for code, deriving the HTTP status from the taxonomy.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatusByCode[code]}
}

// Wrap attaches an internal error to a taxonomy code without exposing it.
func Wrap(code Code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatusByCode[code], Err: err}
}

func Validation(message string) *AppError      { return New(CodeValidation, message) }
func Unauthenticated(message string) *AppError { return New(CodeUnauthenticated, message) }
func Forbidden(message string) *AppError       { return New(CodeForbidden, message) }

func NotFound(entity string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity))
}

func Conflict(message string) *AppError { return New(CodeConflict, message) }

// Dependency wraps a failure reaching an upstream service (503/502 territory).
func Dependency(service string, err error) *AppError {
	return Wrap(CodeDependency, fmt.Sprintf("%s is unavailable", service), err)
}

// Internal wraps an unexpected internal error (database, encoding, etc).
func Internal(err error) *AppError {
	return Wrap(CodeInternal, "internal server error", err)
}
