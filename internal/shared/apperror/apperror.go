package apperror

import (
	"errors"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Type classifies an error for callers and for the HTTP layer
type Type int

const (
	TypeInternal Type = iota
	TypeValidation
	TypeNotFound
	TypeStorage
	TypeConflict
	TypeUnauthorized
	TypeForbidden
)

func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "validation"
	case TypeNotFound:
		return "not_found"
	case TypeStorage:
		return "storage"
	case TypeConflict:
		return "conflict"
	case TypeUnauthorized:
		return "unauthorized"
	case TypeForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error is the application error carried across layers
type Error struct {
	Type    Type
	Code    string
	Message string
	Details interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error type to a status code
func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeUnauthorized:
		return http.StatusUnauthorized
	case TypeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// WithDetails returns a copy carrying extra details
func (e *Error) WithDetails(details interface{}) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// Wrap returns a copy of e around cause. errors.Is(copy, e) still holds.
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.Err = cause
	return &cp
}

// Is matches another *Error with the same type and code
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// =====================================================
// CONSTRUCTORS
// =====================================================

func Validation(code, message string) *Error {
	return &Error{Type: TypeValidation, Code: code, Message: message}
}

func NotFound(code, message string) *Error {
	return &Error{Type: TypeNotFound, Code: code, Message: message}
}

func Storage(message string, err error) *Error {
	return &Error{Type: TypeStorage, Code: "STORAGE_ERROR", Message: message, Err: err}
}

func Conflict(code, message string) *Error {
	return &Error{Type: TypeConflict, Code: code, Message: message}
}

func Unauthorized(code, message string) *Error {
	return &Error{Type: TypeUnauthorized, Code: code, Message: message}
}

func Forbidden(code, message string) *Error {
	return &Error{Type: TypeForbidden, Code: code, Message: message}
}

func Internal(message string, err error) *Error {
	return &Error{Type: TypeInternal, Code: "INTERNAL_ERROR", Message: message, Err: err}
}

// FromValidation converts ozzo-validation output into a ValidationError
// whose details map field names to messages.
func FromValidation(err error) *Error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if errors.As(err, &errs) {
		details := make(map[string]string, len(errs))
		for field, fieldErr := range errs {
			details[field] = fieldErr.Error()
		}
		return &Error{
			Type:    TypeValidation,
			Code:    "VALIDATION_ERROR",
			Message: "request validation failed",
			Details: details,
			Err:     err,
		}
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	return &Error{Type: TypeValidation, Code: "VALIDATION_ERROR", Message: err.Error(), Err: err}
}

// =====================================================
// PREDICATES
// =====================================================

// TypeOf returns the Type of the first *Error in the chain, TypeInternal otherwise
func TypeOf(err error) Type {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return TypeInternal
}

func IsValidation(err error) bool { return TypeOf(err) == TypeValidation }
func IsNotFound(err error) bool   { return TypeOf(err) == TypeNotFound }
func IsStorage(err error) bool    { return TypeOf(err) == TypeStorage }
func IsConflict(err error) bool   { return TypeOf(err) == TypeConflict }
