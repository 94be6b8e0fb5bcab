// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"net/http"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

// Persistence sentinels. Repositories wrap these; services translate them.
var (
	ErrNoRecord     = errors.New("no record")
	ErrDuplicateKey = errors.New("duplicate key")
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidDateRange = "INVALID_DATE_RANGE"
	CodeBodyTooLarge     = "PAYLOAD_TOO_LARGE"
	CodeNotFound         = "NOT_FOUND"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeTokenExpired     = "TOKEN_EXPIRED"
	CodeTokenInvalid     = "TOKEN_INVALID"
	CodeConflict         = "CONFLICT"
	CodeInternal         = "INTERNAL_ERROR"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type AppError struct {
	Err        error
	Message    string
	StatusCode int
	Code       string
	Errors     []FieldError
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(
	err error,
	message string,
	statusCode int,
	code string,
) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: statusCode,
		Code:       code,
	}
}

func ValidationError(message string, fields ...FieldError) *AppError {
	appErr := NewAppError(
		ErrValidation,
		message,
		http.StatusUnprocessableEntity,
		CodeValidation,
	)
	if len(fields) > 0 {
		appErr.Errors = fields
	}
	return appErr
}

func InvalidDateRangeError(field string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		Message:    "Invalid date range",
		StatusCode: http.StatusUnprocessableEntity,
		Code:       CodeInvalidDateRange,
		Errors: []FieldError{{
			Field:   field,
			Message: "lower bound must not be after upper bound",
		}},
	}
}

func BodyTooLargeError() *AppError {
	return NewAppError(
		ErrValidation,
		"Request body too large",
		http.StatusRequestEntityTooLarge,
		CodeBodyTooLarge,
	)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrNotFound, message, http.StatusNotFound, CodeNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(
		ErrUnauthorized,
		message,
		http.StatusUnauthorized,
		CodeUnauthorized,
	)
}

func TokenExpiredError() *AppError {
	return NewAppError(
		ErrUnauthorized,
		"Token expired",
		http.StatusUnauthorized,
		CodeTokenExpired,
	)
}

func TokenInvalidError() *AppError {
	return NewAppError(
		ErrUnauthorized,
		"Unauthorized",
		http.StatusUnauthorized,
		CodeTokenInvalid,
	)
}

func ConflictError(message string) *AppError {
	return NewAppError(ErrConflict, message, http.StatusConflict, CodeConflict)
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
