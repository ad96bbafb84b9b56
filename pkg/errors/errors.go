package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap returns a copy of e carrying err as its cause. errors.Is still matches e.
func (e *AppError) Wrap(err error) error {
	return &wrapped{AppError: &AppError{Code: e.Code, Message: e.Message, Details: e.Details, Err: err}, sentinel: e}
}

type wrapped struct {
	*AppError
	sentinel *AppError
}

func (w *wrapped) Is(target error) bool {
	return target == w.sentinel
}

func (w *wrapped) As(target interface{}) bool {
	if t, ok := target.(**AppError); ok {
		*t = w.AppError
		return true
	}
	return false
}

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrForbidden
	ErrInternal
	ErrConflict
	ErrInvalidCredentials
	ErrInvalidToken
	ErrTokenExpired
	ErrNotApproved
	ErrNotAssigned
	ErrExternalService
	ErrTooManyRequests
	ErrPayloadTooLarge
)

// HTTPStatus maps the code to the status written at the API edge.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrBadRequest:
		return http.StatusBadRequest
	case ErrUnauthorized, ErrInvalidCredentials, ErrInvalidToken, ErrTokenExpired:
		return http.StatusUnauthorized
	case ErrForbidden, ErrNotApproved, ErrNotAssigned:
		return http.StatusForbidden
	case ErrConflict:
		return http.StatusConflict
	case ErrExternalService:
		return http.StatusBadGateway
	case ErrTooManyRequests:
		return http.StatusTooManyRequests
	case ErrPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors
func NewNotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func NewBadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// Common errors
func NotFound(resource string, err error) *AppError {
	return NewNotFound(resource, err)
}

func BadRequest(message string, err error) *AppError {
	return NewBadRequest(message, err)
}

func Internal(err error) *AppError {
	return NewInternal(err)
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

func Forbidden(message string) *AppError {
	if message == "" {
		message = "forbidden"
	}
	return &AppError{Code: ErrForbidden, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Code: ErrConflict, Message: message}
}

func InvalidCredentials() *AppError {
	return &AppError{Code: ErrInvalidCredentials, Message: "invalid credentials"}
}

func InvalidToken(err error) *AppError {
	return &AppError{Code: ErrInvalidToken, Message: "invalid token", Err: err}
}

func TokenExpired(err error) *AppError {
	return &AppError{Code: ErrTokenExpired, Message: "token expired", Err: err}
}

// NotApproved reports the doctor's current approval state so clients can branch on it.
func NotApproved(state string) *AppError {
	return &AppError{
		Code:    ErrNotApproved,
		Message: fmt.Sprintf("doctor account is %s", state),
		Details: map[string]interface{}{"status": state},
	}
}

func NotAssigned() *AppError {
	return &AppError{Code: ErrNotAssigned, Message: "doctor is not assigned to this patient"}
}

func ExternalService(service string, err error) *AppError {
	return &AppError{
		Code:    ErrExternalService,
		Message: fmt.Sprintf("%s request failed", service),
		Err:     err,
	}
}

func TooManyRequests() *AppError {
	return &AppError{Code: ErrTooManyRequests, Message: "too many requests"}
}

func PayloadTooLarge(limit int64) *AppError {
	return &AppError{Code: ErrPayloadTooLarge, Message: fmt.Sprintf("request body exceeds %d bytes", limit)}
}

// CodeOf returns the code of the first AppError in err's chain, or ErrInternal.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}
