package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies a class of till error independently of its message
type Kind string

const (
	KindEmptyOrder           Kind = "EmptyOrder"
	KindNoPaymentMethod      Kind = "NoPaymentMethod"
	KindInsufficientAmount   Kind = "InsufficientAmount"
	KindMissingAmount        Kind = "MissingAmount"
	KindNoExportData         Kind = "NoExportData"
	KindPersistenceFailure   Kind = "PersistenceFailure"
	KindConfirmationRequired Kind = "ConfirmationRequired"
	KindLineNotFound         Kind = "LineNotFound"
	KindInvalidPaymentMethod Kind = "InvalidPaymentMethod"
	KindInvalidPeriod        Kind = "InvalidPeriod"
	KindNotFound             Kind = "NotFound"
	KindBadRequest           Kind = "BadRequest"
	KindInternal             Kind = "Internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	cause   error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// Common errors
var (
	ErrEmptyOrder      = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindEmptyOrder, Message: "Please add items to the order first"}
	ErrNoPaymentMethod = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindNoPaymentMethod, Message: "Please select a payment method"}
	ErrMissingAmount   = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindMissingAmount, Message: "Please enter the amount received"}
	ErrNoExportData    = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindNoExportData, Message: "No data to export"}
	ErrLineNotFound    = &AppError{Code: http.StatusNotFound, Kind: KindLineNotFound, Message: "Order line not found"}
	ErrInvalidPeriod   = &AppError{Code: http.StatusBadRequest, Kind: KindInvalidPeriod, Message: "Period must be daily or weekly"}
	ErrInvalidMethod   = &AppError{Code: http.StatusBadRequest, Kind: KindInvalidPaymentMethod, Message: "Payment method must be cash or upi"}
	ErrNotFound        = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrBadRequest      = &AppError{Code: http.StatusBadRequest, Kind: KindBadRequest, Message: "Bad request"}
)

// NewAppError creates a new application error
func NewAppError(code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindBadRequest,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewInsufficientAmountError reports a cash tender below the bill total
func NewInsufficientAmountError(total, received string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindInsufficientAmount,
		Message: fmt.Sprintf("Insufficient amount. Total is ₹%s, received ₹%s.", total, received),
	}
}

// NewConfirmationRequiredError asks the caller to repeat the action with confirmation
func NewConfirmationRequiredError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindConfirmationRequired,
		Message: message,
	}
}

// NewPersistenceError wraps a storage failure
func NewPersistenceError(op string, err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindPersistenceFailure,
		Message: "failed to " + op,
		cause:   err,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(kind Kind, message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    kind,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
	}
}
