package errors

import (
	"net/http"

	"cargomatch/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches any BaseError with the same error code, so copies made by
// WithDetails still satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)

	return ok && t.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy carrying detailed error information.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Account errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"An account with this email already exists",
		"",
	)

	ErrUserCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_CREATION_FAILED",
		"Failed to create account",
		"",
	)

	ErrAccountInactive = NewBaseError(
		http.StatusForbidden,
		"ACCOUNT_INACTIVE",
		"This account has been deactivated",
		"",
	)

	ErrAccountRejected = NewBaseError(
		http.StatusForbidden,
		"ACCOUNT_REJECTED",
		"This account has been rejected by an administrator",
		"",
	)

	// Authentication errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		"",
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Invalid or expired token",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Failed to process password",
		"",
	)

	// LSP errors
	ErrLSPNotFound = NewBaseError(
		http.StatusNotFound,
		"LSP_NOT_FOUND",
		"LSP profile not found",
		"",
	)

	ErrLSPNotVerified = NewBaseError(
		http.StatusForbidden,
		"LSP_NOT_VERIFIED",
		"LSP account is not verified yet",
		"",
	)

	ErrLSPAlreadyDecided = NewBaseError(
		http.StatusConflict,
		"LSP_VERIFICATION_CONFLICT",
		"LSP verification has already been decided",
		"",
	)

	// Container errors
	ErrContainerTypeNotFound = NewBaseError(
		http.StatusNotFound,
		"CONTAINER_TYPE_NOT_FOUND",
		"Container type not found",
		"",
	)

	ErrContainerTypeInUse = NewBaseError(
		http.StatusConflict,
		"CONTAINER_TYPE_IN_USE",
		"Container type is referenced by containers",
		"",
	)

	ErrContainerTypeExists = NewBaseError(
		http.StatusConflict,
		"CONTAINER_TYPE_EXISTS",
		"A container type with this name already exists",
		"",
	)

	ErrContainerNotFound = NewBaseError(
		http.StatusNotFound,
		"CONTAINER_NOT_FOUND",
		"Container not found",
		"",
	)

	ErrContainerNumberExists = NewBaseError(
		http.StatusConflict,
		"CONTAINER_NUMBER_EXISTS",
		"A container with this number already exists",
		"",
	)

	ErrContainerImmutable = NewBaseError(
		http.StatusConflict,
		"CONTAINER_IMMUTABLE",
		"Approved containers cannot be modified or deleted",
		"",
	)

	ErrContainerStatusConflict = NewBaseError(
		http.StatusConflict,
		"CONTAINER_STATUS_CONFLICT",
		"Container has already been reviewed",
		"",
	)

	ErrContainerUnavailable = NewBaseError(
		http.StatusConflict,
		"CONTAINER_UNAVAILABLE",
		"Container is not available for booking",
		"",
	)

	ErrContainerHasBookings = NewBaseError(
		http.StatusConflict,
		"CONTAINER_HAS_BOOKINGS",
		"Container has bookings and cannot be deleted",
		"",
	)

	// Booking errors
	ErrBookingNotFound = NewBaseError(
		http.StatusNotFound,
		"BOOKING_NOT_FOUND",
		"Booking not found",
		"",
	)

	ErrBookingStatusConflict = NewBaseError(
		http.StatusConflict,
		"BOOKING_STATUS_CONFLICT",
		"Booking status does not allow this operation",
		"",
	)

	ErrBookingExceedsCapacity = NewBaseError(
		http.StatusBadRequest,
		"BOOKING_EXCEEDS_CAPACITY",
		"Requested volume exceeds container capacity",
		"",
	)

	// Shipment errors
	ErrShipmentNotFound = NewBaseError(
		http.StatusNotFound,
		"SHIPMENT_NOT_FOUND",
		"Shipment not found",
		"",
	)

	ErrShipmentExists = NewBaseError(
		http.StatusConflict,
		"SHIPMENT_EXISTS",
		"A shipment already exists for this booking",
		"",
	)

	ErrShipmentStatusConflict = NewBaseError(
		http.StatusConflict,
		"SHIPMENT_STATUS_CONFLICT",
		"Shipment status can only move forward",
		"",
	)

	// Complaint errors
	ErrComplaintNotFound = NewBaseError(
		http.StatusNotFound,
		"COMPLAINT_NOT_FOUND",
		"Complaint not found",
		"",
	)

	ErrComplaintStatusConflict = NewBaseError(
		http.StatusConflict,
		"COMPLAINT_STATUS_CONFLICT",
		"Complaint status does not allow this change",
		"",
	)

	// Notification and device errors
	ErrNotificationNotFound = NewBaseError(
		http.StatusNotFound,
		"NOTIFICATION_NOT_FOUND",
		"Notification not found",
		"",
	)

	ErrDeviceNotFound = NewBaseError(
		http.StatusNotFound,
		"DEVICE_NOT_FOUND",
		"Device not found",
		"",
	)

	// Document errors
	ErrDocumentNotFound = NewBaseError(
		http.StatusNotFound,
		"DOCUMENT_NOT_FOUND",
		"Document not found",
		"",
	)

	ErrDocumentURLUnrecognized = NewBaseError(
		http.StatusBadRequest,
		"DOCUMENT_URL_UNRECOGNIZED",
		"Could not extract a document id from the URL",
		"",
	)

	ErrDocumentInvalid = NewBaseError(
		http.StatusBadRequest,
		"DOCUMENT_INVALID",
		"Only PDF documents within the size limit are accepted",
		"",
	)

	// Validation errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// Transaction errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database operation failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// Unwrap exposes the driver error for errors.Is/As.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}
