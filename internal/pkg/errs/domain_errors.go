package errs

import "errors"

// Sentinel errors shared across the usecase layers. The handler layer maps
// these onto HTTP statuses; nothing here is fatal to the process.
var (
	// Validation errors (recoverable, surfaced for correction)
	ErrValidation           = errors.New("validation failed")
	ErrClientNameRequired   = errors.New("client name is required")
	ErrPastDate             = errors.New("appointment date is in the past")
	ErrOutsideBusinessHours = errors.New("time is outside business hours")

	// Scheduling errors
	ErrSlotConflict     = errors.New("slot conflicts with an existing appointment")
	ErrAlreadyFinalized = errors.New("appointment is already completed or cancelled")

	// Authorization errors
	ErrPermissionDenied = errors.New("role is not permitted to perform this action")

	// Lookup errors
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrUserNotFound        = errors.New("user not found")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
