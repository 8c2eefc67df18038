package errs

import "errors"

// Sentinels shared by the usecase and handler layers.
var (
	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReservationConflict = errors.New("reservation conflict")
	ErrInvalidTimeSlot     = errors.New("invalid time slot")

	// Input errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
	ErrMigrationFailed         = errors.New("migration failed")
)
