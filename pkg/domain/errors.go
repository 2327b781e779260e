package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested account or transaction does not exist
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicateName is returned when an account name is already taken
	ErrDuplicateName = errors.New("account name already exists")
	// ErrInvalidAccount is returned when a transaction references an account that does not exist
	ErrInvalidAccount = errors.New("account does not exist")
	// ErrStorageUnavailable is returned when the underlying store fails for reasons other than the above
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrInvalidAccountType is returned for account types outside the supported set
	ErrInvalidAccountType = errors.New("invalid account type")
)
