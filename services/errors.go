package services

import "errors"

// Shared service-layer errors, mapped to HTTP statuses in handlers.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")

	ErrCategoryNotFound = errors.New("category not found")
	ErrAthleteNotFound  = errors.New("athlete not found")
	ErrMatchNotFound    = errors.New("match not found")
	ErrBracketNotFound  = errors.New("no bracket has been generated for this category")

	// ErrInsufficientAthletes aborts bracket generation before any state
	// is written: fewer than two athletes hold a valid qualifying time.
	ErrInsufficientAthletes = errors.New("not enough athletes with a valid qualifying time to seed a bracket")

	// ErrRegenerationNotConfirmed guards the destructive regeneration
	// path: every existing round, match and result of the category is
	// deleted, so the calling layer must acknowledge the data loss.
	ErrRegenerationNotConfirmed = errors.New("bracket regeneration destroys all entered results and must be confirmed")

	ErrInvalidRunStatus      = errors.New("run status must be one of TIME, FS, DNS, DNF")
	ErrInvalidRunTime        = errors.New("a TIME run requires a positive time in milliseconds")
	ErrInvalidFalseStartRule = errors.New("false start rule must be IFSC or TOLERANT")
	ErrInvalidPrecision      = errors.New("display precision must be 2 or 3 decimals")
	ErrCategoryNameConflict  = errors.New("category name is already in use")

	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
	ErrPasswordTooShort       = errors.New("password is too short")
)
