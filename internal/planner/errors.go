package planner

import "errors"

var (
	// ErrValidation rejects a draft before any network call is made.
	ErrValidation = errors.New("invalid assignment")
	// ErrSaveInFlight is the repository-wide duplicate-submission
	// guard; one mutation at a time.
	ErrSaveInFlight = errors.New("a save is already in flight")
	// ErrNotFound means the id is not in the session cache.
	ErrNotFound = errors.New("assignment not found")
)
