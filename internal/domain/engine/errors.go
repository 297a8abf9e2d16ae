package engine

import "errors"

var (
	// ErrInvalidRequirements is returned when the requirement vector is absent.
	ErrInvalidRequirements = errors.New("invalid requirements")
	// ErrNotFound is returned by lookups for ids missing from the catalog.
	ErrNotFound = errors.New("not found")
	// ErrInternal wraps unexpected faults raised while building a result.
	ErrInternal = errors.New("internal engine failure")
)

// FailureMessage is the fixed error text of a failed result.
const FailureMessage = "Failed to generate recommendation"
