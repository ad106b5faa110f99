// Package common provides shared utilities and types used across the application.
package common

import "errors"

// Common application errors.
var (
	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")

	// Store errors.
	ErrNotFound = errors.New("not found")

	// ErrWriteVerification means a chunk update changed fewer rows than
	// requested. This signals missing write privileges or a concurrent
	// modification; the run must abort rather than retry, and chunks already
	// applied are not rolled back.
	ErrWriteVerification = errors.New("update affected fewer rows than expected")
)
