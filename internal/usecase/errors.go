package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// Fatal fetch-cycle errors; every other failure is reported as a false result.
	ErrURLGeneration         = errors.New("url generation failed")
	ErrConfiguration         = errors.New("invalid configuration")
	ErrMappingConsistency    = errors.New("entity mapping is not unique")
	ErrInvalidIdentifierKind = errors.New("invalid identifier kind")
)
