package core

import (
	"errors"
	"regexp"
)

var (
	// ErrNotFound is a sentinel error for "not found" cases
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied is returned when the platform refuses a mutating call
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnknownCategory is returned when a category id is not in the catalog
	ErrUnknownCategory = errors.New("unknown category")
)

var notFoundRegex = regexp.MustCompile(`(?i)not found`)

// IsNotFoundError checks if an error is a "not found" error.
// Platform errors that only carry the text are matched as well.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotFound) {
		return true
	}
	return notFoundRegex.MatchString(err.Error())
}

// IsPermissionDenied checks if an error was caused by missing platform permissions
func IsPermissionDenied(err error) bool {
	return err != nil && errors.Is(err, ErrPermissionDenied)
}
