// Package profile loads, lists and manages YAML profile documents.
package profile

import (
	"errors"
	"fmt"
)

// ErrStoreMissing is returned by List when the profile directory does not exist.
var ErrStoreMissing = errors.New("profile store does not exist")

// NotFoundError represents a profile file that does not exist
type NotFoundError struct {
	Name string
	Dir  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("profile %q not found in %q", e.Name, e.Dir)
}

// MalformedError represents a profile file that could not be parsed
type MalformedError struct {
	Path    string
	Message string
	Cause   error
}

func (e *MalformedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed profile %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed profile %s: %s", e.Path, e.Message)
}

func (e *MalformedError) Unwrap() error {
	return e.Cause
}

// DuplicateError represents a name collision in the profile store
type DuplicateError struct {
	Name string
	Dir  string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("profile %q already exists in %q", e.Name, e.Dir)
}

// StoreError represents a filesystem failure while managing the store
type StoreError struct {
	Message string
	Cause   error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("profile store error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("profile store error: %s", e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
