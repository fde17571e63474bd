// Package emit persists rendered documents in their requested output format.
package emit

import "fmt"

// WriteError represents a filesystem failure while writing the output file
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// ConversionError represents a failure of the HTML-to-PDF converter
type ConversionError struct {
	Message string
	Cause   error
}

func (e *ConversionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("PDF conversion failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("PDF conversion failed: %s", e.Message)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// FormatError represents an output format that is unknown or not allowed
type FormatError struct {
	Format  string
	Allowed []Format
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported format %q (allowed: %s)", e.Format, joinFormats(e.Allowed))
}
