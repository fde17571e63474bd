// Package rendering binds profile data to pongo2 document templates.
package rendering

import "fmt"

// NotFoundError represents a template name that does not resolve to a file
// inside the template directory
type NotFoundError struct {
	Name string
	Dir  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template %q not found in %q", e.Name, e.Dir)
}

// TemplateError represents an error reading or parsing a template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure while executing a parsed template
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
