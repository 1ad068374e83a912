package rendering

import "fmt"

// TemplateError represents an error parsing or executing the document template
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

// RenderError represents a PDF compilation failure. Diagnostic carries the
// compiler's error lines verbatim to aid debugging.
type RenderError struct {
	Message    string
	Diagnostic string
	Cause      error
}

func (e *RenderError) Error() string {
	if e.Diagnostic != "" {
		return fmt.Sprintf("render error: %s: %s", e.Message, e.Diagnostic)
	}
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
