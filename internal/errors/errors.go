package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Plan errors (PLAN-001 to PLAN-099)
	ErrCodePlanNotFound  ErrorCode = "PLAN-001"
	ErrCodePlanMalformed ErrorCode = "PLAN-002"
	ErrCodePlanSchema    ErrorCode = "PLAN-003"
	ErrCodePlanBuild     ErrorCode = "PLAN-004"

	// Registry errors (REGISTRY-001 to REGISTRY-099)
	ErrCodeRegistryDescriptor ErrorCode = "REGISTRY-001"
	ErrCodeRegistryNotFound   ErrorCode = "REGISTRY-002"
	ErrCodeRegistryStore      ErrorCode = "REGISTRY-003"

	// Config errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigNotFound ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
)

// MTFError represents an enhanced error with code, suggestions, and documentation
type MTFError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *MTFError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *MTFError) Unwrap() error {
	return e.Cause
}

// New creates a new MTFError
func New(code ErrorCode, message string) *MTFError {
	return &MTFError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new MTFError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *MTFError {
	return &MTFError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *MTFError) WithSuggestion(suggestion string) *MTFError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *MTFError) WithSuggestions(suggestions ...string) *MTFError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *MTFError) WithDocs(url string) *MTFError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewPlanNotFoundError creates a plan file not found error
func NewPlanNotFoundError(path string) *MTFError {
	return New(ErrCodePlanNotFound, fmt.Sprintf("plan file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Pass the plan location with --in or set plan.file in .mtf.yaml").
		WithDocs("https://github.com/allenday/mtf#plan-documents")
}

// NewPlanMalformedError creates an error for a plan that is not well-formed XML
func NewPlanMalformedError(path string, cause error) *MTFError {
	return Wrap(ErrCodePlanMalformed, fmt.Sprintf("plan file is not well-formed XML: %s", path), cause).
		WithSuggestion("Check for unclosed tags and unescaped characters").
		WithSuggestion("Run 'mtf plan validate --in <file>' to see the parse error").
		WithDocs("https://github.com/allenday/mtf#plan-documents")
}

// NewPlanSchemaError creates an error for a plan that violates the schema
func NewPlanSchemaError(path string, cause error) *MTFError {
	return Wrap(ErrCodePlanSchema, fmt.Sprintf("plan file violates the schema: %s", path), cause).
		WithSuggestion("Run 'mtf plan validate --in <file>' to list every violation").
		WithSuggestion("Every epic, story, and task needs id and status attributes").
		WithDocs("https://github.com/allenday/mtf#plan-schema")
}

// NewPlanBuildError creates a generic plan build error
func NewPlanBuildError(path string, cause error) *MTFError {
	return Wrap(ErrCodePlanBuild, fmt.Sprintf("could not build plan graph from: %s", path), cause).
		WithSuggestion("Run 'mtf plan validate --in <file>' to check the document")
}

// NewDescriptorInvalidError creates a component descriptor validation error
func NewDescriptorInvalidError(cause error) *MTFError {
	return Wrap(ErrCodeRegistryDescriptor, "component descriptor is invalid", cause).
		WithSuggestion("Run 'mtf registry validate <file>' to see validation errors").
		WithSuggestion("component_type, name, and description are required fields").
		WithDocs("https://github.com/allenday/mtf#component-registry")
}

// NewComponentNotFoundError creates a component lookup error
func NewComponentNotFoundError(id string) *MTFError {
	return New(ErrCodeRegistryNotFound, fmt.Sprintf("component not found: %s", id)).
		WithSuggestion("Run 'mtf registry list' to see stored components").
		WithSuggestion("Check if the registry directory is correct")
}

// NewConfigInvalidError creates a configuration validation error
func NewConfigInvalidError(path string, cause error) *MTFError {
	return Wrap(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", path), cause).
		WithSuggestion("Check .mtf.yaml for unknown keys or bad values").
		WithDocs("https://github.com/allenday/mtf#configuration")
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *MTFError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}

// NewFileWriteError creates a file write error
func NewFileWriteError(path string, cause error) *MTFError {
	return Wrap(ErrCodeFileWriteFailed, fmt.Sprintf("failed to write file: %s", path), cause).
		WithSuggestion("Check directory permissions and free disk space")
}
