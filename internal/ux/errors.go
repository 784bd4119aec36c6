package ux

import (
	"fmt"
	"strings"
)

// ErrorWithSuggestion wraps an error with helpful recovery suggestions
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface
func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v\n\n💡 Suggestion: %s", e.Err, e.Suggestion)
	}
	return e.Err.Error()
}

// Unwrap provides access to the underlying error
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// NewErrorWithSuggestion creates a new error with a suggestion
func NewErrorWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// EnhanceError analyzes an error and adds contextual suggestions
func EnhanceError(err error) error {
	if err == nil {
		return nil
	}

	errMsg := err.Error()

	// File not found errors
	if strings.Contains(errMsg, "no such file or directory") {
		if strings.Contains(errMsg, "plan.xml") {
			return NewErrorWithSuggestion(err,
				"Write a work breakdown to plan.xml or point at one with '--in path/to/plan.xml'")
		}
		if strings.Contains(errMsg, ".mtf.yaml") {
			return NewErrorWithSuggestion(err,
				"Create a .mtf.yaml in your project root or pass --config with an explicit path")
		}
		if strings.Contains(errMsg, "registry") {
			return NewErrorWithSuggestion(err,
				"Check the component id with 'mtf registry list' or register one with 'mtf registry new'")
		}
	}

	// Plan document failures
	if strings.Contains(errMsg, "schema_violation") {
		return NewErrorWithSuggestion(err,
			"Run 'mtf plan validate --in <file>' to list every violation, then fix the reported elements")
	}

	if strings.Contains(errMsg, "malformed_document") || strings.Contains(errMsg, "XML syntax error") {
		return NewErrorWithSuggestion(err,
			"The document is not well-formed XML. Check for unclosed or mismatched tags")
	}

	// Registry failures
	if strings.Contains(errMsg, "descriptor") && (strings.Contains(errMsg, "invalid") || strings.Contains(errMsg, "violates")) {
		return NewErrorWithSuggestion(err,
			"Run 'mtf registry validate <file>' to see which fields the descriptor is missing")
	}

	if strings.Contains(errMsg, "component") && strings.Contains(errMsg, "not found") {
		return NewErrorWithSuggestion(err,
			"List registered components with 'mtf registry list' and check the id spelling")
	}

	// Permission errors
	if strings.Contains(errMsg, "permission denied") {
		return NewErrorWithSuggestion(err,
			"Check file permissions and ensure you have access to the required files/directories")
	}

	// Output format errors
	if strings.Contains(errMsg, "unknown format") {
		return NewErrorWithSuggestion(err,
			"Supported output formats are text, json and yaml")
	}

	// Generic suggestion based on error type
	if strings.Contains(errMsg, "failed to") {
		return NewErrorWithSuggestion(err,
			fmt.Sprintf("Next steps: %s", SuggestNextSteps()))
	}

	return err
}

// FormatError provides consistent error formatting with context
func FormatError(err error, context string) error {
	if err == nil {
		return nil
	}

	enhanced := EnhanceError(err)
	if context != "" {
		return fmt.Errorf("%s: %w", context, enhanced)
	}
	return enhanced
}
