package exitcode

import (
	"os"
	"strings"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ValidationFailed indicates a plan document failed schema validation
	// or was not well-formed XML
	ValidationFailed = 3

	// IOError indicates a file could not be read or written
	IOError = 4

	// Interrupted indicates the run was cancelled by a signal
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	code := DetermineExitCode(err)
	Exit(code)
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	errMsg := strings.ToLower(err.Error())

	// Plan document failures carry their kind in the error text
	if strings.Contains(errMsg, "schema_violation") || strings.Contains(errMsg, "malformed_document") {
		return ValidationFailed
	}
	if strings.Contains(errMsg, "violates the schema") || strings.Contains(errMsg, "not well-formed") {
		return ValidationFailed
	}

	// I/O failures
	if strings.Contains(errMsg, "io_failure") {
		return IOError
	}
	if strings.Contains(errMsg, "file not found") || strings.Contains(errMsg, "no such file") {
		return IOError
	}
	if strings.Contains(errMsg, "permission denied") {
		return IOError
	}

	// Usage errors
	if strings.Contains(errMsg, "invalid flag") || strings.Contains(errMsg, "unknown command") {
		return UsageError
	}
	if strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "missing argument") {
		return UsageError
	}

	// Default to general error
	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case ValidationFailed:
		return "Plan document failed validation"
	case IOError:
		return "File could not be read or written"
	case Interrupted:
		return "Interrupted by signal"
	default:
		return "Unknown error"
	}
}
