// Package errors provides structured error types for snowcover.
package errors

import (
	"fmt"
	"strings"
)

// Code represents a unique error code.
type Code string

// Error codes for snowcover.
const (
	// Usage errors
	CodeMissingArgument Code = "USAGE_MISSING_ARGUMENT"

	// Input errors
	CodeMetadataNotFound Code = "METADATA_NOT_FOUND"
	CodeMetadataInvalid  Code = "METADATA_INVALID"
	CodeSceneDirReadOnly Code = "SCENE_DIR_NOT_WRITABLE"

	// Tool errors
	CodeToolFailed      Code = "TOOL_FAILED"
	CodeToolUnavailable Code = "TOOL_UNAVAILABLE"

	// Config errors
	CodeConfigInvalid Code = "CONFIG_INVALID"
	CodeConfigMissing Code = "CONFIG_MISSING"
)

// SCAError is the structured error type for snowcover.
type SCAError struct {
	Code  Code
	What  string
	Why   string
	Fix   string
	Cause error
}

// Error implements the error interface.
func (e *SCAError) Error() string {
	var b strings.Builder
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString(": ")
		b.WriteString(e.Why)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *SCAError) Unwrap() error {
	return e.Cause
}

// UserMessage returns a user-friendly message for CLI output.
func (e *SCAError) UserMessage() string {
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString("\n\nWhy: ")
		b.WriteString(e.Why)
	}
	if e.Fix != "" {
		b.WriteString("\n\nFix: ")
		b.WriteString(e.Fix)
	}
	return b.String()
}

// Is reports whether target is an SCAError with the same code.
func (e *SCAError) Is(target error) bool {
	t, ok := target.(*SCAError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of the error with the given cause.
func (e *SCAError) WithCause(err error) *SCAError {
	return &SCAError{
		Code:  e.Code,
		What:  e.What,
		Why:   e.Why,
		Fix:   e.Fix,
		Cause: err,
	}
}

// --- Error constructors ---

// ErrMissingArgument returns an error for a required parameter that was
// not supplied, either directly or on the command line.
func ErrMissingArgument(name string) *SCAError {
	return &SCAError{
		Code: CodeMissingArgument,
		What: fmt.Sprintf("missing %s argument", name),
		Why:  "This parameter is required for snow cover processing",
		Fix:  fmt.Sprintf("Supply --%s on the command line", name),
	}
}

// ErrMetadataNotFound returns an error when the scene metadata file does
// not exist or is not accessible.
func ErrMetadataNotFound(path string) *SCAError {
	return &SCAError{
		Code: CodeMetadataNotFound,
		What: fmt.Sprintf("metadata file does not exist or is not accessible: %s", path),
		Why:  "The scene metadata file must be a readable regular file",
		Fix:  "Check the path and permissions of the MTL file",
	}
}

// ErrMetadataInvalid returns an error for an MTL file missing required
// fields or carrying values the DEM tools cannot use.
func ErrMetadataInvalid(path, reason string) *SCAError {
	return &SCAError{
		Code: CodeMetadataInvalid,
		What: fmt.Sprintf("invalid metadata in %s", path),
		Why:  reason,
		Fix:  "Verify the file is an LPGS MTL product for a UTM or PS scene",
	}
}

// ErrSceneDirNotWritable returns an error when the metadata file's
// directory cannot be written by the current process.
func ErrSceneDirNotWritable(dir string) *SCAError {
	return &SCAError{
		Code: CodeSceneDirReadOnly,
		What: fmt.Sprintf("path of metadata file is not writable: %s", dir),
		Why:  "Processing needs write access to the metadata directory for output products",
		Fix:  "Grant write permission on the scene directory or copy the scene somewhere writable",
	}
}

// ErrToolFailed returns an error when an external tool exits non-zero.
func ErrToolFailed(tool string, exitCode int) *SCAError {
	return &SCAError{
		Code: CodeToolFailed,
		What: fmt.Sprintf("error running %s", tool),
		Why:  fmt.Sprintf("Tool exited with code %d; processing will terminate", exitCode),
		Fix:  "Inspect the captured tool output in the log for details",
	}
}

// ErrToolUnavailable returns an error when an external tool could not be
// started at all.
func ErrToolUnavailable(tool string) *SCAError {
	return &SCAError{
		Code: CodeToolUnavailable,
		What: fmt.Sprintf("could not execute %s", tool),
		Why:  "The executable was not found or is not runnable",
		Fix:  "Install the tool, or set --use-bin-directory with a configured bin directory",
	}
}

// ErrConfigMissing returns an error for missing required configuration.
func ErrConfigMissing(field string) *SCAError {
	return &SCAError{
		Code: CodeConfigMissing,
		What: fmt.Sprintf("missing required configuration: %s", field),
		Why:  "This field is required but not set in configuration or environment",
		Fix:  fmt.Sprintf("Set '%s' in the config file, or export the matching environment variable", field),
	}
}

// ErrConfigInvalid returns an error for invalid configuration.
func ErrConfigInvalid(field, reason string) *SCAError {
	return &SCAError{
		Code: CodeConfigInvalid,
		What: fmt.Sprintf("invalid configuration: %s", field),
		Why:  reason,
		Fix:  "Fix the invalid field in the config file or environment",
	}
}

// AsSCAError attempts to convert an error to an SCAError.
// Returns nil if the error is not an SCAError.
func AsSCAError(err error) *SCAError {
	var scaErr *SCAError
	if As(err, &scaErr) {
		return scaErr
	}
	return nil
}

// As is a convenience wrapper for errors.As.
func As(err error, target any) bool {
	return asError(err, target)
}

// asError implements errors.As behavior.
func asError(err error, target any) bool {
	if err == nil {
		return false
	}
	if scaErr, ok := err.(*SCAError); ok {
		if t, ok := target.(**SCAError); ok {
			*t = scaErr
			return true
		}
	}
	// Check unwrapped error
	if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
		return asError(unwrapper.Unwrap(), target)
	}
	return false
}

// Wrap wraps a generic error into an SCAError with unknown code.
func Wrap(err error, what string) *SCAError {
	return &SCAError{
		Code:  Code("UNKNOWN"),
		What:  what,
		Cause: err,
	}
}
