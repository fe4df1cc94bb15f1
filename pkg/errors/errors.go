// Unified error handling for the gib-tuner Go migration
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package errors

import (
	"fmt"
)

// ErrorCode represents the category of error
type ErrorCode string

const (
	// Configuration errors
	ErrConfigField   ErrorCode = "CONFIG_FIELD"
	ErrConfigProfile ErrorCode = "CONFIG_PROFILE"
	ErrConfigFile    ErrorCode = "CONFIG_FILE"

	// Geometry kernel errors
	ErrGeomKernel ErrorCode = "GEOM_KERNEL"
	ErrGeomSolid  ErrorCode = "GEOM_SOLID"
)

// BuildError is the unified error type for the dimension engine
type BuildError struct {
	// Code is the error category
	Code ErrorCode

	// Message is a human-readable error description
	Message string

	// Field is the offending parameter field (if applicable)
	Field string

	// Value is the offending value rendered as a string (if applicable)
	Value string

	// Err wraps the underlying error
	Err error
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s:%s] %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *BuildError) Unwrap() error {
	return e.Err
}

// SetField sets the offending parameter field
func (e *BuildError) SetField(field string) *BuildError {
	e.Field = field
	return e
}

// SetValue records the offending value
func (e *BuildError) SetValue(v interface{}) *BuildError {
	e.Value = fmt.Sprintf("%v", v)
	return e
}

// New creates a new BuildError
func New(code ErrorCode, message string) *BuildError {
	return &BuildError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, code ErrorCode, message string) *BuildError {
	return &BuildError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Config errors

// ConfigFieldError creates an error for an out-of-range or malformed parameter field
func ConfigFieldError(field string, value interface{}, reason string) *BuildError {
	return New(ErrConfigField, fmt.Sprintf("parameter '%s' = %v: %s", field, value, reason)).
		SetField(field).
		SetValue(value)
}

// ConfigProfileError creates an error for an unknown tolerance profile name
func ConfigProfileError(name string, available string) *BuildError {
	return New(ErrConfigProfile, fmt.Sprintf("unknown tolerance profile '%s' (available: %s)", name, available)).
		SetField("tolerance").
		SetValue(name)
}

// ConfigFileError creates an error for a parameter file that cannot be read or parsed
func ConfigFileError(path string, err error) *BuildError {
	return Wrap(err, ErrConfigFile, fmt.Sprintf("failed to load parameter file '%s'", path))
}

// Geometry kernel errors

// KernelError creates an error for a fatal geometry kernel failure
func KernelError(operation string, err error) *BuildError {
	return Wrap(err, ErrGeomKernel, fmt.Sprintf("geometry kernel %s failed", operation))
}

// SolidError creates an error for a malformed or degenerate input solid
func SolidError(name string, reason string) *BuildError {
	return New(ErrGeomSolid, fmt.Sprintf("solid '%s': %s", name, reason)).
		SetField(name)
}

// Is checks if error matches given error code
func Is(err error, code ErrorCode) bool {
	if buildErr, ok := err.(*BuildError); ok {
		return buildErr.Code == code
	}
	return false
}

// IsConfig checks if error is a configuration error
func IsConfig(err error) bool {
	return Is(err, ErrConfigField) ||
		Is(err, ErrConfigProfile) ||
		Is(err, ErrConfigFile)
}

// IsKernel checks if error is a geometry kernel error
func IsKernel(err error) bool {
	return Is(err, ErrGeomKernel) || Is(err, ErrGeomSolid)
}
