// Copyright 2024 Canonical Ltd.
// SPDX-License-Identifier: Apache-2.0

package errors

import "fmt"

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeResourceUnavailable indicates an attached charm resource could
	// not be fetched from the controller.
	ErrCodeResourceUnavailable ErrorCode = "RESOURCE_UNAVAILABLE"
	// ErrCodeHookToolFailed indicates a hook tool invocation failed.
	ErrCodeHookToolFailed ErrorCode = "HOOK_TOOL_FAILED"
	// ErrCodeSnapInstallFailed indicates a snap install or refresh failed.
	ErrCodeSnapInstallFailed ErrorCode = "SNAP_INSTALL_FAILED"
	// ErrCodeCollectorFailed indicates the collector binary could not be run.
	ErrCodeCollectorFailed ErrorCode = "COLLECTOR_FAILED"
	// ErrCodeRenderFailed indicates the collector configuration could not be
	// rendered or written.
	ErrCodeRenderFailed ErrorCode = "RENDER_FAILED"
	// ErrCodeInvalidEvent indicates a lifecycle event with no registered
	// handler.
	ErrCodeInvalidEvent ErrorCode = "INVALID_EVENT"
)

// StructuredError provides structured error information for better observability.
// It includes an error code for programmatic handling, a human-readable message,
// the underlying cause, and optional context for debugging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithContext wraps an error with additional context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}
