package core

import (
	"fmt"
)

// ErrorCategory classifies an error for reporting and user-facing mapping.
type ErrorCategory int

const (
	ErrCategoryNone       ErrorCategory = iota
	ErrCategoryConnection               // Appium server / device connection lost
	ErrCategoryTimeout                  // Wall-clock or step budget exhausted
	ErrCategoryPrecondition             // Media push or other precondition failed
	ErrCategoryBusy                     // Another posting attempt holds the gate
	ErrCategoryApp                      // Target app misbehaving
	ErrCategoryConfig                   // Invalid configuration
)

// String returns the string representation of ErrorCategory.
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryNone:
		return "none"
	case ErrCategoryConnection:
		return "connection"
	case ErrCategoryTimeout:
		return "timeout"
	case ErrCategoryPrecondition:
		return "precondition"
	case ErrCategoryBusy:
		return "busy"
	case ErrCategoryApp:
		return "app"
	case ErrCategoryConfig:
		return "config"
	default:
		return "unknown"
	}
}

// ExecutionError is a structured error with category and machine-readable code.
// Element lookup misses inside the posting loop are result values, not errors;
// ExecutionError is reserved for faults that cross a package boundary.
type ExecutionError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// WithCause returns a copy of the error with the given cause.
func (e *ExecutionError) WithCause(cause error) *ExecutionError {
	return &ExecutionError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Cause:    cause,
	}
}

// WithMessage returns a copy of the error with a custom message.
func (e *ExecutionError) WithMessage(msg string) *ExecutionError {
	return &ExecutionError{
		Category: e.Category,
		Code:     e.Code,
		Message:  msg,
		Cause:    e.Cause,
	}
}

// Predefined errors.
var (
	ErrServerUnreachable = &ExecutionError{
		Category: ErrCategoryConnection,
		Code:     "server_unreachable",
		Message:  "could not connect to automation server",
	}
	ErrDeviceDisconnected = &ExecutionError{
		Category: ErrCategoryConnection,
		Code:     "device_disconnected",
		Message:  "device connection lost",
	}
	ErrPushFailed = &ExecutionError{
		Category: ErrCategoryPrecondition,
		Code:     "push_failed",
		Message:  "media file could not be staged on device",
	}
	ErrPostingBusy = &ExecutionError{
		Category: ErrCategoryBusy,
		Code:     "posting_busy",
		Message:  "another posting attempt is already in progress",
	}
	ErrAttemptTimeout = &ExecutionError{
		Category: ErrCategoryTimeout,
		Code:     "attempt_timeout",
		Message:  "posting attempt exceeded its time budget",
	}
	ErrAccountCooldown = &ExecutionError{
		Category: ErrCategoryApp,
		Code:     "account_cooldown",
		Message:  "account is in cooldown",
	}
	ErrInvalidConfig = &ExecutionError{
		Category: ErrCategoryConfig,
		Code:     "invalid_config",
		Message:  "invalid configuration",
	}
)

// NewExecutionError creates a new ExecutionError with the given parameters.
func NewExecutionError(category ErrorCategory, code, message string) *ExecutionError {
	return &ExecutionError{
		Category: category,
		Code:     code,
		Message:  message,
	}
}
