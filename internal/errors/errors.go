package errors

import (
	"errors"
	"fmt"
)

// Exit codes for lxcctl
const (
	ExitSuccess           = 0
	ExitGeneralError      = 1
	ExitContainerNotFound = 2
	ExitNoAddress         = 3
	ExitRunFailed         = 4
	ExitRouteFailed       = 5
	ExitSubnetExhausted   = 6
	ExitConfigError       = 7
)

// CtlError is the base error type for lxcctl
type CtlError struct {
	Code    int
	Message string
	Cause   error
}

func (e *CtlError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CtlError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *CtlError) ExitCode() int {
	return e.Code
}

// New creates a new CtlError
func New(code int, message string) *CtlError {
	return &CtlError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a CtlError
func Wrap(code int, message string, cause error) *CtlError {
	return &CtlError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// ContainerNotFound returns an error for a missing container
func ContainerNotFound(name string) *CtlError {
	return New(ExitContainerNotFound, fmt.Sprintf("container not found: %s", name))
}

// NoAddress returns an error when a container has no usable IP yet
func NoAddress(name string, cause error) *CtlError {
	return Wrap(ExitNoAddress, fmt.Sprintf("container %s has no IP address", name), cause)
}

// RunFailed returns an error for a command that failed inside a container
func RunFailed(name string, cause error) *CtlError {
	return Wrap(ExitRunFailed, fmt.Sprintf("command failed in container %s", name), cause)
}

// RouteFailed returns an error for static route installation failures
func RouteFailed(target string, cause error) *CtlError {
	return Wrap(ExitRouteFailed, fmt.Sprintf("failed to install route to %s", target), cause)
}

// SubnetExhausted returns an error when no free subnet remains
func SubnetExhausted(cause error) *CtlError {
	return Wrap(ExitSubnetExhausted, "subnet space exhausted", cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *CtlError {
	return Wrap(ExitConfigError, message, cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *CtlError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var ctlErr *CtlError
	if errors.As(err, &ctlErr) {
		return ctlErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
