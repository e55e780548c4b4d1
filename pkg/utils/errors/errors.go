package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of an error
type ErrorType uint

const (
	// ErrorTypeUnknown represents an unknown error
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeInvalidArgument represents an invalid argument error
	ErrorTypeInvalidArgument
	// ErrorTypeNotFound represents a not found error
	ErrorTypeNotFound
	// ErrorTypeAlreadyExists represents an already exists error
	ErrorTypeAlreadyExists
	// ErrorTypeInternal represents an internal error
	ErrorTypeInternal
	// ErrorTypeDomain represents a pricing-input precondition violation,
	// such as a non-positive strike or a market price below intrinsic value
	ErrorTypeDomain
	// ErrorTypeInvalidOptionType represents an option type other than call or put
	ErrorTypeInvalidOptionType
	// ErrorTypeInvalidStrikes represents a strategy with mis-ordered strikes
	ErrorTypeInvalidStrikes
	// ErrorTypeNonConvergence represents a numerical root-finder that
	// exhausted its iteration budget or lost its bracket
	ErrorTypeNonConvergence
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error returns the error message
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new error with the given message
func New(message string) error {
	return &AppError{
		Type:    ErrorTypeUnknown,
		Message: message,
	}
}

// Newf creates a new error with the given format and arguments
func Newf(format string, args ...interface{}) error {
	return &AppError{
		Type:    ErrorTypeUnknown,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with a message, preserving the type of an AppError
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	errType := ErrorTypeUnknown
	var appErr *AppError
	if errors.As(err, &appErr) {
		errType = appErr.Type
	}
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// Wrapf wraps an error with a formatted message
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// TypeOf returns the ErrorType carried by err, or ErrorTypeUnknown
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// IsType reports whether err carries the given ErrorType
func IsType(err error, errType ErrorType) bool {
	return TypeOf(err) == errType
}

// InvalidArgument creates a new InvalidArgument error
func InvalidArgument(message string) error {
	return &AppError{
		Type:    ErrorTypeInvalidArgument,
		Message: message,
	}
}

// NotFound creates a new NotFound error
func NotFound(message string) error {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// AlreadyExists creates a new AlreadyExists error
func AlreadyExists(message string) error {
	return &AppError{
		Type:    ErrorTypeAlreadyExists,
		Message: message,
	}
}

// Internal creates a new Internal error
func Internal(message string) error {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
	}
}

// Domain creates a new Domain error
func Domain(message string) error {
	return &AppError{
		Type:    ErrorTypeDomain,
		Message: message,
	}
}

// Domainf creates a new Domain error with a formatted message
func Domainf(format string, args ...interface{}) error {
	return Domain(fmt.Sprintf(format, args...))
}

// InvalidOptionType creates a new InvalidOptionType error
func InvalidOptionType(message string) error {
	return &AppError{
		Type:    ErrorTypeInvalidOptionType,
		Message: message,
	}
}

// InvalidStrikes creates a new InvalidStrikes error
func InvalidStrikes(message string) error {
	return &AppError{
		Type:    ErrorTypeInvalidStrikes,
		Message: message,
	}
}

// InvalidStrikesf creates a new InvalidStrikes error with a formatted message
func InvalidStrikesf(format string, args ...interface{}) error {
	return InvalidStrikes(fmt.Sprintf(format, args...))
}

// NonConvergence creates a new NonConvergence error
func NonConvergence(message string) error {
	return &AppError{
		Type:    ErrorTypeNonConvergence,
		Message: message,
	}
}

// NonConvergencef creates a new NonConvergence error with a formatted message
func NonConvergencef(format string, args ...interface{}) error {
	return NonConvergence(fmt.Sprintf(format, args...))
}
