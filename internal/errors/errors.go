package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a flowerslide error code.
type ErrorCode string

const (
	ErrResourceNotFound ErrorCode = "RESOURCE_NOT_FOUND"  // 404
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"     // 400
	ErrConfiguration    ErrorCode = "CONFIGURATION_ERROR" // 500
	ErrPublishFailed    ErrorCode = "PUBLISH_FAILED"      // 502
	ErrInternal         ErrorCode = "INTERNAL"            // 500
)

// SlideError is a structured error with code, status, and details.
type SlideError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
	Err     error
}

// Error implements the error interface.
func (e *SlideError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *SlideError) Unwrap() error {
	return e.Err
}

// NewResourceNotFound creates a 404 error for a missing background image or font.
func NewResourceNotFound(kind, location string) *SlideError {
	return &SlideError{
		Code:    ErrResourceNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", kind, location),
		Details: map[string]any{"kind": kind, "location": location},
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *SlideError {
	return &SlideError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewConfiguration creates a 500 error for missing or malformed settings.
func NewConfiguration(setting, msg string) *SlideError {
	return &SlideError{
		Code:    ErrConfiguration,
		Status:  500,
		Message: msg,
		Details: map[string]any{"setting": setting},
	}
}

// NewPublishFailed creates a 502 error when the publisher returned no URL.
func NewPublishFailed(path string, cause error) *SlideError {
	return &SlideError{
		Code:    ErrPublishFailed,
		Status:  502,
		Message: fmt.Sprintf("failed to publish %s", path),
		Details: map[string]any{"path": path},
		Err:     cause,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *SlideError {
	return &SlideError{
		Code:    ErrInternal,
		Status:  500,
		Message: "internal error",
		Err:     err,
	}
}

// Is reports whether any error in err's chain is a SlideError with the given code.
func Is(err error, code ErrorCode) bool {
	for err != nil {
		var sErr *SlideError
		if !stderrors.As(err, &sErr) {
			return false
		}
		if sErr.Code == code {
			return true
		}
		err = sErr.Err
	}
	return false
}

// StatusOf returns the HTTP status carried by err, or 500.
func StatusOf(err error) int {
	var sErr *SlideError
	if stderrors.As(err, &sErr) && sErr.Status != 0 {
		return sErr.Status
	}
	return 500
}

// CodeOf returns the code carried by err, or ErrInternal.
func CodeOf(err error) ErrorCode {
	var sErr *SlideError
	if stderrors.As(err, &sErr) {
		return sErr.Code
	}
	return ErrInternal
}
