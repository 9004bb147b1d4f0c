// cmd/brasilviral/errors.go
package main

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an error so callers can decide to retry, skip or abort.
type ErrorKind string

const (
	ErrorKindNotFound        ErrorKind = "not_found"
	ErrorKindTimeout         ErrorKind = "timeout"
	ErrorKindValidation      ErrorKind = "validation"
	ErrorKindExternalService ErrorKind = "external_service"
	ErrorKindInternal        ErrorKind = "internal"
)

// ViralError is the application error type carrying a kind and a code.
type ViralError struct {
	Kind      ErrorKind
	Code      string
	Message   string
	Component string
	Inner     error
}

func (e *ViralError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("[%s-%s] %s: %v", e.Kind, e.Code, e.Message, e.Inner)
	}
	return fmt.Sprintf("[%s-%s] %s", e.Kind, e.Code, e.Message)
}

func (e *ViralError) Unwrap() error {
	return e.Inner
}

// NewError creates a new ViralError
func NewError(kind ErrorKind, code string, message string, inner error) *ViralError {
	return &ViralError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

// Common error constructors
func NewFetchError(code string, message string, inner error) *ViralError {
	return NewError(ErrorKindExternalService, code, message, inner)
}

func NewTimeoutError(code string, message string, inner error) *ViralError {
	return NewError(ErrorKindTimeout, code, message, inner)
}

func NewValidationError(code string, message string) *ViralError {
	return NewError(ErrorKindValidation, code, message, nil)
}

func NewNotFoundError(code string, message string) *ViralError {
	return NewError(ErrorKindNotFound, code, message, nil)
}

// Error codes
const (
	// Fetcher
	ErrFetchHTTP    = "FETCH_001"
	ErrFetchParse   = "FETCH_002"
	ErrFetchContent = "FETCH_003"

	// Rewriter
	ErrRewriteAPI   = "REWRITE_001"
	ErrRewriteEmpty = "REWRITE_002"

	// Images
	ErrImageSearch   = "IMAGE_001"
	ErrImageDownload = "IMAGE_002"

	// Publisher
	ErrPublishTemplate = "PUBLISH_001"
	ErrPublishWrite    = "PUBLISH_002"

	// Config
	ErrConfigLoad = "CONFIG_001"
	ErrConfigSave = "CONFIG_002"

	// Scheduler
	ErrSchedulerSlot = "SCHED_001"
	ErrSchedulerPID  = "SCHED_002"
)

// KindOf extracts the ErrorKind of err, defaulting to internal.
func KindOf(err error) ErrorKind {
	var ve *ViralError
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return ErrorKindInternal
}

// IsTransient determines if an error is likely temporary
func IsTransient(err error) bool {
	switch KindOf(err) {
	case ErrorKindTimeout, ErrorKindExternalService:
		return true
	}
	return false
}
