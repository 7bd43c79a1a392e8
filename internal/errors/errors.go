package errors

import (
	"fmt"
	"time"
)

/**
 * Custom error types for the NID extraction worker
 *
 * Only the OCR front-end and the CLI surface produce these. Field
 * extraction itself never fails: a missing field is simply left empty.
 */

// ErrorCode enum for structured error handling
type ErrorCode string

const (
	// Processing errors
	ErrorProcessingTimeout ErrorCode = "PROCESSING_TIMEOUT"
	ErrorOCRFailed         ErrorCode = "OCR_FAILED"

	// Input errors
	ErrorUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	ErrorFileTooLarge      ErrorCode = "FILE_TOO_LARGE"
	ErrorInvalidInput      ErrorCode = "INVALID_INPUT"
)

// ProcessingError represents a structured processing error
type ProcessingError struct {
	Code      ErrorCode
	Message   string
	JobID     string
	Timestamp time.Time
	Details   map[string]interface{}
	Cause     error
}

func (e *ProcessingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ProcessingError) Unwrap() error {
	return e.Cause
}

// Factory functions for common errors

func NewProcessingTimeoutError(jobID string, duration time.Duration, cause error) *ProcessingError {
	return &ProcessingError{
		Code:      ErrorProcessingTimeout,
		Message:   fmt.Sprintf("Processing aborted after %v", duration),
		JobID:     jobID,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"elapsed": duration.String(),
		},
		Cause: cause,
	}
}

// NewOCRFailedError reports an unsuccessful token stream for one card side.
func NewOCRFailedError(jobID string, side string, cause error) *ProcessingError {
	return &ProcessingError{
		Code:      ErrorOCRFailed,
		Message:   fmt.Sprintf("Failed to process %s image", side),
		JobID:     jobID,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"side": side,
		},
		Cause: cause,
	}
}

func NewUnsupportedFormatError(jobID string, filename string, allowed []string) *ProcessingError {
	return &ProcessingError{
		Code:      ErrorUnsupportedFormat,
		Message:   fmt.Sprintf("File format of %q not allowed", filename),
		JobID:     jobID,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"filename":           filename,
			"allowed_extensions": allowed,
		},
	}
}

func NewFileTooLargeError(jobID string, filename string, size, limit int64) *ProcessingError {
	return &ProcessingError{
		Code:      ErrorFileTooLarge,
		Message:   fmt.Sprintf("Image size (%d bytes) exceeds maximum allowed size (%d bytes)", size, limit),
		JobID:     jobID,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"filename":  filename,
			"size":      size,
			"max_bytes": limit,
		},
	}
}

func NewInvalidInputError(jobID string, message string) *ProcessingError {
	return &ProcessingError{
		Code:      ErrorInvalidInput,
		Message:   message,
		JobID:     jobID,
		Timestamp: time.Now(),
	}
}

// ToMap converts error to map for structured output
func (e *ProcessingError) ToMap() map[string]interface{} {
	result := map[string]interface{}{
		"error_code": string(e.Code),
		"message":    e.Message,
		"timestamp":  e.Timestamp,
	}

	if e.JobID != "" {
		result["job_id"] = e.JobID
	}

	for k, v := range e.Details {
		result[k] = v
	}

	if e.Cause != nil {
		result["cause"] = e.Cause.Error()
	}

	return result
}
