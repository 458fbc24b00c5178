package domain

import (
	"errors"
	"fmt"
)

// DomainError is a coordinator failure carrying a structured error code.
// Codes are CM-<AREA>-<NNNN>; a leading 4 marks a per-item problem and a
// leading 5 an I/O failure.
type DomainError struct {
	Code    string // Error code (e.g., "CM-CLIP-5001")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// Wrap returns a copy of the error wrapping the given cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// Fatal reports whether the code marks an I/O failure rather than a bad item.
func (e *DomainError) Fatal() bool {
	return len(e.Code) >= 4 && e.Code[len(e.Code)-4] == '5'
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Clipboard errors (CLIP).
var (
	// ErrClipboardRead indicates the backend failed to read the clipboard.
	ErrClipboardRead = NewDomainError("CM-CLIP-5001", "clipboard read failed")

	// ErrClipboardWrite indicates the backend failed to write the clipboard.
	ErrClipboardWrite = NewDomainError("CM-CLIP-5002", "clipboard write failed")

	// ErrUnsupported indicates the backend cannot hold this kind of item.
	ErrUnsupported = NewDomainError("CM-CLIP-4002", "content not supported by clipboard backend")
)

// File errors (FILE).
var (
	// ErrFileRead indicates a local file could not be read for an outbound transfer.
	ErrFileRead = NewDomainError("CM-FILE-5003", "file read failed")

	// ErrFileMaterialize indicates an inbound file could not be written.
	ErrFileMaterialize = NewDomainError("CM-FILE-5004", "file materialize failed")
)

// Payload errors (PAYL).
var (
	// ErrPayloadDecode indicates an inbound payload did not match its content type.
	ErrPayloadDecode = NewDomainError("CM-PAYL-4001", "payload decode failed")
)
