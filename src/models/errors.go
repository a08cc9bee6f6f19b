// errors.go - Typed errors for input validation, storage, and the generation call.

package models

import "fmt"

// ValidationError represents rejected user input. A submission that fails
// validation produces no message and no I/O.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StorageReadError represents an unreadable or corrupt history record. The
// store absorbs these and degrades to an empty record; they are logged, not
// surfaced.
type StorageReadError struct {
	Message string
	Err     error
}

func (e *StorageReadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *StorageReadError) Unwrap() error {
	return e.Err
}

// StorageWriteError represents a rejected history write. These propagate so
// the UI can surface them instead of silently losing a message.
type StorageWriteError struct {
	Message string
	Err     error
}

func (e *StorageWriteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *StorageWriteError) Unwrap() error {
	return e.Err
}

// GenerationError represents a failed remote generation call: a transport
// error, a non-success status, or a malformed response envelope.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
