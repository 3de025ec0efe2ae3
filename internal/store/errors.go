package store

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes store failures.
type ErrorCode string

const (
	// ErrCodeLockTimeout indicates the advisory lock was not acquired within
	// its bound. The write was aborted with no file mutation.
	ErrCodeLockTimeout ErrorCode = "LOCK_TIMEOUT"

	// ErrCodeWriteFailure indicates the temp-file write or the rename
	// failed. The temp file is cleaned up best-effort and the store file is
	// unchanged.
	ErrCodeWriteFailure ErrorCode = "WRITE_FAILURE"

	// ErrCodeParseFailure indicates the store file was unreadable or
	// invalid. Surfaced only when backup recovery also failed; otherwise it
	// is absorbed internally.
	ErrCodeParseFailure ErrorCode = "PARSE_FAILURE"

	// ErrCodeBackupFailure indicates a snapshot could not be created or
	// rotated. Never fatal: logged and ignored on the write path.
	ErrCodeBackupFailure ErrorCode = "BACKUP_FAILURE"

	// ErrCodeStoreClosed indicates a write was submitted after Close.
	ErrCodeStoreClosed ErrorCode = "STORE_CLOSED"
)

// StoreError is a store failure with a machine-readable code.
type StoreError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StoreError) Unwrap() error { return e.Err }

// newError creates a StoreError without an underlying cause.
func newError(code ErrorCode, message string) *StoreError {
	return &StoreError{Code: code, Message: message}
}

// wrapError creates a StoreError wrapping an underlying cause.
func wrapError(code ErrorCode, message string, err error) *StoreError {
	return &StoreError{Code: code, Message: message, Err: err}
}

// CodeOf extracts the ErrorCode from an error chain, or "" if the error is
// not a StoreError.
func CodeOf(err error) ErrorCode {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
