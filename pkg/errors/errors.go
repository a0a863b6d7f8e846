// Package errors defines the store's error taxonomy: a small, fixed set of
// kinds (Io, Serde, KeyNotFound, UnexpectedCommand, SystemTime, Other), each
// carrying the structured context needed to diagnose it, instead of opaque
// strings. Every kind embeds baseError, so errors.Is/errors.As and the
// package's own Is*/As* helpers work uniformly across the chain.
//
// Callers that need to classify an error programmatically use the Is*/As*
// helpers or GetErrorCode rather than string matching on Error(); the server,
// for example, uses IsKeyNotFoundError to answer a Get miss with
// Success(nil).
package errors

import (
	stdErrors "errors"
	"os"
	"syscall"
)

// IsIOError reports whether err is, or wraps, an IOError.
func IsIOError(err error) bool {
	var e *IOError
	return stdErrors.As(err, &e)
}

// IsSerdeError reports whether err is, or wraps, a SerdeError.
func IsSerdeError(err error) bool {
	var e *SerdeError
	return stdErrors.As(err, &e)
}

// IsKeyNotFoundError reports whether err is, or wraps, a KeyNotFoundError.
func IsKeyNotFoundError(err error) bool {
	var e *KeyNotFoundError
	return stdErrors.As(err, &e)
}

// IsUnexpectedCommandError reports whether err is, or wraps, an UnexpectedCommandError.
func IsUnexpectedCommandError(err error) bool {
	var e *UnexpectedCommandError
	return stdErrors.As(err, &e)
}

// AsIOError extracts an *IOError from err's chain, if present.
func AsIOError(err error) (*IOError, bool) {
	var e *IOError
	if stdErrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// AsSerdeError extracts a *SerdeError from err's chain, if present.
func AsSerdeError(err error) (*SerdeError, bool) {
	var e *SerdeError
	if stdErrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// AsKeyNotFoundError extracts a *KeyNotFoundError from err's chain, if present.
func AsKeyNotFoundError(err error) (*KeyNotFoundError, bool) {
	var e *KeyNotFoundError
	if stdErrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// GetErrorCode extracts the ErrorCode from any error in the taxonomy, or
// returns ErrorCodeOther for an error outside it.
func GetErrorCode(err error) ErrorCode {
	var be *baseError
	if stdErrors.As(err, &be) {
		return be.Code()
	}
	return ErrorCodeOther
}

// GetErrorDetails extracts structured details from any error in the
// taxonomy, returning an empty map for errors without details.
func GetErrorDetails(err error) map[string]any {
	var be *baseError
	if stdErrors.As(err, &be) {
		if details := be.Details(); details != nil {
			return details
		}
	}
	return make(map[string]any)
}

// ClassifyFileOpenError analyzes a segment file open/create failure and
// returns the most specific IOError sub-code the underlying syscall error
// supports, falling back to a generic ErrorCodeIO.
func ClassifyFileOpenError(err error, path, fileName string) error {
	if os.IsPermission(err) {
		return NewIOError(err, "insufficient permissions to open segment file").
			WithCode(ErrorCodePermissionDenied).
			WithPath(path).
			WithFileName(fileName).
			WithDetail("operation", "file_open")
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewIOError(err, "insufficient disk space to create segment file").
					WithCode(ErrorCodeDiskFull).
					WithPath(path).
					WithFileName(fileName).
					WithDetail("operation", "file_open")
			case syscall.EROFS:
				return NewIOError(err, "cannot create segment file on read-only filesystem").
					WithCode(ErrorCodeFilesystemReadonly).
					WithPath(path).
					WithFileName(fileName).
					WithDetail("operation", "file_open")
			}
		}
	}

	return NewIOError(err, "failed to open segment file").
		WithPath(path).
		WithFileName(fileName).
		WithDetail("operation", "file_open")
}

// ClassifyDirectoryCreationError analyzes a data/segment directory creation
// failure the same way ClassifyFileOpenError does for files.
func ClassifyDirectoryCreationError(err error, path string) error {
	if os.IsPermission(err) {
		return NewIOError(err, "insufficient permissions to create data directory").
			WithCode(ErrorCodePermissionDenied).
			WithPath(path).
			WithDetail("operation", "directory_creation")
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewIOError(err, "insufficient disk space to create data directory").
					WithCode(ErrorCodeDiskFull).
					WithPath(path).
					WithDetail("operation", "directory_creation")
			case syscall.EROFS:
				return NewIOError(err, "cannot create data directory on read-only filesystem").
					WithCode(ErrorCodeFilesystemReadonly).
					WithPath(path).
					WithDetail("operation", "directory_creation")
			}
		}
	}

	return NewIOError(err, "failed to create data directory").
		WithPath(path).
		WithDetail("operation", "directory_creation")
}
