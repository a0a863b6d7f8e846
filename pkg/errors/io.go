package errors

// IOError is raised when a file or network operation fails: opening, reading,
// writing, or seeking a segment file, creating the data directory, or
// accepting/reading/writing a client connection.
type IOError struct {
	*baseError
	segmentID int64  // which segment was being accessed, -1 if not applicable.
	offset    int64  // byte offset within the segment where the failure happened, -1 if not applicable.
	fileName  string // name of the file involved, if any.
	path      string // full path involved, if any.
}

// NewIOError creates a new I/O error wrapping the given cause.
func NewIOError(err error, msg string) *IOError {
	return &IOError{baseError: NewBaseError(err, ErrorCodeIO, msg), segmentID: -1, offset: -1}
}

// WithMessage updates the error message while preserving the IOError type.
func (e *IOError) WithMessage(msg string) *IOError {
	e.baseError.WithMessage(msg)
	return e
}

// WithCode overrides the default ErrorCodeIO, used for the permission/disk-full/
// read-only sub-classifications.
func (e *IOError) WithCode(code ErrorCode) *IOError {
	e.baseError.WithCode(code)
	return e
}

// WithDetail adds contextual information while preserving the IOError type.
func (e *IOError) WithDetail(key string, value any) *IOError {
	e.baseError.WithDetail(key, value)
	return e
}

// WithSegmentID records which segment was involved.
func (e *IOError) WithSegmentID(id int64) *IOError {
	e.segmentID = id
	return e
}

// WithOffset records the byte offset where the failure occurred.
func (e *IOError) WithOffset(offset int64) *IOError {
	e.offset = offset
	return e
}

// WithFileName records the file name involved.
func (e *IOError) WithFileName(fileName string) *IOError {
	e.fileName = fileName
	return e
}

// WithPath records the full path involved.
func (e *IOError) WithPath(path string) *IOError {
	e.path = path
	return e
}

// SegmentID returns the segment identifier involved, or -1 if none.
func (e *IOError) SegmentID() int64 { return e.segmentID }

// Offset returns the byte offset involved, or -1 if none.
func (e *IOError) Offset() int64 { return e.offset }

// FileName returns the file name involved, if any.
func (e *IOError) FileName() string { return e.fileName }

// Path returns the path involved, if any.
func (e *IOError) Path() string { return e.path }
