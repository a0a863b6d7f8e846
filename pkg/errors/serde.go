package errors

// SerdeError is raised when a command record fails to parse, whether read
// back from a segment file during lookup/replay or decoded off the wire.
type SerdeError struct {
	*baseError
	segmentID int64
	offset    int64
}

// NewSerdeError creates a new parse error wrapping the given cause.
func NewSerdeError(err error, msg string) *SerdeError {
	return &SerdeError{baseError: NewBaseError(err, ErrorCodeSerde, msg), segmentID: -1, offset: -1}
}

// WithMessage updates the error message while preserving the SerdeError type.
func (e *SerdeError) WithMessage(msg string) *SerdeError {
	e.baseError.WithMessage(msg)
	return e
}

// WithDetail adds contextual information while preserving the SerdeError type.
func (e *SerdeError) WithDetail(key string, value any) *SerdeError {
	e.baseError.WithDetail(key, value)
	return e
}

// WithSegmentID records which segment the malformed record was read from.
func (e *SerdeError) WithSegmentID(id int64) *SerdeError {
	e.segmentID = id
	return e
}

// WithOffset records the byte offset where the malformed record begins.
func (e *SerdeError) WithOffset(offset int64) *SerdeError {
	e.offset = offset
	return e
}

// SegmentID returns the segment the malformed record was read from, or -1.
func (e *SerdeError) SegmentID() int64 { return e.segmentID }

// Offset returns the byte offset of the malformed record, or -1.
func (e *SerdeError) Offset() int64 { return e.offset }
