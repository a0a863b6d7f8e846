package errors

// OtherError is the catch-all wrapper for failures that don't belong to any
// of the named kinds. It still participates in Unwrap()/errors.Is chains.
type OtherError struct {
	*baseError
}

// NewOtherError wraps an arbitrary error under the Other kind.
func NewOtherError(err error) *OtherError {
	msg := "unclassified error"
	if err != nil {
		msg = err.Error()
	}
	return &OtherError{baseError: NewBaseError(err, ErrorCodeOther, msg)}
}
