package errors

// UnexpectedCommandError is raised when the client CLI is given an unknown
// verb or the wrong number of arguments for a verb, before any connection
// to the server is attempted.
type UnexpectedCommandError struct {
	*baseError
	command string
}

// NewUnexpectedCommandError creates a new error describing the malformed
// command line invocation.
func NewUnexpectedCommandError(command string) *UnexpectedCommandError {
	return &UnexpectedCommandError{
		baseError: NewBaseError(nil, ErrorCodeUnexpectedCommand, "unexpected command: "+command),
		command:   command,
	}
}

// Command returns the offending command line text.
func (e *UnexpectedCommandError) Command() string { return e.command }
