package errors

// KeyNotFoundError is raised by remove of a key that isn't bound at call
// time, where it surfaces to clients as Response.Error("Key not found").
// The engines' Get also returns it on a miss; the server turns that case
// into Success(nil) rather than an error response.
type KeyNotFoundError struct {
	*baseError
	key string
}

// NewKeyNotFoundError creates a new key-not-found error for the given key.
func NewKeyNotFoundError(key string) *KeyNotFoundError {
	return &KeyNotFoundError{
		baseError: NewBaseError(nil, ErrorCodeKeyNotFound, "Key not found"),
		key:       key,
	}
}

// Key returns the key that was not bound.
func (e *KeyNotFoundError) Key() string { return e.key }
