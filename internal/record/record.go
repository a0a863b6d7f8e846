// Package record defines the command record persisted to segment files and
// replayed at open: a self-delimiting JSON object carrying the mutation
// kind, a diagnostic timestamp, the key, and the value.
package record

import (
	"time"

	kvserrors "github.com/gokvs/kvs/pkg/errors"
)

// Kind identifies the mutation a Record represents. "Get" is reserved by the
// wire protocol but is never persisted to a segment.
type Kind string

const (
	// KindSet records a key being bound to a value.
	KindSet Kind = "Set"
	// KindRemove records a key being unbound.
	KindRemove Kind = "Remove"
)

// Record is the unit persisted to, and replayed from, a segment file.
// Tstamp is informational only — replay orders by segment id and byte
// offset, never by Tstamp — and is stored as microseconds since the Unix
// epoch in a uint64, since Go has no native 128-bit integer type.
type Record struct {
	Command Kind   `json:"command"`
	Tstamp  uint64 `json:"tstamp"`
	Key     string `json:"key"`
	Value   string `json:"value"`
}

// NewSet builds a Set record for key/value, stamped with the current time.
func NewSet(key, value string) (Record, error) {
	ts, err := now()
	if err != nil {
		return Record{}, err
	}
	return Record{Command: KindSet, Tstamp: ts, Key: key, Value: value}, nil
}

// NewRemove builds a Remove record for key, stamped with the current time.
// The value field is left empty, matching spec §3.
func NewRemove(key string) (Record, error) {
	ts, err := now()
	if err != nil {
		return Record{}, err
	}
	return Record{Command: KindRemove, Tstamp: ts, Key: key}, nil
}

// now returns the current time as microseconds since the Unix epoch,
// failing with a SystemTimeError if the wall clock reports a time before
// the epoch.
func now() (uint64, error) {
	micros := time.Now().UnixMicro()
	if micros < 0 {
		return 0, kvserrors.NewSystemTimeError(nil)
	}
	return uint64(micros), nil
}
