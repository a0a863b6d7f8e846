package index

import (
	stdErrors "errors"
)

var (
	// ErrIndexClosed is returned by every operation once Close has run.
	ErrIndexClosed = stdErrors.New("operation failed: cannot access closed index")
)

// New creates an empty Index ready for concurrent use.
func New(config *Config) *Index {
	return &Index{
		log:           config.Logger,
		dataDir:       config.DataDir,
		recordPointer: make(map[string]RecordPointer, 2046),
	}
}

// Get returns the pointer for key and whether it is present. It returns
// false, not an error, for a missing key — callers decide whether that's a
// KeyNotFoundError (engine Get and Remove) or an expected outcome (replay
// looking up the previous entry of a key).
func (idx *Index) Get(key string) (RecordPointer, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	ptr, ok := idx.recordPointer[key]
	return ptr, ok
}

// Set records or overwrites the pointer for key.
func (idx *Index) Set(key string, ptr RecordPointer) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.recordPointer[key] = ptr
}

// Delete removes key from the index and reports whether it had been present.
func (idx *Index) Delete(key string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	_, ok := idx.recordPointer[key]
	delete(idx.recordPointer, key)
	return ok
}

// Len returns the number of live keys.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.recordPointer)
}

// Snapshot returns a point-in-time copy of every key/pointer pair, used by
// compaction to decide which records are still live without holding the
// index lock for the whole rewrite.
func (idx *Index) Snapshot() map[string]RecordPointer {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make(map[string]RecordPointer, len(idx.recordPointer))
	for k, v := range idx.recordPointer {
		out[k] = v
	}
	return out
}

// Close releases the index's backing map. Subsequent operations still work
// against an empty map; Close exists so the engine can report shutdown
// cleanly and so a reopened store starts replay against a fresh Index.
func (idx *Index) Close() error {
	if !idx.closed.CompareAndSwap(false, true) {
		return ErrIndexClosed
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	clear(idx.recordPointer)
	return nil
}
