// Package index provides the in-memory hash table mapping live keys to the
// location of their most recent value on disk. Keeping the whole keyspace
// resident in memory, with only a fixed-size pointer per key, is the
// defining Bitcask trade-off: lookups never touch disk except to fetch the
// value itself.
package index

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// RecordPointer is the minimum metadata needed to locate a value on disk:
// which segment holds it, the byte offset its record starts at, and the
// record's encoded length so a single read fetches it whole.
type RecordPointer struct {
	SegmentID uint64
	Offset    int64
	Length    int64
}

// Index is the concurrency-safe map from key to RecordPointer. It holds no
// file handles; resolving a pointer into a value is the engine's job.
type Index struct {
	dataDir       string
	log           *zap.SugaredLogger
	recordPointer map[string]RecordPointer
	mu            sync.RWMutex
	closed        atomic.Bool
}

// Config encapsulates the configuration parameters required to initialize an Index.
type Config struct {
	DataDir string
	Logger  *zap.SugaredLogger
}
