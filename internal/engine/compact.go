package engine

import (
	"github.com/gokvs/kvs/internal/index"
	kvserrors "github.com/gokvs/kvs/pkg/errors"
)

// maybeCompactLocked runs compaction if uncompactedSize has crossed the
// configured threshold. Callers must hold e.mu for writing.
func (e *kvsEngine) maybeCompactLocked() error {
	if e.uncompactedSize < e.options.CompactionThreshold {
		return nil
	}
	return e.compactLocked()
}

// compactLocked implements the §4.1 compaction algorithm: allocate n+1 for
// the compacted live records and n+2 for the new active segment, copy every
// live record's bytes unchanged into n+1, flip the index only once every
// byte has landed, then delete every segment with id <= n.
func (e *kvsEngine) compactLocked() error {
	n := e.store.MaxID()
	compactedID := n + 1
	newActiveID := n + 2

	compacted, err := e.store.CreateSealed(compactedID)
	if err != nil {
		return err
	}

	snapshot := e.index.Snapshot()
	updated := make(map[string]index.RecordPointer, len(snapshot))

	for key, ptr := range snapshot {
		src, ok := e.store.Get(ptr.SegmentID)
		if !ok {
			return kvserrors.NewIOError(nil, "indexed segment missing during compaction").
				WithSegmentID(int64(ptr.SegmentID))
		}

		buf := make([]byte, ptr.Length)
		if err := src.ReadAt(buf, ptr.Offset); err != nil {
			return err
		}

		pos, err := compacted.Append(buf)
		if err != nil {
			return err
		}

		updated[key] = index.RecordPointer{SegmentID: compactedID, Offset: pos, Length: ptr.Length}
	}

	if _, err := e.store.CreateActive(newActiveID); err != nil {
		return err
	}

	for key, ptr := range updated {
		e.index.Set(key, ptr)
	}

	if err := e.store.DeleteUpTo(n); err != nil {
		return err
	}

	e.uncompactedSize = 0
	e.log.Infow(
		"compaction complete",
		"compactedSegment", compactedID,
		"newActiveSegment", newActiveID,
		"liveKeys", len(updated),
	)
	return nil
}
