package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/gokvs/kvs/internal/index"
	"github.com/gokvs/kvs/internal/record"
	"github.com/gokvs/kvs/internal/segment"
	kvserrors "github.com/gokvs/kvs/pkg/errors"
	"github.com/gokvs/kvs/pkg/options"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrKVSEngineClosed is returned by every operation once Close has run.
var ErrKVSEngineClosed = errors.New("operation failed: cannot access closed engine")

// kvsEngine is the native log-structured implementation: a segment.Store of
// append-only files and an index.Index mapping each live key to the segment
// holding its most recent value. set/remove hold the write side of mu,
// get the read side, exactly as §5's concurrency discipline requires —
// compaction runs inside that same write-held section, excluding every
// other operation on the store until it finishes.
type kvsEngine struct {
	mu              sync.RWMutex
	store           *segment.Store
	index           *index.Index
	options         *options.Options
	log             *zap.SugaredLogger
	uncompactedSize uint64
	closed          atomic.Bool
}

func openKVSEngine(opts *options.Options, log *zap.SugaredLogger) (*kvsEngine, error) {
	store, err := segment.Open(opts.DataDir)
	if err != nil {
		return nil, err
	}

	e := &kvsEngine{
		store:   store,
		index:   index.New(&index.Config{DataDir: opts.DataDir, Logger: log}),
		options: opts,
		log:     log,
	}

	if err := e.replay(); err != nil {
		_ = store.Close()
		return nil, err
	}

	return e, nil
}

// replay rebuilds the index by decoding every segment's record stream in
// ascending id order. A trailing record that fails to parse because the
// stream ends mid-object is discarded silently — it is the tail of a write
// that was never fsynced; any other parse error aborts open with a Serde
// error, per spec §7's durability note.
func (e *kvsEngine) replay() error {
	for _, seg := range e.store.Ascending() {
		if err := e.replaySegment(seg); err != nil {
			return err
		}
	}
	return nil
}

func (e *kvsEngine) replaySegment(seg *segment.Segment) error {
	size := seg.Size()
	if size == 0 {
		return nil
	}

	buf := make([]byte, size)
	if err := seg.ReadAt(buf, 0); err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(buf))
	var offset int64

	for {
		var rec record.Record
		err := dec.Decode(&rec)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if isTruncatedTail(err) {
				e.log.Debugw("discarding truncated trailing record", "segment", seg.ID)
				return nil
			}
			return kvserrors.NewSerdeError(err, "failed to decode record during replay").
				WithSegmentID(int64(seg.ID)).WithOffset(offset)
		}

		next := dec.InputOffset()
		length := next - offset

		switch rec.Command {
		case record.KindSet:
			if old, ok := e.index.Get(rec.Key); ok {
				e.uncompactedSize += uint64(old.Length)
			}
			e.index.Set(rec.Key, index.RecordPointer{SegmentID: seg.ID, Offset: offset, Length: length})
		case record.KindRemove:
			if old, ok := e.index.Get(rec.Key); ok {
				e.uncompactedSize += uint64(old.Length)
			}
			e.index.Delete(rec.Key)
		}

		offset = next
	}
}

// isTruncatedTail reports whether err is the result of decoding running off
// the end of a stream whose last object was only partially written.
// json.Decoder reports that case as io.ErrUnexpectedEOF; a *json.SyntaxError
// means malformed bytes, not a short write, and is not a truncated tail.
func isTruncatedTail(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF)
}

// Set persists a Set record to the active segment and updates the index.
func (e *kvsEngine) Set(key, value string) error {
	if e.closed.Load() {
		return ErrKVSEngineClosed
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := record.NewSet(key, value)
	if err != nil {
		return err
	}

	pos, length, err := e.appendLocked(rec)
	if err != nil {
		return err
	}

	if old, ok := e.index.Get(key); ok {
		e.uncompactedSize += uint64(old.Length)
	}
	e.index.Set(key, index.RecordPointer{SegmentID: e.store.ActiveID(), Offset: pos, Length: length})

	return e.maybeCompactLocked()
}

// Get returns the value bound to key, reading exactly the indexed byte
// range from the owning segment.
func (e *kvsEngine) Get(key string) (string, error) {
	if e.closed.Load() {
		return "", ErrKVSEngineClosed
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	ptr, ok := e.index.Get(key)
	if !ok {
		return "", kvserrors.NewKeyNotFoundError(key)
	}

	seg, ok := e.store.Get(ptr.SegmentID)
	if !ok {
		return "", kvserrors.NewIOError(nil, "indexed segment is not open").WithSegmentID(int64(ptr.SegmentID))
	}

	buf := make([]byte, ptr.Length)
	if err := seg.ReadAt(buf, ptr.Offset); err != nil {
		return "", err
	}

	var rec record.Record
	if err := json.Unmarshal(buf, &rec); err != nil {
		return "", kvserrors.NewSerdeError(err, "failed to decode indexed record").
			WithSegmentID(int64(ptr.SegmentID)).WithOffset(ptr.Offset)
	}

	return rec.Value, nil
}

// Remove appends a Remove record and deletes the index entry. It fails
// with KeyNotFound, appending nothing, if key is not currently bound.
func (e *kvsEngine) Remove(key string) error {
	if e.closed.Load() {
		return ErrKVSEngineClosed
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	old, ok := e.index.Get(key)
	if !ok {
		return kvserrors.NewKeyNotFoundError(key)
	}

	rec, err := record.NewRemove(key)
	if err != nil {
		return err
	}

	if _, _, err := e.appendLocked(rec); err != nil {
		return err
	}

	e.index.Delete(key)
	e.uncompactedSize += uint64(old.Length)

	return e.maybeCompactLocked()
}

// appendLocked serializes rec and writes it to the active segment. Callers
// must hold e.mu for writing.
func (e *kvsEngine) appendLocked(rec record.Record) (pos int64, length int64, err error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return 0, 0, kvserrors.NewSerdeError(err, "failed to encode record")
	}

	pos, err = e.store.Active().Append(data)
	if err != nil {
		return 0, 0, err
	}

	return pos, int64(len(data)), nil
}

// Close releases the segment store and index. Pending writes are not
// fsynced; per spec §9 this engine guarantees clean-shutdown durability
// only, not crash durability.
func (e *kvsEngine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrKVSEngineClosed
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idxErr := e.index.Close()
	storeErr := e.store.Close()
	return multierr.Combine(idxErr, storeErr)
}
