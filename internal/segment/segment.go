// Package segment implements the Log Segment Store: append-only files named
// "<id>.db" in the store's data directory. It knows how to discover, create,
// open, append to, read from, and delete segment files; it has no notion of
// keys, indexes, or records — that belongs to the engine built on top of it.
package segment

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	kvserrors "github.com/gokvs/kvs/pkg/errors"
)

// idPattern matches the decimal-positive-integer stem a valid segment
// filename must have. Stems containing underscores, or that aren't pure
// decimal digits, are ignored by enumeration per spec §4.3.
var idPattern = regexp.MustCompile(`^[1-9][0-9]*$`)

// fileName returns the on-disk name of segment id within dir.
func fileName(id uint64) string {
	return fmt.Sprintf("%d.db", id)
}

// Path returns the full path of segment id within dir.
func Path(dir string, id uint64) string {
	return filepath.Join(dir, fileName(id))
}

// Segment is a single append-only log file. An active segment is opened
// read/write and only ever appended to; a sealed (non-active) segment found
// at open is opened read-only (the one compaction writes stays read/write),
// and sealed segments are read only through ReadAt, so concurrent reads
// never race over a shared cursor.
type Segment struct {
	ID   uint64
	path string
	file *os.File
	size int64
}

// createActive creates a brand-new, empty segment file opened for append.
// It fails if a file already exists at that path — callers that want to
// resume an existing active segment should use openActive instead.
func createActive(dir string, id uint64) (*Segment, error) {
	path := Path(dir, id)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0644)
	if err != nil {
		return nil, kvserrors.ClassifyFileOpenError(err, path, fileName(id))
	}
	return &Segment{ID: id, path: path, file: f, size: 0}, nil
}

// openActive opens an existing segment file for continued append, picking
// up its current size from the filesystem.
func openActive(dir string, id uint64) (*Segment, error) {
	path := Path(dir, id)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, kvserrors.ClassifyFileOpenError(err, path, fileName(id))
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, kvserrors.NewIOError(err, "failed to stat segment file").
			WithSegmentID(int64(id)).WithPath(path).WithFileName(fileName(id))
	}
	return &Segment{ID: id, path: path, file: f, size: info.Size()}, nil
}

// openSealed opens an existing segment file read-only, for random-access
// lookups and replay. Non-active segments are never written to again.
func openSealed(dir string, id uint64) (*Segment, error) {
	path := Path(dir, id)
	f, err := os.OpenFile(path, os.O_RDONLY, 0644)
	if err != nil {
		return nil, kvserrors.ClassifyFileOpenError(err, path, fileName(id))
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, kvserrors.NewIOError(err, "failed to stat segment file").
			WithSegmentID(int64(id)).WithPath(path).WithFileName(fileName(id))
	}
	return &Segment{ID: id, path: path, file: f, size: info.Size()}, nil
}

// Size returns the segment's current length in bytes. For the active
// segment this is the offset the next Append will write at.
func (s *Segment) Size() int64 { return s.size }

// Append writes data to the end of the segment and returns the byte offset
// it was written at. Callers must serialize Append calls on a given
// segment; the engine does so by holding its write lock.
func (s *Segment) Append(data []byte) (pos int64, err error) {
	pos = s.size
	n, err := s.file.WriteAt(data, pos)
	if err != nil {
		return 0, kvserrors.NewIOError(err, "failed to append to segment file").
			WithSegmentID(int64(s.ID)).WithOffset(pos).WithPath(s.path).WithFileName(fileName(s.ID))
	}
	s.size += int64(n)
	return pos, nil
}

// ReadAt reads exactly len(buf) bytes starting at pos. It never disturbs any
// other reader's position, since *os.File.ReadAt is independent of the
// file's shared offset.
func (s *Segment) ReadAt(buf []byte, pos int64) error {
	if _, err := s.file.ReadAt(buf, pos); err != nil {
		return kvserrors.NewIOError(err, "failed to read segment record").
			WithSegmentID(int64(s.ID)).WithOffset(pos).WithPath(s.path).WithFileName(fileName(s.ID))
	}
	return nil
}

// Reader returns the segment's underlying file handle. Replay does not use
// it; it reads the whole segment through ReadAt instead.
func (s *Segment) Reader() *os.File { return s.file }

// Close closes the underlying file handle.
func (s *Segment) Close() error {
	if err := s.file.Close(); err != nil {
		return kvserrors.NewIOError(err, "failed to close segment file").
			WithSegmentID(int64(s.ID)).WithPath(s.path).WithFileName(fileName(s.ID))
	}
	return nil
}

// remove closes and deletes the segment's file from disk.
func (s *Segment) remove() error {
	_ = s.file.Close()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return kvserrors.NewIOError(err, "failed to remove segment file").
			WithSegmentID(int64(s.ID)).WithPath(s.path).WithFileName(fileName(s.ID))
	}
	return nil
}

// discoverIDs enumerates dir for valid segment filenames and returns their
// ids in ascending order. Filenames whose stem isn't a bare decimal
// positive integer (no underscores, no leading garbage) are silently
// ignored, per spec §4.3.
func discoverIDs(dir string) ([]uint64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, kvserrors.NewIOError(err, "failed to read data directory").WithPath(dir)
	}

	var ids []uint64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".db" {
			continue
		}
		stem := name[:len(name)-len(ext)]
		if !idPattern.MatchString(stem) {
			continue
		}
		id, err := strconv.ParseUint(stem, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
